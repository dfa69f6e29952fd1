package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/placeshare/backend/internal/interface/http"
	"github.com/placeshare/backend/internal/interface/middleware"
	"github.com/placeshare/backend/pkg/helpers"
)

// PlaceModule wires place HTTP handlers into routes.
// Public:    GET /api/places/:pid, GET /api/places/user/:uid, GET /api/places/search
// Protected: POST /api/places, PATCH /api/places/:pid, DELETE /api/places/:pid

type PlaceModule struct {
	Handler *handlers.PlaceHandler
	JWT     *helpers.JWTManager
}

func NewPlaceModule(h *handlers.PlaceHandler, jwt *helpers.JWTManager) *PlaceModule {
	return &PlaceModule{Handler: h, JWT: jwt}
}

func (m *PlaceModule) Register(rg *gin.RouterGroup) {
	rg.GET("/places/search", m.Handler.Search)
	rg.GET("/places/:pid", m.Handler.GetByID)
	rg.GET("/places/user/:uid", m.Handler.ListByUser)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/places", m.Handler.Create)
		auth.PATCH("/places/:pid", m.Handler.Update)
		auth.DELETE("/places/:pid", m.Handler.Delete)
	}
}
