package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/placeshare/backend/internal/container"
	handlers "github.com/placeshare/backend/internal/interface/http"
	"github.com/placeshare/backend/internal/interface/middleware"
	"github.com/placeshare/backend/pkg/helpers"
)

// UserModule wires user HTTP handlers into routes.
// Public: GET /api/users, POST /api/users/signup, POST /api/users/login

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get per-IP rate limits; listing does not.
	// Private addresses bypass the limit so local tooling stays usable.
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.GET("/users", m.Handler.List)
	rg.POST("/users/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)
}
