package router

import (
	"github.com/placeshare/backend/internal/application"
	"github.com/placeshare/backend/internal/container"
	"github.com/placeshare/backend/internal/infrastructure/geocode"
	pginfra "github.com/placeshare/backend/internal/infrastructure/postgres"
	handlers "github.com/placeshare/backend/internal/interface/http"
	"github.com/placeshare/backend/internal/router/modules"
)

// InitModules builds the user and place modules from the container's
// singletons and registers them with the router registry. Called once during
// startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	placeRepo := pginfra.NewPlaceRepository(container.GetPGPool())

	geocoder := geocode.NewCached(
		geocode.NewGoogleClient(cfg.GeocodeAPIKey),
		container.GetRedis(),
		cfg.GeocodeCacheTTL,
		container.GetLogger(),
	)

	userSvc := application.NewUserService(
		userRepo,
		container.GetJWT(),
		container.GetRabbitPub(),
		container.GetLogger(),
	)
	placeSvc := application.NewPlaceService(
		placeRepo,
		userRepo,
		geocoder,
		container.GetUploads(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESPlacesIndex,
	)

	userHandler := handlers.NewUserHandler(userSvc, container.GetUploads(), container.GetLogger())
	placeHandler := handlers.NewPlaceHandler(placeSvc, container.GetUploads(), container.GetLogger())

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewPlaceModule(placeHandler, container.GetJWT()))
}
