package setup

import (
	"github.com/lifeline-dev/lifeline/internal/config"
	"github.com/lifeline-dev/lifeline/internal/handler"
	"github.com/lifeline-dev/lifeline/internal/jwt"
	"github.com/lifeline-dev/lifeline/internal/middleware"
	"github.com/lifeline-dev/lifeline/internal/render"
	"github.com/lifeline-dev/lifeline/internal/service"
	"github.com/lifeline-dev/lifeline/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	LoginLimiter   *middleware.RateLimiter
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtSvc := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtSvc)
	donors := service.NewDonor(storage)
	requests := service.NewRequest(storage, storage, storage)

	renderer := render.MustLoad(cfg.Public.TemplatesPath)

	h := handler.New(auth, donors, requests, renderer, storage, cfg)

	rps := cfg.Public.LoginRatePerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Public.LoginBurst
	if burst <= 0 {
		burst = 5
	}

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtSvc),
		LoginLimiter:   middleware.NewRateLimiter(rps, burst),
		Config:         cfg,
	}, nil
}
