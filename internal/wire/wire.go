package wire

import (
	"pizza-delivery/internal/adaptor"
	"pizza-delivery/internal/data/repository"
	"pizza-delivery/internal/usecase"
	"pizza-delivery/pkg/metrics"
	"pizza-delivery/pkg/middleware"
	"pizza-delivery/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, db adaptor.Pinger, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, adaptor.NewHealthHandler(db, logger), config, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	health *adaptor.HealthHandler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// global middleware; request id first so every later layer can log it
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(metrics.Middleware())

	r.Get("/health", health.Health)
	r.Handle("/metrics", metrics.Handler())

	limiter := middleware.NewRateLimiter(config.RateLimit, logger)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)

		wireAuth(r, handler.Auth, config, logger)
		wireUser(r, handler.User, config, logger)
		wireOrder(r, handler.Order, config, logger)
	})

	return r
}
