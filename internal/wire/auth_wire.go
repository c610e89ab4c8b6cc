package wire

import (
	"pizza-delivery/internal/adaptor"
	"pizza-delivery/pkg/middleware"
	"pizza-delivery/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/login", authHandler.Login)

		// only a refresh token is accepted here
		r.With(middleware.AuthRefresh(config.JWT, log)).Post("/refresh", authHandler.Refresh)
	})
}
