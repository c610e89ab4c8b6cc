package wire

import (
	"pizza-delivery/internal/adaptor"
	"pizza-delivery/pkg/middleware"
	"pizza-delivery/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.With(middleware.Auth(config.JWT, log)).Get("/users/me", userHandler.GetProfile)
}
