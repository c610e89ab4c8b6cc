package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"pizza-delivery/internal/usecase"
	"pizza-delivery/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	User  *UserHandler
	Order *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, log),
		User:  NewUserHandler(service.User, log),
		Order: NewOrderHandler(service.Order, log),
	}
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseError(w, http.StatusRequestEntityTooLarge, "Request body too large", nil)
			return false
		}
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func subject(w http.ResponseWriter, r *http.Request) (string, bool) {
	sub, ok := utils.GetSubjectFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Invalid token")
	}
	return sub, ok
}

// handleServiceError maps usecase errors onto status codes and details.
// Anything unrecognised is logged and reported as a 500 without internals.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed", zap.Any("errors", verr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Invalid token")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid username or password")

	case errors.Is(err, usecase.ErrNotSuperuser):
		log.Warn(operation+" denied", zap.Error(err))
		utils.ResponseForbidden(w, "You are not a superuser")

	case errors.Is(err, usecase.ErrNotAllowed):
		log.Warn(operation+" denied", zap.Error(err))
		utils.ResponseForbidden(w, "User not allowed to carry out required")

	case errors.Is(err, usecase.ErrInactiveUser):
		utils.ResponseForbidden(w, "account is deactivated")

	case errors.Is(err, usecase.ErrUserNotFound):
		utils.ResponseNotFound(w, "User not found")

	case errors.Is(err, usecase.ErrOrderNotFound):
		utils.ResponseNotFound(w, "Order not found")

	case errors.Is(err, usecase.ErrNoOrderForUser):
		utils.ResponseNotFound(w, "No order with such user")

	case errors.Is(err, usecase.ErrInvalidTransition):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrOrderLocked):
		utils.ResponseBadRequest(w, "order can no longer be modified", nil)

	case errors.Is(err, usecase.ErrUsernameTaken):
		utils.ResponseBadRequest(w, "username already taken", nil)

	case errors.Is(err, usecase.ErrEmailTaken):
		utils.ResponseBadRequest(w, "email already registered", nil)

	default:
		log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
