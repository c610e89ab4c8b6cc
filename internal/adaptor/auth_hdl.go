package adaptor

import (
	"net/http"

	"pizza-delivery/internal/dto/request"
	"pizza-delivery/internal/usecase"
	"pizza-delivery/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "sign up")
		return
	}

	utils.ResponseCreated(w, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokens, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.ResponseSuccess(w, tokens)
}

// Refresh handles POST /auth/refresh; the route is guarded by a refresh token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(w, r)
	if !ok {
		return
	}

	tokens, err := h.service.Refresh(r.Context(), sub)
	if err != nil {
		handleServiceError(h.log, w, err, "refresh token")
		return
	}

	utils.ResponseSuccess(w, tokens)
}
