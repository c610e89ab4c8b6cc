package middleware

import (
	"net/http"
	"strings"

	"pizza-delivery/pkg/utils"

	"go.uber.org/zap"
)

// Auth requires a valid access token and stores its subject in the context.
func Auth(config utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return bearer(config, utils.TokenAccess, logger)
}

// AuthRefresh is Auth for the refresh endpoint; only refresh tokens pass.
func AuthRefresh(config utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return bearer(config, utils.TokenRefresh, logger)
}

func bearer(config utils.JWTConfig, want utils.TokenType, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			subject, err := utils.ParseToken(config, token, want)
			if err != nil {
				logger.Warn("Rejected token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
					zap.String("request_id", utils.GetRequestIDFromContext(r.Context())),
				)
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			ctx := utils.SetSubjectContext(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
