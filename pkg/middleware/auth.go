package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	jwtutil "github.com/Aslan2004/Social_Network/pkg/jwt"
	"github.com/Aslan2004/Social_Network/pkg/logger"
	"github.com/gorilla/mux"
)

type contextKey string

const userContextKey contextKey = "user"

// respondUnauthorized writes the standard {success, message} envelope. The
// middleware cannot reuse the handlers package helpers without an import
// cycle, so it carries its own minimal writer.
func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// AuthMiddleware validates the Authorization bearer token and stores the
// decoded claims in the request context.
func AuthMiddleware(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Log.Warn("Missing Authorization header")
				respondUnauthorized(w, "Access token is required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Log.Warn("Malformed Authorization header")
				respondUnauthorized(w, "Access token is required")
				return
			}

			claims, err := jwtutil.ValidateToken(parts[1], secret)
			if err != nil {
				logger.Log.WithError(err).Warn("Invalid or expired token")
				respondUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the claims stored by AuthMiddleware, or nil.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, ok := ctx.Value(userContextKey).(*jwtutil.Claims)
	if !ok {
		return nil
	}
	return claims
}
