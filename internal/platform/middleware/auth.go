package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "shopez/pkg/domain"
	"shopez/pkg/requestcontext"
)

// TokenValidator resolves a bearer token to the session it identifies.
type TokenValidator interface {
	SessionFromToken(tokenString string) (id.SessionID, error)
}

// GetSessionID retrieves the authenticated session ID from the context.
func GetSessionID(ctx context.Context) id.SessionID {
	return requestcontext.SessionID(ctx)
}

// RequireSession rejects requests without a valid session bearer token and
// stores the session ID in the context for handlers.
func RequireSession(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			sid, err := validator.SessionFromToken(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := requestcontext.WithSessionID(r.Context(), sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
