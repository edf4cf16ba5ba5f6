package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"shelterpulse/internal/infrastructure"
)

// SessionValidator resolves a bearer token to a username.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (string, error)
}

// usernameKey is the context key for the authenticated username.
type usernameKey struct{}

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(usernameKey{}).(string); ok {
		return name
	}
	return ""
}

// SessionAuth requires a valid "Authorization: Bearer <token>" header and
// puts the resolved username into the request context.
func SessionAuth(logger *slog.Logger, sessions SessionValidator) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := bearerToken(r)
			if token == "" {
				logger.WarnContext(ctx, "missing bearer token",
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeUnauthorized(w, ctx, "Missing or malformed Authorization header")
				return
			}

			username, err := sessions.ValidateSession(ctx, token)
			if err != nil {
				logger.WarnContext(ctx, "session validation failed",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err.Error(),
				)
				writeUnauthorized(w, ctx, "Session expired or unknown. Please log in again.")
				return
			}

			ctx = context.WithValue(ctx, usernameKey{}, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeUnauthorized(w http.ResponseWriter, ctx context.Context, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusUnauthorized)

	traceID := infrastructure.GetTraceID(ctx)
	response := `{"type":"/errors/unauthorized","title":"Unauthorized","status":401,"detail":"` + detail + `","trace_id":"` + traceID + `"}`
	w.Write([]byte(response))
}
