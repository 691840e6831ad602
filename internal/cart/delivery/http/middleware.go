package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/glowmart/storefront/pkg/auth"
	"github.com/glowmart/storefront/pkg/logger"
)

type contextKey string

// SessionIDKey carries the resolved session identity in the request context
const SessionIDKey contextKey = "session_id"

const sessionHeader = "X-Session-ID"

// SessionMiddleware resolves the session identity for a request. A bearer
// token wins, then the X-Session-ID header; anonymous requests get a fresh
// UUID. The resolved ID is echoed back in the response header so the
// client can persist it.
func SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""

		if token := bearerToken(r); token != "" {
			claims, err := auth.ValidateToken(token)
			if err != nil {
				logger.Logger.Warn().Err(err).Msg("Ignoring invalid session token")
			} else {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			sessionID = r.Header.Get(sessionHeader)
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		w.Header().Set(sessionHeader, sessionID)

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// SessionID extracts the resolved session identity from a request context
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
