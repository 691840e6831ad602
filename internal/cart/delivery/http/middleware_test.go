package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowmart/storefront/pkg/auth"
)

func resolveSession(t *testing.T, prepare func(*http.Request)) (string, *httptest.ResponseRecorder) {
	t.Helper()

	var resolved string
	handler := SessionMiddleware(func(w http.ResponseWriter, r *http.Request) {
		resolved = SessionID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return resolved, rec
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("bearer token wins over the header", func(t *testing.T) {
		token, err := auth.GenerateToken("sess-jwt", "customer", time.Hour)
		require.NoError(t, err)

		resolved, rec := resolveSession(t, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
			r.Header.Set("X-Session-ID", "sess-header")
		})
		assert.Equal(t, "sess-jwt", resolved)
		assert.Equal(t, "sess-jwt", rec.Header().Get("X-Session-ID"))
	})

	t.Run("header identifies the session without a token", func(t *testing.T) {
		resolved, rec := resolveSession(t, func(r *http.Request) {
			r.Header.Set("X-Session-ID", "sess-header")
		})
		assert.Equal(t, "sess-header", resolved)
		assert.Equal(t, "sess-header", rec.Header().Get("X-Session-ID"))
	})

	t.Run("invalid token falls back to the header", func(t *testing.T) {
		resolved, _ := resolveSession(t, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not-a-token")
			r.Header.Set("X-Session-ID", "sess-header")
		})
		assert.Equal(t, "sess-header", resolved)
	})

	t.Run("anonymous request gets a generated session", func(t *testing.T) {
		resolved, rec := resolveSession(t, nil)
		require.NotEmpty(t, resolved)
		_, err := uuid.Parse(resolved)
		assert.NoError(t, err)
		assert.Equal(t, resolved, rec.Header().Get("X-Session-ID"))
	})
}
