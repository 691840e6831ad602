package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a successful envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":[{"id":"1","name":"Trail Runner","price":120},{"id":"2","name":"City Sneaker","price":80}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		products, err := client.Refresh(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Trail Runner", products[0].Name)

		snapshot, err := client.Snapshot()
		require.NoError(t, err)
		assert.Len(t, snapshot, 2)
	})

	t.Run("unreachable source yields an error and empty snapshot", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", time.Second)
		products, err := client.Refresh(ctx)
		require.Error(t, err)
		assert.Empty(t, products)

		snapshot, err := client.Snapshot()
		require.Error(t, err)
		assert.Empty(t, snapshot)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.Refresh(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("nope"))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.Refresh(ctx)
		require.Error(t, err)
	})

	t.Run("success false is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"error":"database unavailable"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.Refresh(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database unavailable")
	})

	t.Run("failed refresh clears a previously accepted snapshot", func(t *testing.T) {
		failNext := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if failNext {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"success":true,"data":[{"id":"1","name":"Trail Runner","price":120}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.Refresh(ctx)
		require.NoError(t, err)

		failNext = true
		products, err := client.Refresh(ctx)
		require.Error(t, err)
		assert.Empty(t, products)

		snapshot, err := client.Snapshot()
		require.Error(t, err)
		assert.Empty(t, snapshot)
	})
}

func TestClientDiscardsStaleFetch(t *testing.T) {
	ctx := context.Background()

	release := make(chan struct{})
	slowStarted := make(chan struct{})
	first := true

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first {
			first = false
			close(slowStarted)
			<-release
			// Stale payload that must not win
			w.Write([]byte(`{"success":true,"data":[{"id":"old","name":"Stale","price":1}]}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":[{"id":"new","name":"Fresh","price":2}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	staleDone := make(chan struct{})
	go func() {
		defer close(staleDone)
		client.Refresh(ctx)
	}()

	<-slowStarted

	// A newer fetch completes while the first is still blocked
	products, err := client.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "new", products[0].ID)

	// Let the stale response resolve; it must be discarded
	close(release)
	<-staleDone

	snapshot, err := client.Snapshot()
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "new", snapshot[0].ID)
}
