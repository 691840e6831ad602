package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/glowmart/storefront/internal/catalog/domain"
	"github.com/glowmart/storefront/pkg/logger"
)

// listResponse is the envelope the product service wraps catalog data in
type listResponse struct {
	Success bool             `json:"success"`
	Data    []domain.Product `json:"data"`
	Error   string           `json:"error,omitempty"`
}

// Client fetches product snapshots from the product service. Each fetch
// is issued under a monotonically increasing generation token; a response
// that resolves after a newer fetch has been issued is discarded, so a
// slow response can never overwrite fresher data.
type Client struct {
	baseURL string
	http    *http.Client

	mu         sync.Mutex
	generation uint64
	snapshot   []domain.Product
	lastErr    error
}

// NewClient creates a product source client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Refresh fetches a fresh product snapshot and returns the accepted
// collection. A transport failure, a non-200 status, a malformed payload
// or success=false all yield an error and an empty snapshot; the caller
// surfaces an error indicator instead of failing.
func (c *Client) Refresh(ctx context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	products, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// A newer fetch was issued while this one was in flight; its
		// outcome stands, ours is stale.
		logger.Logger.Debug().
			Uint64("generation", gen).
			Uint64("latest", c.generation).
			Msg("Discarding stale product fetch")
		return c.snapshot, c.lastErr
	}

	if err != nil {
		c.snapshot = nil
		c.lastErr = err
		return nil, err
	}

	c.snapshot = products
	c.lastErr = nil
	return products, nil
}

// Snapshot returns the most recently accepted product collection without
// fetching.
func (c *Client) Snapshot() ([]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot, c.lastErr
}

func (c *Client) fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build product request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product source unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product source returned status %d", resp.StatusCode)
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("malformed product payload: %w", err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("product source error: %s", payload.Error)
	}
	return payload.Data, nil
}
