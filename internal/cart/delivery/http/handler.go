package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/glowmart/storefront/internal/cart"
	"github.com/glowmart/storefront/internal/cart/usecase/command"
	"github.com/glowmart/storefront/internal/cart/usecase/query"
	"github.com/glowmart/storefront/pkg/logger"
)

// CartHandler handles HTTP requests for the cart using CQRS pattern
type CartHandler struct {
	addHandler      *command.AddItemHandler
	removeHandler   *command.RemoveItemHandler
	updateHandler   *command.UpdateQuantityHandler
	clearHandler    *command.ClearCartHandler
	checkoutHandler *command.CheckoutHandler

	getCartHandler *query.GetCartHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCartHandler creates a new cart handler wired to the given store and
// event publisher (publisher may be nil).
func NewCartHandler(store *cart.Store, publisher command.EventPublisher) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_requests_total",
			Help: "Total number of cart requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_cart_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CartHandler{
		addHandler:      command.NewAddItemHandler(store),
		removeHandler:   command.NewRemoveItemHandler(store),
		updateHandler:   command.NewUpdateQuantityHandler(store),
		clearHandler:    command.NewClearCartHandler(store),
		checkoutHandler: command.NewCheckoutHandler(store, publisher),
		getCartHandler:  query.NewGetCartHandler(store),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
	}
}

// Response is the standard JSON envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers cart routes on the router
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", SessionMiddleware(h.GetCart))).Methods("GET")
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", SessionMiddleware(h.ClearCart))).Methods("DELETE")
	router.HandleFunc("/api/cart/items", h.metricsMiddleware("/api/cart/items", SessionMiddleware(h.AddItem))).Methods("POST")
	router.HandleFunc("/api/cart/items", h.metricsMiddleware("/api/cart/items", SessionMiddleware(h.UpdateQuantity))).Methods("PATCH")
	router.HandleFunc("/api/cart/items/{productId}", h.metricsMiddleware("/api/cart/items/{productId}", SessionMiddleware(h.RemoveItem))).Methods("DELETE")
	router.HandleFunc("/api/cart/checkout", h.metricsMiddleware("/api/cart/checkout", SessionMiddleware(h.Checkout))).Methods("POST")
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.getCartHandler.Handle(r.Context(), query.GetCartQuery{
		SessionID: SessionID(r.Context()),
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID  string  `json:"product_id"`
		VariantKey string  `json:"variant_key"`
		Name       string  `json:"name"`
		UnitPrice  float64 `json:"unit_price"`
		ImageRef   string  `json:"image_ref"`
		Quantity   int     `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.AddItemCommand{
		SessionID:  SessionID(r.Context()),
		ProductID:  req.ProductID,
		VariantKey: req.VariantKey,
		Name:       req.Name,
		UnitPrice:  req.UnitPrice,
		ImageRef:   req.ImageRef,
		Quantity:   req.Quantity,
	}

	c, err := h.addHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to add cart item")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item added to cart",
		Data:    cartPayload(c.Items, c.Total(), c.Count()),
	})
}

// UpdateQuantity handles PATCH /api/cart/items
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID  string `json:"product_id"`
		VariantKey string `json:"variant_key"`
		Quantity   int    `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.UpdateQuantityCommand{
		SessionID:  SessionID(r.Context()),
		ProductID:  req.ProductID,
		VariantKey: req.VariantKey,
		Quantity:   req.Quantity,
	}

	c, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update cart quantity")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    cartPayload(c.Items, c.Total(), c.Count()),
	})
}

// RemoveItem handles DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	cmd := command.RemoveItemCommand{
		SessionID:  SessionID(r.Context()),
		ProductID:  vars["productId"],
		VariantKey: r.URL.Query().Get("variant"),
	}

	c, err := h.removeHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item removed from cart",
		Data:    cartPayload(c.Items, c.Total(), c.Count()),
	})
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cmd := command.ClearCartCommand{SessionID: SessionID(r.Context())}
	if err := h.clearHandler.Handle(r.Context(), cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Cart cleared"})
}

// Checkout handles POST /api/cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cmd := command.CheckoutCommand{SessionID: SessionID(r.Context())}

	result, err := h.checkoutHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Checkout rejected")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Checkout completed",
		Data:    result,
	})
}

func cartPayload(items interface{}, total float64, count int) map[string]interface{} {
	return map[string]interface{}{
		"items": items,
		"total": total,
		"count": count,
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
