package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/glowmart/storefront/internal/catalog/domain"
	"github.com/glowmart/storefront/internal/catalog/usecase/query"
)

// CatalogHandler handles HTTP requests for the catalog view
type CatalogHandler struct {
	browseHandler *query.BrowseCatalogHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(source query.ProductSource) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_requests_total",
			Help: "Total number of catalog requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CatalogHandler{
		browseHandler:  query.NewBrowseCatalogHandler(source),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// RegisterRoutes registers catalog routes on the router
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/catalog", h.metricsMiddleware("/api/catalog", h.BrowseCatalog)).Methods("GET")
}

func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// BrowseCatalog handles GET /api/catalog
func (h *CatalogHandler) BrowseCatalog(w http.ResponseWriter, r *http.Request) {
	criteria, page := ParseCriteria(r.URL.Query())

	result := h.browseHandler.Handle(r.Context(), query.BrowseCatalogQuery{
		Criteria: criteria,
		Page:     page,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": result.SourceError == "",
		"data":    result,
		"error":   result.SourceError,
	})
}

// ParseCriteria builds FilterCriteria from request query parameters,
// falling back to the defaults for anything absent or unparseable. Any
// change of criteria implies a fresh request, so the page parameter
// defaults to 1.
func ParseCriteria(values map[string][]string) (domain.FilterCriteria, int) {
	criteria := domain.DefaultCriteria()

	get := func(key string) string {
		if v, ok := values[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	if v := get("category"); v != "" {
		criteria.Category = v
	}
	if v := get("brand"); v != "" {
		criteria.Brand = v
	}
	if v := get("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			criteria.PriceMin = f
		}
	}
	if v := get("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			criteria.PriceMax = f
		}
	}
	if v := get("min_rating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			criteria.MinRating = f
		}
	}
	if v := get("availability"); v != "" {
		criteria.Availability = v
	}
	if v := get("sort"); v != "" {
		switch domain.SortOrder(v) {
		case domain.SortNewest, domain.SortPriceLow, domain.SortPriceHigh, domain.SortRating:
			criteria.SortBy = domain.SortOrder(v)
		}
	}
	criteria.SearchText = get("search")

	page := 1
	if v := get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	return criteria, page
}
