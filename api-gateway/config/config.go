package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	productURL := getEnv("PRODUCT_SERVICE_URL", "http://localhost:8081")
	storefrontURL := getEnv("STOREFRONT_SERVICE_URL", "http://localhost:8085")

	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"product": {
				Name:        "product-service",
				BaseURL:     productURL,
				Instances:   getInstances("PRODUCT_SERVICE_INSTANCES", productURL),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"storefront": {
				Name:        "storefront-service",
				BaseURL:     storefrontURL,
				Instances:   getInstances("STOREFRONT_SERVICE_INSTANCES", storefrontURL),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

// getInstances reads a comma-separated instance list, falling back to the
// single base URL when the variable is not set.
func getInstances(key, fallback string) []string {
	value := os.Getenv(key)
	if value == "" {
		return []string{fallback}
	}

	var instances []string
	for _, instance := range strings.Split(value, ",") {
		instance = strings.TrimSpace(instance)
		if instance != "" {
			instances = append(instances, instance)
		}
	}

	if len(instances) == 0 {
		return []string{fallback}
	}
	return instances
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
