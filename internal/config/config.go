package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr           string
	BackendURL     string
	BackendTimeout time.Duration
	PublicURL      string
	AuthURL        string
	RazorpayKeyID  string
	StoreName      string
	ShippingFee    float64
	SessionSecret  string
	CORSOrigins    string

	StorageDriver string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	StorageTTL    time.Duration
}

// Load reads configuration from environment variables. Malformed numeric or
// duration values fall back to their defaults.
func Load() Config {
	return Config{
		Addr:           getEnv("STOREFRONT_ADDR", ":8080"),
		BackendURL:     strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8001"), "/"),
		BackendTimeout: getDuration("BACKEND_TIMEOUT", 0),
		PublicURL:      strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
		AuthURL:        strings.TrimRight(getEnv("AUTH_URL", "https://auth.emergentagent.com"), "/"),
		RazorpayKeyID:  os.Getenv("RAZORPAY_KEY_ID"),
		StoreName:      getEnv("STORE_NAME", "Elegant Artisan"),
		ShippingFee:    getFloat("SHIPPING_FEE", 100),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "memory")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		StorageTTL:    getDuration("STORAGE_TTL", 30*24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
