package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL string
	Timeout time.Duration

	Currency       string
	TaxRate        float64
	DeliveryFee    float64
	MinOrderAmount float64

	// Order history page size.
	PageSize int

	// Durable storage tiers. CartFile is always used; RedisURL enables the
	// redis tier when set.
	CartFile string
	RedisURL string

	// Optional YAML file overriding individual endpoint paths.
	EndpointsFile string
}

func Load() Config {
	// Best-effort: a missing .env is the normal case.
	_ = godotenv.Load()

	return Config{
		BaseURL: getenv("STOREFRONT_API_URL", "http://127.0.0.1:5000/api"),
		Timeout: parseDuration(getenv("STOREFRONT_TIMEOUT", "10s"), 10*time.Second),

		Currency:       getenv("STOREFRONT_CURRENCY", "$"),
		TaxRate:        0.10,
		DeliveryFee:    5.00,
		MinOrderAmount: 10.00,

		PageSize: 5,

		CartFile:      getenv("STOREFRONT_STATE_FILE", defaultStateFile()),
		RedisURL:      getenv("STOREFRONT_REDIS_URL", ""),
		EndpointsFile: getenv("STOREFRONT_ENDPOINTS_FILE", ""),
	}
}

func defaultStateFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return dir + string(os.PathSeparator) + "storefront-state.json"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
