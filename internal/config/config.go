package config

import (
	"time"

	"github.com/spf13/viper"
)

// Service names as reported by health and metrics endpoints.
const (
	ServiceUser  = "user-service"
	ServiceOrder = "order-service"
)

// Config aggregates the environment-driven settings of one service.
type Config struct {
	Service        string
	Port           string
	StoreDriver    string // memory | gorm
	DatabaseDSN    string // used when StoreDriver is gorm
	UserServiceURL string // order service only
	VerifyTimeout  time.Duration
	HealthTimeout  time.Duration
}

// Load reads configuration from environment variables, applying defaults.
// The user registry listens on :8000 and the order registry on :8001
// unless APP_PORT overrides it; USER_SERVICE_URL defaults to the
// in-cluster service name and is expected to be overridden per
// deployment environment.
func Load(service string) Config {
	v := viper.New()
	v.SetDefault("APP_PORT", defaultPort(service))
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("USER_SERVICE_URL", "http://user-service:8000")
	v.SetDefault("VERIFY_TIMEOUT", 5*time.Second)
	v.SetDefault("HEALTH_TIMEOUT", 2*time.Second)
	v.AutomaticEnv()

	return Config{
		Service:        service,
		Port:           v.GetString("APP_PORT"),
		StoreDriver:    v.GetString("STORE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		UserServiceURL: v.GetString("USER_SERVICE_URL"),
		VerifyTimeout:  v.GetDuration("VERIFY_TIMEOUT"),
		HealthTimeout:  v.GetDuration("HEALTH_TIMEOUT"),
	}
}

func defaultPort(service string) string {
	if service == ServiceOrder {
		return ":8001"
	}
	return ":8000"
}
