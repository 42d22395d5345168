package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Validator *validator.Validate
}

// AppConfig represents the application configuration
type AppConfig struct {
	Port                string
	BaseURL             string
	Environment         string
	LoggingLevel        string
	OpenSearchURL       string
	OpenSearchUser      string
	OpenSearchPass      string
	EnableLogging       bool
	MetricsPushURL      string
	MetricsPushInterval int
	CallbackIPWhitelist []string
	TrustProxyHeaders   bool
}

var (
	instance          *Config
	instanceOnce      sync.Once
	appConfigInstance *AppConfig
	appConfigOnce     sync.Once
)

func App() *Config {
	instanceOnce.Do(func() {
		instance = &Config{
			Validator: validator.New(),
		}
	})
	return instance
}

// GetAppConfig returns the application configuration
func GetAppConfig() *AppConfig {
	appConfigOnce.Do(func() {
		appConfigInstance = LoadAppConfig()
	})
	return appConfigInstance
}

// LoadAppConfig reads the application configuration from the environment
func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Port:                GetEnv("APP_PORT", "9999"),
		BaseURL:             strings.TrimRight(GetEnv("APP_URL", "http://localhost:9999"), "/"),
		Environment:         GetEnv("ENVIRONMENT", "development"),
		LoggingLevel:        GetEnv("LOGGING_LEVEL", "info"),
		OpenSearchURL:       GetEnv("OPENSEARCH_URL", "http://localhost:9200"),
		OpenSearchUser:      GetEnv("OPENSEARCH_USER", ""),
		OpenSearchPass:      GetEnv("OPENSEARCH_PASSWORD", ""),
		EnableLogging:       GetBoolEnv("ENABLE_OPENSEARCH_LOGGING", false),
		MetricsPushURL:      GetEnv("METRICS_PUSH_URL", ""),
		MetricsPushInterval: GetIntEnv("METRICS_PUSH_INTERVAL_SECONDS", 10),
		CallbackIPWhitelist: GetListEnv("CALLBACK_IP_WHITELIST"),
		TrustProxyHeaders:   GetBoolEnv("TRUST_PROXY_HEADERS", false),
	}
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBoolEnv returns the boolean value of an environment variable or a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetIntEnv returns the integer value of an environment variable or a default value
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetListEnv splits a comma separated environment variable, dropping blank items
func GetListEnv(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
