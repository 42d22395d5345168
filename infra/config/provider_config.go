package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ProviderConfig manages payment provider configurations
type ProviderConfig struct {
	configs map[string]map[string]string
	baseURL string
	mu      sync.RWMutex
}

// providerEnvKeys maps provider config keys to environment variables
var providerEnvKeys = map[string]map[string]string{
	"interkassa": {
		"shopId":     "INTERKASSA_SHOP_ID",
		"secretKey":  "INTERKASSA_SECRET_KEY",
		"formAction": "INTERKASSA_FORM_ACTION",
	},
}

// NewProviderConfig creates a new, empty provider configuration
func NewProviderConfig() *ProviderConfig {
	return &ProviderConfig{
		configs: make(map[string]map[string]string),
		baseURL: strings.TrimRight(GetEnv("APP_URL", "http://localhost:9999"), "/"),
	}
}

// LoadFromEnv loads every provider whose required credentials are present in the environment
func (c *ProviderConfig) LoadFromEnv() {
	for providerName, keys := range providerEnvKeys {
		cfg := make(map[string]string)
		for key, env := range keys {
			if value := GetEnv(env, ""); value != "" {
				cfg[key] = value
			}
		}

		if cfg["shopId"] == "" || cfg["secretKey"] == "" {
			continue
		}

		cfg["baseURL"] = c.GetBaseURL()
		_ = c.SetConfig(providerName, cfg)
	}
}

// SetConfig sets configuration for a provider
func (c *ProviderConfig) SetConfig(providerName string, config map[string]string) error {
	if providerName == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if len(config) == 0 {
		return fmt.Errorf("config cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.configs[strings.ToLower(providerName)] = config
	return nil
}

// GetConfig returns a copy of the configuration for a specific provider
func (c *ProviderConfig) GetConfig(providerName string) (map[string]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	config, exists := c.configs[strings.ToLower(providerName)]
	if !exists {
		return nil, fmt.Errorf("no configuration found for provider: %s", providerName)
	}

	configCopy := make(map[string]string, len(config))
	for k, v := range config {
		configCopy[k] = v
	}
	return configCopy, nil
}

// GetAvailableProviders returns the sorted names of all configured providers
func (c *ProviderConfig) GetAvailableProviders() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	providers := make([]string, 0, len(c.configs))
	for provider := range c.configs {
		providers = append(providers, provider)
	}
	sort.Strings(providers)
	return providers
}

// GetBaseURL returns the public base URL of this service
func (c *ProviderConfig) GetBaseURL() string {
	return c.baseURL
}
