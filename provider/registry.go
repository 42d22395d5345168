package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrProviderNotRegistered is returned for names no gateway package registered
var ErrProviderNotRegistered = errors.New("payment provider is not registered")

// ProviderRegistry maps gateway names to provider factories.
// Names are case-insensitive.
type ProviderRegistry struct {
	factories map[string]ProviderFactory
	mu        sync.RWMutex
}

// NewProviderRegistry creates an empty registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		factories: make(map[string]ProviderFactory),
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a factory under name. It panics when name is empty, factory is nil
// or the name is taken, so wiring mistakes surface at init time.
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	key := normalizeName(name)
	if key == "" {
		panic("provider: Register called with an empty name")
	}
	if factory == nil {
		panic("provider: Register factory is nil for " + key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.factories[key]; dup {
		panic("provider: Register called twice for " + key)
	}
	r.factories[key] = factory
}

// Get returns the factory registered under name
func (r *ProviderRegistry) Get(name string) (ProviderFactory, error) {
	key := normalizeName(name)

	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("'%s': %w", key, ErrProviderNotRegistered)
	}
	return factory, nil
}

// CreateProvider returns a fresh, uninitialized provider instance
func (r *ProviderRegistry) CreateProvider(name string) (FormProvider, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return factory(), nil
}

// GetAvailableProviders returns the registered names in sorted order
func (r *ProviderRegistry) GetAvailableProviders() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// DefaultRegistry holds the gateways that register themselves from init
var DefaultRegistry = NewProviderRegistry()

func Register(name string, factory ProviderFactory) {
	DefaultRegistry.Register(name, factory)
}

func Get(name string) (ProviderFactory, error) {
	return DefaultRegistry.Get(name)
}

func CreateProvider(name string) (FormProvider, error) {
	return DefaultRegistry.CreateProvider(name)
}

func GetAvailableProviders() []string {
	return DefaultRegistry.GetAvailableProviders()
}
