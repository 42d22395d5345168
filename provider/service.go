package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mstgnz/interkassa/infra/logger"
)

// ErrProviderNotConfigured is returned for providers that were never added to the service
var ErrProviderNotConfigured = errors.New("payment provider is not configured")

// EventLogger stores checkout and notification events for auditing
type EventLogger interface {
	LogPaymentEvent(ctx context.Context, providerName string, event any) error
}

// PaymentEvent is the audit record of a checkout or notification
type PaymentEvent struct {
	Timestamp    time.Time         `json:"timestamp"`
	Provider     string            `json:"provider"`
	Type         string            `json:"type"` // "checkout" or "notification"
	PaymentID    string            `json:"payment_id,omitempty"`
	Amount       string            `json:"amount,omitempty"`
	State        string            `json:"state,omitempty"`
	Verified     bool              `json:"verified"`
	Fields       map[string]string `json:"fields,omitempty"`
	Error        string            `json:"error,omitempty"`
	ProcessingMs int64             `json:"processing_ms"`
}

// PaymentService manages checkout and notification operations through the configured providers
type PaymentService struct {
	providers       map[string]FormProvider
	defaultProvider string
	eventLogger     EventLogger
	mu              sync.RWMutex
}

// NewPaymentService creates a new payment service; eventLogger may be nil
func NewPaymentService(eventLogger EventLogger) *PaymentService {
	return &PaymentService{
		providers:   make(map[string]FormProvider),
		eventLogger: eventLogger,
	}
}

// AddProvider creates the named provider from the registry and initializes it with config
func (s *PaymentService) AddProvider(name string, config map[string]string) error {
	name = normalizeName(name)
	p, err := CreateProvider(name)
	if err != nil {
		return err
	}

	if err := p.ValidateConfig(config); err != nil {
		return err
	}

	if err := p.Initialize(config); err != nil {
		return fmt.Errorf("failed to initialize provider %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.providers[name] = p
	if s.defaultProvider == "" {
		s.defaultProvider = name
	}

	return nil
}

// SetDefaultProvider sets the provider used when a request does not name one
func (s *PaymentService) SetDefaultProvider(name string) error {
	name = normalizeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.providers[name]; !ok {
		return fmt.Errorf("%s: %w", name, ErrProviderNotConfigured)
	}
	s.defaultProvider = name
	return nil
}

// GetProvider returns an initialized provider; an empty name selects the default one
func (s *PaymentService) GetProvider(name string) (FormProvider, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = normalizeName(name)
	if name == "" {
		name = s.defaultProvider
	}
	if name == "" {
		return nil, "", ErrProviderNotConfigured
	}

	p, ok := s.providers[name]
	if !ok {
		return nil, name, fmt.Errorf("%s: %w", name, ErrProviderNotConfigured)
	}

	return p, name, nil
}

// CreateCheckout builds the checkout form for the given provider
func (s *PaymentService) CreateCheckout(ctx context.Context, providerName string, request CheckoutRequest) (*CheckoutForm, error) {
	p, name, err := s.GetProvider(providerName)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	form, err := p.CreateCheckout(ctx, request)

	event := PaymentEvent{
		Timestamp:    startTime.UTC(),
		Provider:     name,
		Type:         "checkout",
		PaymentID:    request.ID,
		Amount:       request.Amount,
		ProcessingMs: time.Since(startTime).Milliseconds(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	s.logEvent(ctx, name, event)

	return form, err
}

// ValidateNotification verifies a notification received for the given provider
func (s *PaymentService) ValidateNotification(ctx context.Context, providerName string, data map[string]string) (*Notification, error) {
	p, name, err := s.GetProvider(providerName)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	notification, err := p.ValidateNotification(ctx, data)

	event := PaymentEvent{
		Timestamp:    startTime.UTC(),
		Provider:     name,
		Type:         "notification",
		Fields:       data,
		ProcessingMs: time.Since(startTime).Milliseconds(),
	}
	if err != nil {
		event.Error = err.Error()
	} else {
		event.PaymentID = notification.PaymentID
		event.Amount = notification.Amount
		event.State = string(notification.State)
		event.Verified = notification.Verified
	}
	s.logEvent(ctx, name, event)

	return notification, err
}

func (s *PaymentService) logEvent(ctx context.Context, providerName string, event PaymentEvent) {
	if s.eventLogger == nil {
		return
	}

	if err := s.eventLogger.LogPaymentEvent(ctx, providerName, event); err != nil {
		logger.Warn("Failed to log payment event", logger.LogContext{
			Provider: providerName,
			Fields: map[string]any{
				"type":  event.Type,
				"error": err.Error(),
			},
		})
	}
}
