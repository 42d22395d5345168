package provider

import (
	"context"
	"time"
)

// NotificationState represents the payment outcome reported by a gateway
type NotificationState string

const (
	StateSuccessful NotificationState = "successful"
	StateFailed     NotificationState = "failed"
	StateUnknown    NotificationState = "unknown"
)

// ConfigField represents a required configuration field for a payment provider
type ConfigField struct {
	Key         string `json:"key"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // "string", "number", "url", "email", "boolean"
	Description string `json:"description"`
	Example     string `json:"example"`
	Pattern     string `json:"pattern,omitempty"`   // regex pattern for validation
	MinLength   int    `json:"minLength,omitempty"` // minimum length for string fields
	MaxLength   int    `json:"maxLength,omitempty"` // maximum length for string fields
}

// CheckoutRequest contains the information required to send a buyer to a hosted payment page
type CheckoutRequest struct {
	ID             string `json:"id,omitempty"`
	Amount         string `json:"amount" validate:"required,amount"`
	Description    string `json:"description" validate:"required,max=255"`
	PaysystemAlias string `json:"paysystemAlias,omitempty"`
	Baggage        string `json:"baggage,omitempty"`
	SuccessURL     string `json:"successUrl,omitempty" validate:"omitempty,url"`
	SuccessMethod  string `json:"successMethod,omitempty"`
	FailURL        string `json:"failUrl,omitempty" validate:"omitempty,url"`
	FailMethod     string `json:"failMethod,omitempty"`
	StatusURL      string `json:"statusUrl,omitempty" validate:"omitempty,url"`
	StatusMethod   string `json:"statusMethod,omitempty"`
}

// FormField is a single hidden input of a checkout form
type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CheckoutForm describes the HTML form that redirects the buyer to the gateway
type CheckoutForm struct {
	PaymentID string      `json:"paymentId"`
	Action    string      `json:"action"`
	Method    string      `json:"method"`
	Fields    []FormField `json:"fields"`
}

// Notification is a validated payment status notification
type Notification struct {
	Provider       string            `json:"provider"`
	PaymentID      string            `json:"paymentId"`
	Amount         string            `json:"amount"`
	Description    string            `json:"description,omitempty"`
	PaysystemAlias string            `json:"paysystemAlias,omitempty"`
	Baggage        string            `json:"baggage,omitempty"`
	State          NotificationState `json:"state"`
	TransactionID  string            `json:"transactionId,omitempty"`
	CurrencyRate   string            `json:"currencyRate,omitempty"`
	FeesPayer      string            `json:"feesPayer,omitempty"`
	PaidAt         *time.Time        `json:"paidAt,omitempty"`
	Verified       bool              `json:"verified"`
}

// FormProvider defines the interface of hosted payment page gateways:
// the buyer is sent to the gateway with a form and the result comes back as a notification.
type FormProvider interface {
	// Initialize sets up the provider with merchant credentials and configuration
	Initialize(config map[string]string) error

	// GetRequiredConfig returns the configuration fields required for this provider
	GetRequiredConfig() []ConfigField

	// ValidateConfig validates the provided configuration against provider requirements
	ValidateConfig(config map[string]string) error

	// CreateCheckout builds the form that sends the buyer to the payment page
	CreateCheckout(ctx context.Context, request CheckoutRequest) (*CheckoutForm, error)

	// ValidateNotification verifies and parses a notification sent by the gateway
	ValidateNotification(ctx context.Context, data map[string]string) (*Notification, error)
}

// ProviderFactory is a function type that creates a new FormProvider
type ProviderFactory func() FormProvider
