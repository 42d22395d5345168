package interkassa

import (
	"context"
	"errors"
	"strings"

	"github.com/mstgnz/interkassa/provider"
)

const providerName = "interkassa"

// Provider adapts the Interkassa client to provider.FormProvider
type Provider struct {
	shop       *Shop
	formAction string
	baseURL    string // our own base URL, used to build default callback URLs
}

// NewProvider creates a new Interkassa payment provider
func NewProvider() provider.FormProvider {
	return &Provider{}
}

// GetRequiredConfig returns the configuration fields understood by Interkassa
func (p *Provider) GetRequiredConfig() []provider.ConfigField {
	return []provider.ConfigField{
		{
			Key:         "shopId",
			Required:    true,
			Type:        "string",
			Description: "Shop id assigned by Interkassa",
			Example:     "52e0105ebf4efc070d704c1d",
			MinLength:   1,
			MaxLength:   64,
		},
		{
			Key:         "secretKey",
			Required:    true,
			Type:        "string",
			Description: "Secret key from the Interkassa shop settings",
			Example:     "rVCrCFMt3Tdz2kzT",
			MinLength:   1,
		},
		{
			Key:         "formAction",
			Required:    false,
			Type:        "url",
			Description: "Override of the Interkassa payment endpoint",
			Example:     DefaultFormAction,
		},
		{
			Key:         "baseURL",
			Required:    false,
			Type:        "url",
			Description: "Public base URL of this service, used for default callback URLs",
			Example:     "https://shop.example.com",
		},
	}
}

// ValidateConfig validates the provided configuration against provider requirements
func (p *Provider) ValidateConfig(config map[string]string) error {
	return provider.ValidateConfigFields(providerName, config, p.GetRequiredConfig())
}

// Initialize sets up the provider with the shop credentials
func (p *Provider) Initialize(config map[string]string) error {
	shop, err := NewShop(config["shopId"], config["secretKey"])
	if err != nil {
		return err
	}

	p.shop = shop
	p.formAction = config["formAction"]
	p.baseURL = strings.TrimRight(config["baseURL"], "/")

	return nil
}

// CreateCheckout builds the Interkassa checkout form for the request
func (p *Provider) CreateCheckout(ctx context.Context, request provider.CheckoutRequest) (*provider.CheckoutForm, error) {
	if p.shop == nil {
		return nil, errors.New("interkassa: provider is not initialized")
	}

	opts := PaymentOptions{
		ID:             request.ID,
		Amount:         request.Amount,
		Description:    request.Description,
		PaysystemAlias: request.PaysystemAlias,
		Baggage:        request.Baggage,
		SuccessURL:     request.SuccessURL,
		SuccessMethod:  Method(strings.ToUpper(request.SuccessMethod)),
		FailURL:        request.FailURL,
		FailMethod:     Method(strings.ToUpper(request.FailMethod)),
		StatusURL:      request.StatusURL,
		StatusMethod:   Method(strings.ToUpper(request.StatusMethod)),
		FormAction:     p.formAction,
	}
	p.applyDefaultURLs(&opts)

	payment, err := p.shop.CreatePayment(opts)
	if err != nil {
		return nil, err
	}

	values := payment.FormValues()
	fields := make([]provider.FormField, 0, len(values))
	for _, v := range values {
		fields = append(fields, provider.FormField{Name: v.Name, Value: v.Value})
	}

	return &provider.CheckoutForm{
		PaymentID: payment.ID(),
		Action:    payment.FormAction(),
		Method:    FormMethod,
		Fields:    fields,
	}, nil
}

// applyDefaultURLs points unset callback URLs at this service's callback routes
func (p *Provider) applyDefaultURLs(opts *PaymentOptions) {
	if p.baseURL == "" {
		return
	}

	callbackBase := p.baseURL + "/callback/" + providerName
	if opts.StatusURL == "" {
		opts.StatusURL = callbackBase + "/status"
		if opts.StatusMethod == "" {
			opts.StatusMethod = MethodPost
		}
	}
	if opts.SuccessURL == "" {
		opts.SuccessURL = callbackBase + "/success"
	}
	if opts.FailURL == "" {
		opts.FailURL = callbackBase + "/fail"
	}
}

// ValidateNotification verifies and parses an Interkassa status notification
func (p *Provider) ValidateNotification(ctx context.Context, data map[string]string) (*provider.Notification, error) {
	if p.shop == nil {
		return nil, errors.New("interkassa: provider is not initialized")
	}

	status, err := p.shop.ReceiveStatus(data)
	if err != nil {
		return nil, err
	}

	payment := status.Payment()
	notification := &provider.Notification{
		Provider:       providerName,
		PaymentID:      payment.ID(),
		Amount:         payment.AmountString(defaultAmountDecimals),
		Description:    payment.Description(),
		PaysystemAlias: payment.PaysystemAlias(),
		Baggage:        payment.Baggage(),
		State:          mapState(status.State()),
		TransactionID:  status.TransID(),
		CurrencyRate:   status.CurrencyRate().String(),
		FeesPayer:      status.FeesPayer().String(),
		Verified:       status.Verified(),
	}

	if status.Timestamp() > 0 {
		paidAt := status.DateTime()
		notification.PaidAt = &paidAt
	}

	return notification, nil
}

func mapState(state State) provider.NotificationState {
	switch state {
	case StateSuccess:
		return provider.StateSuccessful
	case StateFail:
		return provider.StateFailed
	default:
		return provider.StateUnknown
	}
}
