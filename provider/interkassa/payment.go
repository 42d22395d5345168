package interkassa

import (
	"net/url"

	"github.com/mstgnz/interkassa/infra/logger"
	"github.com/shopspring/decimal"
)

// PaymentOptions configures a new payment. ID, Amount and Description are
// required; every other field is optional and ignored when empty.
type PaymentOptions struct {
	ID          string
	Amount      string
	Description string

	PaysystemAlias string
	Baggage        string
	SuccessURL     string
	SuccessMethod  Method
	FailURL        string
	FailMethod     Method
	StatusURL      string
	StatusMethod   Method
	FormAction     string
}

// Payment is a payment request sent to Interkassa through an HTML form
type Payment struct {
	shop *Shop

	id          string
	amount      decimal.Decimal
	description string

	paysystemAlias string
	baggage        string
	successURL     string
	successMethod  Method
	failURL        string
	failMethod     Method
	statusURL      string
	statusMethod   Method
	formAction     string
}

// FormField is a single hidden input of the checkout form
type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FormValues keeps the checkout form fields in the order Interkassa documents them
type FormValues []FormField

// Get returns the value of the named field
func (v FormValues) Get(name string) (string, bool) {
	for _, f := range v {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Map returns the fields as a plain map
func (v FormValues) Map() map[string]string {
	m := make(map[string]string, len(v))
	for _, f := range v {
		m[f.Name] = f.Value
	}
	return m
}

// URLValues returns the fields url-encodable, e.g. for a server side POST
func (v FormValues) URLValues() url.Values {
	values := url.Values{}
	for _, f := range v {
		values.Set(f.Name, f.Value)
	}
	return values
}

// NewPayment creates a payment for the given shop
func NewPayment(shop *Shop, opts PaymentOptions) (*Payment, error) {
	if shop == nil {
		return nil, newValidationError("shop", "shop is required")
	}
	if opts.ID == "" {
		return nil, newValidationError("id", "payment id is required")
	}
	if opts.Amount == "" {
		return nil, newValidationError("amount", "payment amount is required")
	}
	if opts.Description == "" {
		return nil, newValidationError("description", "payment description is required")
	}

	amount, err := parseAmount(opts.Amount)
	if err != nil {
		return nil, err
	}

	p := &Payment{
		shop:          shop,
		id:            opts.ID,
		amount:        amount,
		description:   opts.Description,
		successMethod: MethodPost,
		failMethod:    MethodPost,
		statusMethod:  MethodPost,
		formAction:    DefaultFormAction,
	}

	p.SetPaysystemAlias(opts.PaysystemAlias).
		SetBaggage(opts.Baggage).
		SetSuccessURL(opts.SuccessURL).
		SetSuccessMethod(opts.SuccessMethod).
		SetFailURL(opts.FailURL).
		SetFailMethod(opts.FailMethod).
		SetStatusURL(opts.StatusURL).
		SetStatusMethod(opts.StatusMethod).
		SetFormAction(opts.FormAction)

	return p, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, newValidationError("amount", "invalid payment amount %q", raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, newValidationError("amount", "payment amount cannot be negative")
	}
	return amount, nil
}

func (p *Payment) ID() string {
	return p.id
}

func (p *Payment) Amount() decimal.Decimal {
	return p.amount
}

// AmountString formats the amount with exactly decimals fractional digits,
// rounding half away from zero.
func (p *Payment) AmountString(decimals int) string {
	return formatFixed(p.amount, decimals)
}

func formatFixed(d decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return d.StringFixed(int32(decimals))
}

func (p *Payment) Description() string {
	return p.description
}

func (p *Payment) PaysystemAlias() string {
	return p.paysystemAlias
}

// SetPaysystemAlias preselects the payment system on the Interkassa side
func (p *Payment) SetPaysystemAlias(alias string) *Payment {
	if alias != "" {
		p.paysystemAlias = alias
	}
	return p
}

func (p *Payment) Baggage() string {
	return p.baggage
}

// SetBaggage attaches an opaque string returned unchanged in the status notification
func (p *Payment) SetBaggage(baggage string) *Payment {
	if baggage != "" {
		p.baggage = baggage
	}
	return p
}

func (p *Payment) SuccessURL() string {
	return p.successURL
}

func (p *Payment) SetSuccessURL(u string) *Payment {
	if u != "" {
		p.successURL = u
	}
	return p
}

func (p *Payment) SuccessMethod() Method {
	return p.successMethod
}

func (p *Payment) SetSuccessMethod(method Method) *Payment {
	p.successMethod = p.pickMethod("success", p.successMethod, method, redirectMethods)
	return p
}

func (p *Payment) FailURL() string {
	return p.failURL
}

func (p *Payment) SetFailURL(u string) *Payment {
	if u != "" {
		p.failURL = u
	}
	return p
}

func (p *Payment) FailMethod() Method {
	return p.failMethod
}

func (p *Payment) SetFailMethod(method Method) *Payment {
	p.failMethod = p.pickMethod("fail", p.failMethod, method, redirectMethods)
	return p
}

func (p *Payment) StatusURL() string {
	return p.statusURL
}

func (p *Payment) SetStatusURL(u string) *Payment {
	if u != "" {
		p.statusURL = u
	}
	return p
}

func (p *Payment) StatusMethod() Method {
	return p.statusMethod
}

func (p *Payment) SetStatusMethod(method Method) *Payment {
	p.statusMethod = p.pickMethod("status", p.statusMethod, method, statusMethods)
	return p
}

// pickMethod keeps the current method when the new one is empty or not allowed.
// A disallowed value is not an error so a typo cannot break checkout, but it is logged.
func (p *Payment) pickMethod(kind string, current, method Method, allowed []Method) Method {
	if method == "" {
		return current
	}
	if !allowedMethod(method, allowed) {
		logger.Warn("Ignoring unsupported "+kind+" method", logger.LogContext{
			Provider: "interkassa",
			Fields: map[string]any{
				"payment_id": p.id,
				"method":     string(method),
				"kept":       string(current),
			},
		})
		return current
	}
	return method
}

// FormAction returns the URL the checkout form is submitted to
func (p *Payment) FormAction() string {
	return p.formAction
}

func (p *Payment) SetFormAction(u string) *Payment {
	if u != "" {
		p.formAction = u
	}
	return p
}

func (p *Payment) Shop() *Shop {
	return p.shop
}

// FormValues returns the hidden fields of the checkout form. Optional fields
// appear only when set, except the paysystem alias which is always sent.
func (p *Payment) FormValues() FormValues {
	values := FormValues{
		{Name: FieldShopID, Value: p.shop.ID()},
		{Name: FieldPaymentAmount, Value: p.AmountString(defaultAmountDecimals)},
		{Name: FieldPaymentID, Value: p.id},
		{Name: FieldPaymentDesc, Value: p.description},
		{Name: FieldPaysystemAlias, Value: p.paysystemAlias},
	}

	if p.baggage != "" {
		values = append(values, FormField{Name: FieldBaggage, Value: p.baggage})
	}

	if p.successURL != "" {
		values = append(values,
			FormField{Name: FieldSuccessURL, Value: p.successURL},
			FormField{Name: FieldSuccessMethod, Value: string(p.successMethod)},
		)
	}

	if p.failURL != "" {
		values = append(values,
			FormField{Name: FieldFailURL, Value: p.failURL},
			FormField{Name: FieldFailMethod, Value: string(p.failMethod)},
		)
	}

	if p.statusURL != "" {
		values = append(values,
			FormField{Name: FieldStatusURL, Value: p.statusURL},
			FormField{Name: FieldStatusMethod, Value: string(p.statusMethod)},
		)
	}

	return values
}
