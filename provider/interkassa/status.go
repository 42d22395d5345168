package interkassa

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is a payment status notification received from Interkassa.
//
// Only notifications sent to the status URL carry a signature. Notifications
// without ik_sign_hash are accepted with Verified() == false and must not be
// used alone to mark an order as paid. A notification whose signature does not
// match is rejected by NewStatus.
type Status struct {
	shop    *Shop
	payment *Payment

	verified     bool
	timestamp    int64
	state        State
	transID      string
	currencyRate decimal.Decimal
	feesPayer    FeesPayer
}

// NewStatus validates fields received from Interkassa (usually the POST body
// of the status request) and builds the status notification.
func NewStatus(shop *Shop, fields map[string]string) (*Status, error) {
	if shop == nil {
		return nil, newValidationError("shop", "shop is required")
	}

	if !strings.EqualFold(fields[FieldShopID], shop.ID()) {
		return nil, &VerificationError{Reason: "received shop id does not match current shop id"}
	}

	s := &Status{shop: shop}

	if signature, ok := fields[FieldSignHash]; ok {
		if !VerifySignature(fields, shop.secretKey, signature) {
			return nil, &VerificationError{Reason: "signature does not match the data"}
		}
		s.verified = true
	}

	payment, err := NewPayment(shop, PaymentOptions{
		ID:             fields[FieldPaymentID],
		Amount:         fields[FieldPaymentAmount],
		Description:    fields[FieldPaymentDesc],
		PaysystemAlias: fields[FieldPaysystemAlias],
		Baggage:        fields[FieldBaggage],
	})
	if err != nil {
		return nil, err
	}
	s.payment = payment

	if s.timestamp, err = parseInt(fields, FieldTimestamp); err != nil {
		return nil, err
	}
	// states outside success/fail are kept as sent and map to an unknown notification state
	s.state = State(fields[FieldState])
	s.transID = fields[FieldTransID]
	if s.currencyRate, err = parseDecimal(fields, FieldCurrencyExch); err != nil {
		return nil, err
	}
	feesPayer, err := parseInt(fields, FieldFeesPayer)
	if err != nil {
		return nil, err
	}
	s.feesPayer = FeesPayer(feesPayer)

	return s, nil
}

// parseInt returns 0 for an absent or empty field and an error for a malformed one
func parseInt(fields map[string]string, name string) (int64, error) {
	raw := strings.TrimSpace(fields[name])
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, newValidationError(name, "invalid integer %q", raw)
	}
	return v, nil
}

func parseDecimal(fields map[string]string, name string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(fields[name])
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, newValidationError(name, "invalid decimal %q", raw)
	}
	return v, nil
}

// Verified reports whether the notification carried a valid signature
func (s *Status) Verified() bool {
	return s.verified
}

// Timestamp returns the transaction time as unix seconds
func (s *Status) Timestamp() int64 {
	return s.timestamp
}

// DateTime returns the transaction time in UTC
func (s *Status) DateTime() time.Time {
	return time.Unix(s.timestamp, 0).UTC()
}

// State returns the payment state as sent; empty when the field was absent
func (s *Status) State() State {
	return s.state
}

// TransID returns the transaction id assigned by Interkassa
func (s *Status) TransID() string {
	return s.transID
}

// CurrencyRate returns the exchange rate configured in the shop at transaction time
func (s *Status) CurrencyRate() decimal.Decimal {
	return s.currencyRate
}

func (s *Status) CurrencyRateString(decimals int) string {
	return formatFixed(s.currencyRate, decimals)
}

func (s *Status) FeesPayer() FeesPayer {
	return s.feesPayer
}

func (s *Status) Payment() *Payment {
	return s.payment
}

func (s *Status) Shop() *Shop {
	return s.shop
}
