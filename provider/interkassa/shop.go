package interkassa

// Shop holds the merchant identity assigned by Interkassa and the shared
// secret used to sign status notifications. The secret never leaves the shop:
// it is not part of any form value.
type Shop struct {
	id        string
	secretKey string
}

// NewShop creates a shop. Both the shop id and the secret key are required.
func NewShop(id, secretKey string) (*Shop, error) {
	if id == "" {
		return nil, newValidationError("shopId", "shop id is required")
	}
	if secretKey == "" {
		return nil, newValidationError("secretKey", "secret key is required")
	}

	return &Shop{id: id, secretKey: secretKey}, nil
}

// ID returns the shop id
func (s *Shop) ID() string {
	return s.id
}

// CreatePayment creates a payment request for this shop
func (s *Shop) CreatePayment(opts PaymentOptions) (*Payment, error) {
	return NewPayment(s, opts)
}

// ReceiveStatus parses and verifies a status notification addressed to this shop
func (s *Shop) ReceiveStatus(fields map[string]string) (*Status, error) {
	return NewStatus(s, fields)
}
