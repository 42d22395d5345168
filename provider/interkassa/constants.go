package interkassa

const (
	// DefaultFormAction is the Interkassa payment endpoint the checkout form posts to
	DefaultFormAction = "http://www.interkassa.com/lib/payment.php"

	// FormMethod is the HTTP method of the checkout form
	FormMethod = "POST"

	// Form and notification field names
	FieldShopID         = "ik_shop_id"
	FieldPaymentAmount  = "ik_payment_amount"
	FieldPaymentID      = "ik_payment_id"
	FieldPaymentDesc    = "ik_payment_desc"
	FieldPaysystemAlias = "ik_paysystem_alias"
	FieldBaggage        = "ik_baggage_fields"
	FieldSuccessURL     = "ik_success_url"
	FieldSuccessMethod  = "ik_success_method"
	FieldFailURL        = "ik_fail_url"
	FieldFailMethod     = "ik_fail_method"
	FieldStatusURL      = "ik_status_url"
	FieldStatusMethod   = "ik_status_method"
	FieldTimestamp      = "ik_payment_timestamp"
	FieldState          = "ik_payment_state"
	FieldTransID        = "ik_trans_id"
	FieldCurrencyExch   = "ik_currency_exch"
	FieldFeesPayer      = "ik_fees_payer"
	FieldSignHash       = "ik_sign_hash"

	defaultAmountDecimals = 2
)

// Method is the way Interkassa delivers the buyer (or the status request) to a merchant URL
type Method string

const (
	MethodPost Method = "POST"
	MethodGet  Method = "GET"
	MethodLink Method = "LINK"
	// MethodOff disables status requests; only valid for the status method
	MethodOff Method = "OFF"
)

var (
	redirectMethods = []Method{MethodPost, MethodGet, MethodLink}
	statusMethods   = []Method{MethodPost, MethodGet, MethodOff}
)

func allowedMethod(method Method, allowed []Method) bool {
	for _, m := range allowed {
		if m == method {
			return true
		}
	}
	return false
}

// State is the payment state reported in a status notification
type State string

const (
	StateSuccess State = "success"
	StateFail    State = "fail"
)

// FeesPayer tells who paid the gateway fees for a transaction
type FeesPayer int

const (
	FeesPayerShop  FeesPayer = 0
	FeesPayerBuyer FeesPayer = 1
	FeesPayerEqual FeesPayer = 2
)

func (f FeesPayer) String() string {
	switch f {
	case FeesPayerShop:
		return "shop"
	case FeesPayerBuyer:
		return "buyer"
	case FeesPayerEqual:
		return "equal"
	default:
		return "unknown"
	}
}
