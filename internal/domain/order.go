package domain

// ErrorKind is the machine-readable validation failure passed back to the
// presentation layer. Localization of user-facing copy happens there; the
// pipeline never produces localized strings.
type ErrorKind string

const (
	ErrMissingFields   ErrorKind = "missing_fields"
	ErrEmptyCart       ErrorKind = "empty_cart"
	ErrInvalidEmail    ErrorKind = "invalid_email"
	ErrPrivacyRequired ErrorKind = "privacy_required"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// Label is the Romanian payment description used in notification emails.
func (p PaymentMethod) Label() string {
	if p == PaymentCash {
		return "Ramburs (numerar la livrare)"
	}
	return "Transfer bancar"
}

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentTransfer
}

// OrderSubmission is the immutable value handed to the pipeline: buyer
// fields plus a snapshot of the cart at commit time. It is constructed once
// and never mutated.
type OrderSubmission struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Address  string        `json:"address"`
	Notes    string        `json:"notes"`
	Payment  PaymentMethod `json:"payment"`
	Items    []CartItem    `json:"items"`
	Subtotal float64       `json:"subtotal"`
	Discount float64       `json:"discount"`
	Coupon   string        `json:"coupon,omitempty"`
	Total    float64       `json:"total"`
}

type OrderResult struct {
	Success     bool      `json:"success"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	Error       ErrorKind `json:"error,omitempty"`
}
