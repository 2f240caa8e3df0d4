package order

import (
	"regexp"
	"strings"

	"github.com/lambrugeorge/colipop-site/internal/domain"
)

// Basic local@domain.tld shape; anything stricter rejects addresses real
// customers use.
var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateOrder checks the submission before any delivery attempt. It is
// synchronous and side-effect-free. Field checks run before the cart check,
// so a submission with both problems reports missing_fields.
func validateOrder(sub domain.OrderSubmission) (domain.ErrorKind, bool) {
	if isBlank(sub.Name) || isBlank(sub.Email) || isBlank(sub.Phone) || isBlank(sub.Address) {
		return domain.ErrMissingFields, false
	}
	if len(sub.Items) == 0 {
		return domain.ErrEmptyCart, false
	}
	return "", true
}

func validateContact(sub domain.ContactSubmission) (domain.ErrorKind, bool) {
	if isBlank(sub.Name) || isBlank(sub.Email) || isBlank(sub.Message) {
		return domain.ErrMissingFields, false
	}
	if !sub.Privacy || !sub.Captcha {
		return domain.ErrPrivacyRequired, false
	}
	if !emailRx.MatchString(strings.TrimSpace(sub.Email)) {
		return domain.ErrInvalidEmail, false
	}
	return "", true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
