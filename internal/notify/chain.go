package notify

import (
	"fmt"
	"net/http"
)

// Settings holds everything needed to construct the delivery chain. It is
// built once at startup and injected; channels never read the environment
// themselves.
type Settings struct {
	SMTP         MailerConfig
	Web3FormsKey string
	FormspreeID  string

	// Recipients are the business notification addresses; first is the
	// primary recipient, the rest go on copy.
	Recipients []string
	FromName   string

	// Chain is the ordered list of channel type names to attempt.
	Chain []string
}

// DefaultChain is the production priority order.
func DefaultChain() []string {
	return []string{"smtp", "web3forms", "formsubmit", "formspree"}
}

// BuildChain turns the configured channel names into concrete channels.
// Adding, removing or reordering channels is a configuration change.
func BuildChain(s Settings, client *http.Client) ([]Channel, error) {
	if client == nil {
		client = http.DefaultClient
	}

	chain := s.Chain
	if len(chain) == 0 {
		chain = DefaultChain()
	}

	channels := make([]Channel, 0, len(chain))
	for _, name := range chain {
		switch name {
		case "smtp":
			channels = append(channels, NewMailer(s.SMTP, s.Recipients, s.FromName))
		case "web3forms":
			channels = append(channels, NewWeb3Forms(client, Web3FormsEndpoint, s.Web3FormsKey, s.Recipients, s.FromName))
		case "formsubmit":
			channels = append(channels, NewFormSubmit(client, FormSubmitBaseURL, s.Recipients))
		case "formspree":
			channels = append(channels, NewFormspree(client, FormspreeBaseURL, s.FormspreeID, s.Recipients))
		default:
			return nil, fmt.Errorf("unknown notification channel %q", name)
		}
	}
	return channels, nil
}
