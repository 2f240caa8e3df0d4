// Package notify delivers order and contact notifications through an
// ordered chain of external channels. Delivery is best-effort by product
// decision: the business runs on shared low-budget infrastructure with no
// reliable single channel, so a validated submission is accepted no matter
// how delivery goes. Deliver cannot fail.
package notify

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrNotConfigured marks a channel whose credentials are absent. It is a
// planning signal to skip to the next channel, not a failure.
var ErrNotConfigured = errors.New("channel not configured")

// Message is one formatted notification. Recipients holds the business
// notification addresses: the first is the primary recipient, the rest go
// on copy.
type Message struct {
	Subject string
	Text    string
	HTML    string

	// Submitter identity, forwarded so staff can reply directly.
	SenderName  string
	SenderEmail string

	// Confirm, when set, is sent back to the submitter after a successful
	// primary delivery. Its failure never affects the overall outcome.
	Confirm *Confirmation
}

// Confirmation is the best-effort acknowledgement sent to the submitter.
type Confirmation struct {
	To      string
	Subject string
	HTML    string
}

// Channel is one concrete delivery mechanism. Send returns nil on
// delivery, ErrNotConfigured when the channel cannot be attempted, and any
// other error on a transport failure.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg *Message) error
}

// Notifier tries channels strictly in order, single attempt per channel,
// first success wins. Reordering the chain is a construction-time data
// change, never a code change.
type Notifier struct {
	channels []Channel
	timeout  time.Duration
}

const DefaultChannelTimeout = 8 * time.Second

func New(channels []Channel, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultChannelTimeout
	}
	return &Notifier{channels: channels, timeout: timeout}
}

// Deliver pushes the message through the chain and returns the name of the
// channel that accepted it. When every channel is unavailable or fails, the
// message is written to the local log as the terminal fallback and "log" is
// returned; the caller still treats the submission as accepted.
func (n *Notifier) Deliver(ctx context.Context, msg *Message) string {
	for _, ch := range n.channels {
		err := n.attempt(ctx, ch, msg)
		if err == nil {
			log.Printf("[notify] delivered %q via %s", msg.Subject, ch.Name())
			return ch.Name()
		}
		if errors.Is(err, ErrNotConfigured) {
			log.Printf("[notify] channel %s not configured, skipping", ch.Name())
			continue
		}
		log.Printf("[notify] channel %s failed: %v", ch.Name(), err)
	}

	log.Printf("[notify] all channels exhausted, local record: subject=%q from=%s <%s>\n%s",
		msg.Subject, msg.SenderName, msg.SenderEmail, msg.Text)
	return "log"
}

// attempt bounds a single channel call so a hung channel cannot starve the
// rest of the chain.
func (n *Notifier) attempt(ctx context.Context, ch Channel, msg *Message) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	return ch.Send(ctx, msg)
}
