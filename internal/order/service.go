// Package order is the submission pipeline: it validates order and contact
// submissions, derives the order number, formats the notification message
// and hands it to the delivery chain. Validation problems are the only
// failures a caller can observe; delivery is best-effort by design.
package order

import (
	"context"
	"log"
	"time"

	"github.com/lambrugeorge/colipop-site/internal/domain"
	"github.com/lambrugeorge/colipop-site/internal/notify"
)

// Deliverer pushes a formatted message through the channel chain. It cannot
// fail; it reports which channel accepted the message.
type Deliverer interface {
	Deliver(ctx context.Context, msg *notify.Message) string
}

type Service struct {
	notifier Deliverer
	now      func() time.Time
}

func NewService(notifier Deliverer) *Service {
	return &Service{
		notifier: notifier,
		now:      time.Now,
	}
}

// SubmitOrder is the sole entry point for placing an order. A structurally
// valid submission always succeeds and carries an order number, no matter
// how delivery went.
func (s *Service) SubmitOrder(ctx context.Context, sub domain.OrderSubmission) domain.OrderResult {
	if kind, ok := validateOrder(sub); !ok {
		return domain.OrderResult{Success: false, Error: kind}
	}

	now := s.now()
	number := NewOrderNumber(now)
	msg := orderMessage(sub, number, now)

	channel := s.notifier.Deliver(ctx, msg)
	log.Printf("[order] %s accepted for %s, notified via %s", number, sub.Email, channel)

	return domain.OrderResult{Success: true, OrderNumber: number}
}

// SubmitContact is the sole entry point for a contact message. As with
// orders, a valid submission never reports a delivery failure.
func (s *Service) SubmitContact(ctx context.Context, sub domain.ContactSubmission) domain.ContactResult {
	if kind, ok := validateContact(sub); !ok {
		return domain.ContactResult{Success: false, Error: kind}
	}

	msg := contactMessage(sub)
	channel := s.notifier.Deliver(ctx, msg)
	log.Printf("[contact] message from %s accepted, notified via %s", sub.Email, channel)

	return domain.ContactResult{Success: true}
}
