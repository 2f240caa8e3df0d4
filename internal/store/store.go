package store

import (
	"context"
	"errors"

	"github.com/lambrugeorge/colipop-site/internal/domain"
)

// CartStore keeps session carts between requests. Carts are short-lived by
// product constraint; both implementations expire idle carts, which the
// submission pipeline must tolerate (it never assumes cart survival).
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Put(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCartNotFound = errors.New("cart not found")
