package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lambrugeorge/colipop-site/internal/domain"
	"github.com/lambrugeorge/colipop-site/internal/store"
)

// Service is the stateful cart handle exposed to the presentation layer.
// All pricing stays in domain.Cart; this layer only loads, mutates and
// stores per-session carts.
type Service struct {
	store store.CartStore
	sfg   singleflight.Group // Dedupes concurrent loads on the read path
	mu    sync.Mutex         // Serializes the load-modify-store mutation cycle
}

func NewService(cartStore store.CartStore) *Service {
	return &Service{store: cartStore}
}

// Get returns the session cart, or a fresh empty cart when none is stored.
// An expired or missing cart is a normal condition, not an error.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		return s.load(ctx, sessionID)
	})

	if err != nil {
		return nil, err
	}

	// Joined flights share one result; each caller gets its own copy so a
	// later mutation cannot reach into another request's cart.
	return cloneCart(v.(*domain.Cart)), nil
}

// AddItem puts one unit of the product in the cart, merging with an
// existing line for the same product.
func (s *Service) AddItem(ctx context.Context, sessionID string, product domain.Product) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) {
		c.AddItem(product)
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) {
		c.UpdateQuantity(productID, quantity)
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) {
		c.RemoveItem(productID)
	})
}

// Clear empties the cart. Called by the order handler only after a
// confirmed successful submission.
func (s *Service) Clear(ctx context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Clear()

	if errDel := s.store.Delete(ctx, sessionID); errDel != nil {
		log.Printf("store delete cart error: %v", errDel)
		return nil, errDel
	}
	return cart, nil
}

// ApplyCoupon applies the code to the session cart. The cart is stored only
// when the code is recognized; a rejected code mutates nothing.
func (s *Service) ApplyCoupon(ctx context.Context, sessionID, code string) (*domain.Cart, domain.CouponResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, domain.CouponResult{}, err
	}

	res := cart.ApplyCoupon(code)
	if !res.Success {
		return cart, res, nil
	}

	if errPut := s.store.Put(ctx, sessionID, cart); errPut != nil {
		log.Printf("store put cart error: %v", errPut)
		return nil, domain.CouponResult{}, errPut
	}
	return cart, res, nil
}

func (s *Service) RemoveCoupon(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) {
		c.RemoveCoupon()
	})
}

// mutate runs one load-modify-store cycle under the mutation lock.
// Mutations load straight from the store, never through the singleflight: a
// shared flight would hand two requests the same cart and one add would
// overwrite the other on Put.
func (s *Service) mutate(ctx context.Context, sessionID string, apply func(*domain.Cart)) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	apply(cart)

	if errPut := s.store.Put(ctx, sessionID, cart); errPut != nil {
		log.Printf("store put cart error: %v", errPut)
		return nil, errPut
	}
	return cart, nil
}

// load fetches the stored cart as a private copy, or a fresh empty cart
// when none is stored.
func (s *Service) load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if err != nil && errors.Is(err, store.ErrCartNotFound) {
		return domain.NewCart(sessionID), nil
	}
	if err != nil {
		return nil, err
	}
	return cloneCart(cart), nil
}

func cloneCart(c *domain.Cart) *domain.Cart {
	clone := *c
	clone.Items = c.Snapshot()
	return &clone
}
