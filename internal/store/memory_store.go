package store

import (
	"context"
	"sync"
	"time"

	"github.com/lambrugeorge/colipop-site/internal/domain"
)

const (
	// CartTTL is how long an idle cart survives before expiring.
	CartTTL = 24 * time.Hour

	// CleanupInterval is how often the background cleanup runs.
	CleanupInterval = 10 * time.Minute
)

type memoryEntry struct {
	cart      *domain.Cart
	expiresAt time.Time
}

// MemoryStore implements CartStore with in-memory storage. Used when no
// redis address is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*memoryEntry

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		carts:       make(map[string]*memoryEntry),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireCarts()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireCarts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, entry := range s.carts {
		if now.After(entry.expiresAt) {
			delete(s.carts, id)
		}
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.carts[sessionID]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, ErrCartNotFound
	}

	clone := *entry.cart
	clone.Items = entry.cart.Snapshot()
	return &clone, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *cart
	clone.Items = cart.Snapshot()
	s.carts[sessionID] = &memoryEntry{
		cart:      &clone,
		expiresAt: time.Now().Add(CartTTL),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

// Close stops the background cleanup and waits for it to finish.
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
