package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambrugeorge/colipop-site/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func testCart(sessionID string) *domain.Cart {
	cart := domain.NewCart(sessionID)
	cart.AddItem(domain.Product{ID: "p1", Name: "Colivă tradițională", Price: 45})
	cart.AddItem(domain.Product{ID: "p2", Name: "Cozonac felie", Price: 18})
	cart.AddItem(domain.Product{ID: "p2", Name: "Cozonac felie", Price: 18})
	return cart
}

func TestRedisGet_Success(t *testing.T) {
	s, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := testCart("sess-1")
	data, _ := json.Marshal(cart)
	mr.Set(cartKey("sess-1"), string(data))

	got, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Items[1].Quantity)
	assert.InDelta(t, 81, got.Subtotal(), 0.001)
}

func TestRedisGet_NotFound(t *testing.T) {
	s, _ := setupTestRedis(t)

	got, err := s.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, got)
}

func TestRedisGet_InvalidJSON(t *testing.T) {
	s, mr := setupTestRedis(t)

	mr.Set(cartKey("sess-1"), "{not json")

	_, err := s.Get(context.Background(), "sess-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCartNotFound)
}

func TestRedisPut_RoundTrip(t *testing.T) {
	s, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := testCart("sess-1")
	cart.ApplyCoupon(domain.CouponCode)
	require.NoError(t, s.Put(ctx, "sess-1", cart))

	got, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponCode, got.Coupon)
	assert.InDelta(t, 8.10, got.Discount(), 0.001)

	// TTL must be set so abandoned carts expire
	ttl := mr.TTL(cartKey("sess-1"))
	assert.Greater(t, ttl.Hours(), 23.0)
}

func TestRedisDelete(t *testing.T) {
	s, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "sess-1", testCart("sess-1")))
	require.NoError(t, s.Delete(ctx, "sess-1"))

	_, err := s.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
