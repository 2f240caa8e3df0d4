package domain

import (
	"math"
	"strings"
	"time"
)

const (
	// CouponCode is the single recognized discount code.
	CouponCode = "COLIPOP10"

	// CouponRate is the flat discount applied to the subtotal.
	CouponRate = 0.10
)

// Cart holds the line items and coupon for one session. Totals are never
// stored on the struct; they are recomputed from the lines on every read.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	Coupon    string     `json:"coupon,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// CouponResult reports the outcome of an ApplyCoupon call. Invalid codes are
// a normal outcome, not an error.
type CouponResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewCart(sessionID string) *Cart {
	now := time.Now()
	return &Cart{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem merges by product id: an existing line gains one unit, a new
// product appends a line with quantity 1.
func (c *Cart) AddItem(p Product) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity++
			c.touch()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID: p.ID,
		Title:     p.Name,
		Price:     p.Price,
		Quantity:  1,
		Image:     p.ImageURL,
	})
	c.touch()
}

// RemoveItem drops the whole line regardless of quantity.
func (c *Cart) RemoveItem(productID string) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return
		}
	}
}

// UpdateQuantity sets the line quantity exactly. A quantity of zero or less
// removes the line; a line never persists at quantity zero.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.touch()
			return
		}
	}
}

// Clear empties the lines and drops any applied coupon.
func (c *Cart) Clear() {
	c.Items = nil
	c.Coupon = ""
	c.touch()
}

// ApplyCoupon normalizes the code (trim, uppercase) and applies it if it is
// the recognized one. Applying a valid code replaces any active coupon.
func (c *Cart) ApplyCoupon(code string) CouponResult {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized != CouponCode {
		return CouponResult{Success: false, Message: "Cod de cupon invalid."}
	}
	c.Coupon = normalized
	c.touch()
	return CouponResult{Success: true, Message: "Cupon aplicat cu succes! (10% reducere)"}
}

func (c *Cart) RemoveCoupon() {
	c.Coupon = ""
	c.touch()
}

// Subtotal is the sum of price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// Discount is 10% of the subtotal, rounded to 2 decimals, when the
// recognized coupon is applied; zero otherwise.
func (c *Cart) Discount() float64 {
	if c.Coupon != CouponCode {
		return 0
	}
	return round2(c.Subtotal() * CouponRate)
}

func (c *Cart) Total() float64 {
	return c.Subtotal() - c.Discount()
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Snapshot returns a copy of the lines, decoupled from later cart mutations.
// Submissions are built from snapshots, never from the live cart.
func (c *Cart) Snapshot() []CartItem {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return items
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
