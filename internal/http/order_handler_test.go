package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lambrugeorge/colipop-site/internal/cart"
	"github.com/lambrugeorge/colipop-site/internal/domain"
	"github.com/lambrugeorge/colipop-site/internal/notify"
	"github.com/lambrugeorge/colipop-site/internal/order"
	"github.com/lambrugeorge/colipop-site/internal/store"
)

// newOrderFixture wires real services with an empty notification chain, so
// delivery always ends in the log fallback. Submissions must still succeed.
func newOrderFixture(t *testing.T) (*OrderHandler, *CartHandler) {
	ms := store.NewMemoryStore()
	t.Cleanup(func() { ms.Close() })

	carts := cart.NewService(ms)
	orders := order.NewService(notify.New(nil, time.Second))
	return NewOrderHandler(orders, carts, 5*time.Second),
		NewCartHandler(carts, shopCatalog, 5*time.Second)
}

const validOrderBody = `{
	"name": "Ion Popescu",
	"email": "ion@example.com",
	"phone": "0722000000",
	"address": "Str. Florilor 5, Brăila",
	"payment": "cash"
}`

func postOrder(handler *OrderHandler, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body)))
	handler.SubmitOrder(recorder, request)
	return recorder
}

func TestSubmitOrder_SuccessAndCartCleared(t *testing.T) {
	orderHandler, cartHandler := newOrderFixture(t)
	addItem(t, cartHandler, "p1")
	addItem(t, cartHandler, "p2")

	recorder := postOrder(orderHandler, validOrderBody)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}

	var result domain.OrderResult
	if err := json.NewDecoder(recorder.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if !strings.HasPrefix(result.OrderNumber, "CP-") {
		t.Errorf("unexpected order number %q", result.OrderNumber)
	}

	// cart cleared only after the confirmed success
	getRec := httptest.NewRecorder()
	cartHandler.GetCart(getRec, withSession(httptest.NewRequest("GET", "/api/v1/cart", nil)))
	view := decodeCartView(t, getRec)
	if len(view.Items) != 0 {
		t.Errorf("expected cleared cart, got %+v", view.Items)
	}
}

func TestSubmitOrder_EmptyCart(t *testing.T) {
	orderHandler, _ := newOrderFixture(t)

	recorder := postOrder(orderHandler, validOrderBody)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var result domain.OrderResult
	if err := json.NewDecoder(recorder.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Error != domain.ErrEmptyCart {
		t.Errorf("expected empty_cart, got %q", result.Error)
	}
}

func TestSubmitOrder_MissingFieldsKeepsCart(t *testing.T) {
	orderHandler, cartHandler := newOrderFixture(t)
	addItem(t, cartHandler, "p1")

	recorder := postOrder(orderHandler, `{"name": "", "email": "ion@example.com", "phone": "07", "address": "x"}`)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	getRec := httptest.NewRecorder()
	cartHandler.GetCart(getRec, withSession(httptest.NewRequest("GET", "/api/v1/cart", nil)))
	view := decodeCartView(t, getRec)
	if len(view.Items) != 1 {
		t.Errorf("rejected order must not clear the cart, got %+v", view.Items)
	}
}

// recordingChannel keeps the last delivered message so tests can inspect
// the formatted body.
type recordingChannel struct {
	last *notify.Message
}

func (c *recordingChannel) Name() string { return "record" }

func (c *recordingChannel) Send(_ context.Context, msg *notify.Message) error {
	c.last = msg
	return nil
}

func TestSubmitOrder_UnknownPaymentFallsBackToTransfer(t *testing.T) {
	ms := store.NewMemoryStore()
	t.Cleanup(func() { ms.Close() })

	carts := cart.NewService(ms)
	channel := &recordingChannel{}
	orders := order.NewService(notify.New([]notify.Channel{channel}, time.Second))
	orderHandler := NewOrderHandler(orders, carts, 5*time.Second)
	cartHandler := NewCartHandler(carts, shopCatalog, 5*time.Second)
	addItem(t, cartHandler, "p1")

	body := strings.Replace(validOrderBody, `"cash"`, `"card"`, 1)
	recorder := postOrder(orderHandler, body)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}
	if channel.last == nil {
		t.Fatal("expected a delivered message")
	}
	if !strings.Contains(channel.last.Text, domain.PaymentTransfer.Label()) {
		t.Errorf("unknown payment method should render as bank transfer, got:\n%s", channel.last.Text)
	}
}

func TestSubmitOrder_InvalidJSON(t *testing.T) {
	orderHandler, _ := newOrderFixture(t)

	recorder := postOrder(orderHandler, "{not json")

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestSubmitContact_Success(t *testing.T) {
	orders := order.NewService(notify.New(nil, time.Second))
	handler := NewContactHandler(orders, 5*time.Second)

	recorder := httptest.NewRecorder()
	body := `{"name": "Maria", "email": "maria@example.com", "message": "Salut", "privacy": true, "captcha": true}`
	handler.SubmitContact(recorder, httptest.NewRequest("POST", "/api/v1/contact", strings.NewReader(body)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}
}

func TestSubmitContact_PrivacyRequired(t *testing.T) {
	orders := order.NewService(notify.New(nil, time.Second))
	handler := NewContactHandler(orders, 5*time.Second)

	recorder := httptest.NewRecorder()
	body := `{"name": "Maria", "email": "maria@example.com", "message": "Salut", "privacy": false, "captcha": true}`
	handler.SubmitContact(recorder, httptest.NewRequest("POST", "/api/v1/contact", strings.NewReader(body)))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var result domain.ContactResult
	if err := json.NewDecoder(recorder.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Error != domain.ErrPrivacyRequired {
		t.Errorf("expected privacy_required, got %q", result.Error)
	}
}
