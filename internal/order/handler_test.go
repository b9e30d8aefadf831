package order

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// dummySource implements Source over a fixed set of orders.
type dummySource struct {
	orders map[string]Order
	err    error
	asked  []string
}

func (d *dummySource) OrderByNumber(number string) (Order, error) {
	d.asked = append(d.asked, number)
	if d.err != nil {
		return Order{}, d.err
	}
	ord, ok := d.orders[number]
	if !ok {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

var _ Source = (*dummySource)(nil)

func makeAppWithOrderHandler(src Source) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(src)).RegisterPublicRoutes(app)
	return app
}

func sampleOrder() Order {
	link := "https://track.example/ORD-1001"
	return Order{
		ID:            "o-1",
		OrderNumber:   "ORD-1001",
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		Items:         []Item{{ProductID: "p-1", ProductName: "Silver Ring", Quantity: 2, Price: 500}},
		TotalAmount:   1100,
		PaymentMethod: PaymentCOD,
		PaymentStatus: PaymentPending,
		OrderStatus:   StatusShipped,
		TrackingLink:  &link,
	}
}

func TestOrderRoutes_Confirmation(t *testing.T) {
	src := &dummySource{orders: map[string]Order{"ORD-1001": sampleOrder()}}
	app := makeAppWithOrderHandler(src)

	res, err := app.Test(httptest.NewRequest("GET", "/order-confirmation/ORD-1001", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, `"found":true`) || !strings.Contains(body, `"order_number":"ORD-1001"`) {
		t.Fatalf("unexpected body %s", body)
	}
	if !strings.Contains(body, `"tracking_link":"https://track.example/ORD-1001"`) {
		t.Fatalf("expected tracking link in body, got %s", body)
	}
}

func TestOrderRoutes_TrackTrimsInput(t *testing.T) {
	src := &dummySource{orders: map[string]Order{"ORD-1001": sampleOrder()}}
	app := makeAppWithOrderHandler(src)

	res, err := app.Test(httptest.NewRequest("GET", "/track-order?order_number=%20ORD-1001%20", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if len(src.asked) != 1 || src.asked[0] != "ORD-1001" {
		t.Fatalf("expected trimmed lookup, got %v", src.asked)
	}
}

func TestOrderRoutes_NotFoundIsNotAnError(t *testing.T) {
	app := makeAppWithOrderHandler(&dummySource{orders: map[string]Order{}})

	res, err := app.Test(httptest.NewRequest("GET", "/track-order?order_number=ORD-404", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"found":false`) || !strings.Contains(string(b), "Order not found") {
		t.Fatalf("unexpected body %s", b)
	}
}

func TestOrderRoutes_BlankNumber(t *testing.T) {
	src := &dummySource{}
	app := makeAppWithOrderHandler(src)

	res, err := app.Test(httptest.NewRequest("GET", "/track-order?order_number=%20%20", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	if len(src.asked) != 0 {
		t.Fatalf("blank input must not reach the backend, asked %v", src.asked)
	}
}

func TestOrderRoutes_BackendFailure(t *testing.T) {
	app := makeAppWithOrderHandler(&dummySource{err: errors.New("connection refused")})

	res, err := app.Test(httptest.NewRequest("GET", "/order-confirmation/ORD-1", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", res.StatusCode)
	}
}
