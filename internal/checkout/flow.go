package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/artisan-storefront/internal/cart"
	"github.com/wichananm65/artisan-storefront/internal/order"
	"github.com/wichananm65/artisan-storefront/internal/payment"
	"github.com/wichananm65/artisan-storefront/internal/storage"
)

// PendingKey holds the in-flight online payment in the visitor's storage.
const PendingKey = "checkout_pending"

// OrderCreator places orders on the backend.
type OrderCreator interface {
	CreateOrder(d order.Draft) (order.Order, error)
}

// Flow runs one checkout attempt per call. It never retries and never rolls
// back a created order.
type Flow struct {
	carts   *cart.Service
	orders  OrderCreator
	gateway payment.Gateway
	repo    storage.Repository
}

func NewFlow(carts *cart.Service, orders OrderCreator, gateway payment.Gateway, repo storage.Repository) *Flow {
	return &Flow{carts: carts, orders: orders, gateway: gateway, repo: repo}
}

// Submit validates the form, places the order and either confirms it (cash on
// delivery) or hands off to the payment widget.
func (f *Flow) Submit(ctx context.Context, clientID string, form Form) (Outcome, error) {
	store, err := f.carts.Open(ctx, clientID)
	if err != nil {
		return Outcome{State: StateFailed}, err
	}
	if store.Empty() {
		return Outcome{State: StateCollecting, Redirect: "/cart"}, ErrEmptyCart
	}
	if err := form.Normalize(); err != nil {
		return Outcome{State: StateCollecting}, err
	}

	summary := store.Summary(f.carts.ShippingFee())
	draft := order.Draft{
		CustomerName:    form.CustomerName,
		CustomerEmail:   form.CustomerEmail,
		Phone:           form.Phone,
		ShippingAddress: form.ShippingAddress,
		Items:           itemsFrom(store.Lines()),
		TotalAmount:     summary.Total,
		PaymentMethod:   form.PaymentMethod,
	}
	created, err := f.orders.CreateOrder(draft)
	if err != nil {
		return Outcome{State: StateFailed}, fmt.Errorf("create order: %w", err)
	}
	log.Infof("order %s placed (%s, %.2f)", created.OrderNumber, form.PaymentMethod, summary.Total)

	if form.PaymentMethod == order.PaymentCOD {
		if err := store.Clear(ctx); err != nil {
			return Outcome{State: StateFailed}, err
		}
		return confirmed(created.OrderNumber), nil
	}

	gwOrder, err := f.gateway.CreateOrder(summary.Total)
	if err != nil {
		return Outcome{State: StateFailed, OrderNumber: created.OrderNumber}, err
	}
	pending := Pending{
		OrderID:        created.ID,
		OrderNumber:    created.OrderNumber,
		GatewayOrderID: gwOrder.ID,
		Amount:         summary.Total,
	}
	if err := f.savePending(ctx, clientID, pending); err != nil {
		return Outcome{State: StateFailed, OrderNumber: created.OrderNumber}, err
	}
	handoff := f.gateway.OpenCheckout(gwOrder, form.prefill())
	return Outcome{State: StateAwaitingPayment, OrderNumber: created.OrderNumber, Payment: &handoff}, nil
}

// CompletePayment verifies the widget result for the visitor's pending
// payment. The result must belong to the pending gateway order. When the
// backend rejects it the cart is kept and the attempt is dropped.
func (f *Flow) CompletePayment(ctx context.Context, clientID string, res payment.Result) (Outcome, error) {
	pending, ok, err := f.Pending(ctx, clientID)
	if err != nil {
		return Outcome{State: StateFailed}, err
	}
	if !ok {
		return Outcome{State: StateFailed}, ErrNoPendingPayment
	}
	// A result for another gateway order is rejected and leaves the pending
	// attempt in place for its own result.
	if res.RazorpayOrderID != pending.GatewayOrderID {
		log.Warnf("payment result for gateway order %q does not match pending %q (order %s)",
			res.RazorpayOrderID, pending.GatewayOrderID, pending.OrderNumber)
		return Outcome{State: StateFailed, OrderNumber: pending.OrderNumber},
			fmt.Errorf("%w: gateway order mismatch", ErrPaymentFailed)
	}
	if err := f.repo.RemoveItem(ctx, clientID, PendingKey); err != nil {
		return Outcome{State: StateFailed}, err
	}

	if err := f.gateway.OnResult(pending.OrderID, res); err != nil {
		return Outcome{State: StateFailed, OrderNumber: pending.OrderNumber}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	store, err := f.carts.Open(ctx, clientID)
	if err != nil {
		return Outcome{State: StateFailed}, err
	}
	if err := store.Clear(ctx); err != nil {
		return Outcome{State: StateFailed}, err
	}
	return confirmed(pending.OrderNumber), nil
}

// Pending returns the visitor's in-flight online payment, if any.
func (f *Flow) Pending(ctx context.Context, clientID string) (Pending, bool, error) {
	raw, ok, err := f.repo.GetItem(ctx, clientID, PendingKey)
	if err != nil || !ok {
		return Pending{}, false, err
	}
	var p Pending
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Warnf("discarding unreadable pending payment for %s: %v", clientID, err)
		return Pending{}, false, nil
	}
	return p, true, nil
}

func (f *Flow) savePending(ctx context.Context, clientID string, p Pending) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return f.repo.SetItem(ctx, clientID, PendingKey, string(b))
}

func itemsFrom(lines []cart.Line) []order.Item {
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.Item{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}
	return items
}
