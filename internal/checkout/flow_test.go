package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/artisan-storefront/internal/cart"
	"github.com/wichananm65/artisan-storefront/internal/order"
	"github.com/wichananm65/artisan-storefront/internal/payment"
	"github.com/wichananm65/artisan-storefront/internal/product"
	"github.com/wichananm65/artisan-storefront/internal/storage"
)

const visitor = "2b1e4c8a-0f3d-4a7e-9c51-6d2f8e3a9b10"

var (
	ring = product.Product{ID: "p-ring", Slug: "silver-ring", Name: "Silver Ring", Price: 500, Category: product.CategoryJewellery, Stock: 10}
	box  = product.Product{ID: "p-box", Slug: "oak-box", Name: "Oak Box", Price: 300, Category: product.CategoryWooden, Stock: 4}
)

type catalog []product.Product

func (c catalog) ListProducts() ([]product.Product, error) {
	return c, nil
}

func (c catalog) ProductBySlug(slug string) (product.Product, error) {
	for _, p := range c {
		if p.Slug == slug {
			return p, nil
		}
	}
	return product.Product{}, product.ErrNotFound
}

type fakeOrders struct {
	drafts []order.Draft
	err    error
}

func (f *fakeOrders) CreateOrder(d order.Draft) (order.Order, error) {
	if f.err != nil {
		return order.Order{}, f.err
	}
	f.drafts = append(f.drafts, d)
	n := len(f.drafts)
	return order.Order{
		ID:            fmt.Sprintf("uuid-%d", n),
		OrderNumber:   fmt.Sprintf("ORD-%04d", n),
		Items:         d.Items,
		TotalAmount:   d.TotalAmount,
		PaymentMethod: d.PaymentMethod,
		PaymentStatus: order.PaymentPending,
		OrderStatus:   order.StatusProcessing,
	}, nil
}

type fakeGateway struct {
	createErr error
	resultErr error

	created  []float64
	results  map[string]payment.Result
	prefills []payment.Prefill
}

func (g *fakeGateway) CreateOrder(amount float64) (payment.GatewayOrder, error) {
	if g.createErr != nil {
		return payment.GatewayOrder{}, g.createErr
	}
	g.created = append(g.created, amount)
	return payment.GatewayOrder{ID: "order_gw_1", Amount: int64(amount * 100), Currency: payment.Currency}, nil
}

func (g *fakeGateway) OpenCheckout(o payment.GatewayOrder, p payment.Prefill) payment.Handoff {
	g.prefills = append(g.prefills, p)
	return payment.Handoff{Key: "rzp_test", Amount: o.Amount, Currency: o.Currency, OrderID: o.ID, Prefill: p}
}

func (g *fakeGateway) OnResult(orderID string, r payment.Result) error {
	if g.results == nil {
		g.results = map[string]payment.Result{}
	}
	g.results[orderID] = r
	return g.resultErr
}

type fixture struct {
	repo    storage.Repository
	carts   *cart.Service
	orders  *fakeOrders
	gateway *fakeGateway
	flow    *Flow
}

func newFixture(t *testing.T, withItems bool) *fixture {
	t.Helper()
	repo := storage.NewInMemoryRepository()
	carts := cart.NewService(repo, catalog{ring, box}, 100)
	fx := &fixture{repo: repo, carts: carts, orders: &fakeOrders{}, gateway: &fakeGateway{}}
	fx.flow = NewFlow(carts, fx.orders, fx.gateway, repo)
	if withItems {
		ctx := context.Background()
		_, err := carts.AddBySlug(ctx, visitor, ring.Slug, 2)
		require.NoError(t, err)
		_, err = carts.AddBySlug(ctx, visitor, box.Slug, 1)
		require.NoError(t, err)
	}
	return fx
}

func (fx *fixture) cartSize(t *testing.T) int {
	t.Helper()
	store, err := fx.carts.Open(context.Background(), visitor)
	require.NoError(t, err)
	return store.ItemCount()
}

func validForm(method order.PaymentMethod) Form {
	return Form{
		CustomerName:    "Asha",
		CustomerEmail:   "asha@example.com",
		Phone:           "9999999999",
		ShippingAddress: "12 MG Road, Pune",
		PaymentMethod:   method,
	}
}

func TestForm_Normalize(t *testing.T) {
	f := Form{CustomerName: " Asha ", CustomerEmail: "a@b.c", Phone: "1", ShippingAddress: "x"}
	require.NoError(t, f.Normalize())
	assert.Equal(t, "Asha", f.CustomerName)
	assert.Equal(t, order.PaymentCOD, f.PaymentMethod)

	blank := validForm(order.PaymentCOD)
	blank.Phone = "   "
	assert.ErrorIs(t, blank.Normalize(), ErrMissingFields)

	card := validForm("card")
	assert.ErrorIs(t, card.Normalize(), ErrUnknownPaymentMethod)
}

func TestSubmit_CashOnDelivery(t *testing.T) {
	fx := newFixture(t, true)

	out, err := fx.flow.Submit(context.Background(), visitor, validForm(order.PaymentCOD))
	require.NoError(t, err)

	assert.Equal(t, StateConfirmed, out.State)
	assert.Equal(t, "ORD-0001", out.OrderNumber)
	assert.Equal(t, "/order-confirmation/ORD-0001", out.Redirect)
	assert.Nil(t, out.Payment)
	assert.Empty(t, fx.gateway.created, "gateway is not used for cash on delivery")
	assert.Equal(t, 0, fx.cartSize(t))

	require.Len(t, fx.orders.drafts, 1)
	d := fx.orders.drafts[0]
	assert.Equal(t, 1400.0, d.TotalAmount, spew.Sdump(d))
	assert.Equal(t, []order.Item{
		{ProductID: "p-ring", ProductName: "Silver Ring", Quantity: 2, Price: 500},
		{ProductID: "p-box", ProductName: "Oak Box", Quantity: 1, Price: 300},
	}, d.Items)
}

func TestSubmit_EmptyCartRedirects(t *testing.T) {
	fx := newFixture(t, false)

	out, err := fx.flow.Submit(context.Background(), visitor, validForm(order.PaymentCOD))
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, "/cart", out.Redirect)
	assert.Empty(t, fx.orders.drafts)
}

func TestSubmit_EmptyCartWinsOverBlankForm(t *testing.T) {
	fx := newFixture(t, false)

	out, err := fx.flow.Submit(context.Background(), visitor, Form{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, "/cart", out.Redirect)
}

func TestSubmit_MissingFieldsNeverReachBackend(t *testing.T) {
	fx := newFixture(t, true)
	form := validForm(order.PaymentCOD)
	form.ShippingAddress = ""

	_, err := fx.flow.Submit(context.Background(), visitor, form)
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, fx.orders.drafts)
	assert.Equal(t, 3, fx.cartSize(t))
}

func TestSubmit_OrderFailureKeepsCart(t *testing.T) {
	fx := newFixture(t, true)
	fx.orders.err = errors.New("backend unreachable")

	out, err := fx.flow.Submit(context.Background(), visitor, validForm(order.PaymentCOD))
	require.Error(t, err)
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, 3, fx.cartSize(t))
}

func TestOnlinePayment_Success(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, true)

	out, err := fx.flow.Submit(ctx, visitor, validForm(order.PaymentOnline))
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPayment, out.State)
	require.NotNil(t, out.Payment)
	assert.Equal(t, "order_gw_1", out.Payment.OrderID)
	assert.Equal(t, int64(140000), out.Payment.Amount)
	assert.Equal(t, payment.Prefill{Name: "Asha", Email: "asha@example.com", Contact: "9999999999"}, out.Payment.Prefill)
	assert.Equal(t, 3, fx.cartSize(t), "cart is kept until payment is verified")

	pending, ok, err := fx.flow.Pending(ctx, visitor)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Pending{OrderID: "uuid-1", OrderNumber: "ORD-0001", GatewayOrderID: "order_gw_1", Amount: 1400}, pending)

	res := payment.Result{RazorpayOrderID: "order_gw_1", RazorpayPaymentID: "pay_1", RazorpaySignature: "sig"}
	out, err = fx.flow.CompletePayment(ctx, visitor, res)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, out.State)
	assert.Equal(t, "/order-confirmation/ORD-0001", out.Redirect)
	assert.Equal(t, res, fx.gateway.results["uuid-1"])
	assert.Equal(t, 0, fx.cartSize(t))

	_, ok, err = fx.flow.Pending(ctx, visitor)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOnlinePayment_VerificationFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, true)
	fx.gateway.resultErr = payment.ErrVerificationFailed

	_, err := fx.flow.Submit(ctx, visitor, validForm(order.PaymentOnline))
	require.NoError(t, err)

	out, err := fx.flow.CompletePayment(ctx, visitor, payment.Result{RazorpayOrderID: "order_gw_1", RazorpayPaymentID: "pay_1", RazorpaySignature: "bad"})
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, StateFailed, out.State)
	assert.Empty(t, out.Redirect, "no navigation to confirmation")
	assert.Equal(t, 3, fx.cartSize(t))

	// no automatic retry: the attempt is gone
	_, err = fx.flow.CompletePayment(ctx, visitor, payment.Result{})
	assert.ErrorIs(t, err, ErrNoPendingPayment)
}

func TestOnlinePayment_GatewayUnavailable(t *testing.T) {
	fx := newFixture(t, true)
	fx.gateway.createErr = payment.ErrUnavailable

	out, err := fx.flow.Submit(context.Background(), visitor, validForm(order.PaymentOnline))
	assert.ErrorIs(t, err, payment.ErrUnavailable)
	assert.Equal(t, "ORD-0001", out.OrderNumber, "the created order is not rolled back")
	assert.Equal(t, 3, fx.cartSize(t))
}

func TestOnlinePayment_ResultForAnotherGatewayOrder(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, true)

	_, err := fx.flow.Submit(ctx, visitor, validForm(order.PaymentOnline))
	require.NoError(t, err)

	other := payment.Result{RazorpayOrderID: "order_OTHER_cheap", RazorpayPaymentID: "pay_old", RazorpaySignature: "sig_old"}
	out, err := fx.flow.CompletePayment(ctx, visitor, other)
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, StateFailed, out.State)
	assert.Empty(t, out.Redirect)
	assert.Empty(t, fx.gateway.results, "mismatched result never reaches verification")
	assert.Equal(t, 3, fx.cartSize(t))

	// the genuine result still completes the pending attempt
	res := payment.Result{RazorpayOrderID: "order_gw_1", RazorpayPaymentID: "pay_1", RazorpaySignature: "sig"}
	out, err = fx.flow.CompletePayment(ctx, visitor, res)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, out.State)
	assert.Equal(t, 0, fx.cartSize(t))
}
