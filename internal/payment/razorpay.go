package payment

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
)

const (
	description = "Order Payment"
	themeColor  = "#d4af37"
)

type Options struct {
	KeyID       string
	StoreName   string
	CallbackURL string
}

// Razorpay opens the hosted Razorpay widget. Order creation and signature
// checks are done by the backend.
type Razorpay struct {
	api  API
	opts Options
}

var _ Gateway = (*Razorpay)(nil)

func NewRazorpay(api API, opts Options) *Razorpay {
	return &Razorpay{api: api, opts: opts}
}

func (r *Razorpay) CreateOrder(amount float64) (GatewayOrder, error) {
	if r.opts.KeyID == "" {
		return GatewayOrder{}, fmt.Errorf("razorpay key not configured: %w", ErrUnavailable)
	}
	o, err := r.api.CreatePaymentOrder(amount)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("create gateway order: %w", err)
	}
	if o.Currency == "" {
		o.Currency = Currency
	}
	return o, nil
}

func (r *Razorpay) OpenCheckout(o GatewayOrder, p Prefill) Handoff {
	return Handoff{
		Key:         r.opts.KeyID,
		Amount:      o.Amount,
		Currency:    Currency,
		OrderID:     o.ID,
		Name:        r.opts.StoreName,
		Description: description,
		Prefill:     p,
		Theme:       Theme{Color: themeColor},
		CallbackURL: r.opts.CallbackURL,
	}
}

// OnResult forwards the widget result for orderID to the backend. Any
// rejection is reported as ErrVerificationFailed.
func (r *Razorpay) OnResult(orderID string, res Result) error {
	if !res.Complete() {
		return fmt.Errorf("incomplete payment result: %w", ErrVerificationFailed)
	}
	err := r.api.VerifyPayment(Verification{
		OrderID:           orderID,
		RazorpayOrderID:   res.RazorpayOrderID,
		RazorpayPaymentID: res.RazorpayPaymentID,
		RazorpaySignature: res.RazorpaySignature,
	})
	if err != nil {
		log.Warnf("payment verify for order %s: %v", orderID, err)
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	return nil
}
