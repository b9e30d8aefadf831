package payment

import "errors"

var (
	// ErrUnavailable means the widget cannot be opened, usually because no
	// public key is configured.
	ErrUnavailable        = errors.New("payment gateway unavailable")
	ErrVerificationFailed = errors.New("payment verification failed")
)

// Currency is the only currency the store charges in.
const Currency = "INR"

// GatewayOrder is the order object returned by the gateway. Amount is in the
// smallest currency unit (paise).
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type Theme struct {
	Color string `json:"color"`
}

// Handoff carries everything the UI needs to open the payment widget.
type Handoff struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	OrderID     string  `json:"order_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
	CallbackURL string  `json:"callback_url"`
}

// Result is the signature payload the widget reports on success.
type Result struct {
	RazorpayOrderID   string `json:"razorpay_order_id" form:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id" form:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature" form:"razorpay_signature"`
}

func (r Result) Complete() bool {
	return r.RazorpayOrderID != "" && r.RazorpayPaymentID != "" && r.RazorpaySignature != ""
}

// Verification is the body posted to the backend verify endpoint.
type Verification struct {
	OrderID           string `json:"order_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// API is the backend surface the gateway delegates to.
type API interface {
	CreatePaymentOrder(amount float64) (GatewayOrder, error)
	VerifyPayment(v Verification) error
}

// Gateway is the payment capability used by checkout.
type Gateway interface {
	CreateOrder(amount float64) (GatewayOrder, error)
	OpenCheckout(o GatewayOrder, p Prefill) Handoff
	OnResult(orderID string, r Result) error
}
