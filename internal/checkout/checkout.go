package checkout

import (
	"errors"
	"strings"

	"github.com/wichananm65/artisan-storefront/internal/order"
	"github.com/wichananm65/artisan-storefront/internal/payment"
)

var (
	ErrMissingFields        = errors.New("please fill all fields")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNoPendingPayment     = errors.New("no payment in progress")
	ErrPaymentFailed        = errors.New("payment verification failed")
)

// State is the position of a checkout attempt.
type State string

const (
	StateCollecting      State = "collecting"
	StateSubmitting      State = "submitting"
	StateAwaitingPayment State = "awaiting_payment"
	StateConfirmed       State = "confirmed"
	StateFailed          State = "failed"
)

// Form is the customer input collected before submission.
type Form struct {
	CustomerName    string              `json:"customer_name" form:"customer_name"`
	CustomerEmail   string              `json:"customer_email" form:"customer_email"`
	Phone           string              `json:"phone" form:"phone"`
	ShippingAddress string              `json:"shipping_address" form:"shipping_address"`
	PaymentMethod   order.PaymentMethod `json:"payment_method" form:"payment_method"`
}

// Normalize trims every field, defaults the payment method to cash on
// delivery and rejects incomplete forms.
func (f *Form) Normalize() error {
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	f.CustomerEmail = strings.TrimSpace(f.CustomerEmail)
	f.Phone = strings.TrimSpace(f.Phone)
	f.ShippingAddress = strings.TrimSpace(f.ShippingAddress)
	f.PaymentMethod = order.PaymentMethod(strings.ToLower(strings.TrimSpace(string(f.PaymentMethod))))

	if f.CustomerName == "" || f.CustomerEmail == "" || f.Phone == "" || f.ShippingAddress == "" {
		return ErrMissingFields
	}
	if f.PaymentMethod == "" {
		f.PaymentMethod = order.PaymentCOD
	}
	if !f.PaymentMethod.Valid() {
		return ErrUnknownPaymentMethod
	}
	return nil
}

func (f Form) prefill() payment.Prefill {
	return payment.Prefill{Name: f.CustomerName, Email: f.CustomerEmail, Contact: f.Phone}
}

// Pending is an online payment waiting for the widget result.
type Pending struct {
	OrderID        string  `json:"order_id"`
	OrderNumber    string  `json:"order_number"`
	GatewayOrderID string  `json:"gateway_order_id"`
	Amount         float64 `json:"amount"`
}

// Outcome is what a checkout step reports back to the UI.
type Outcome struct {
	State       State            `json:"state"`
	OrderNumber string           `json:"order_number,omitempty"`
	Redirect    string           `json:"redirect,omitempty"`
	Payment     *payment.Handoff `json:"payment,omitempty"`
}

func confirmed(number string) Outcome {
	return Outcome{State: StateConfirmed, OrderNumber: number, Redirect: "/order-confirmation/" + number}
}
