package order

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
)

// Status is the fulfilment state of an order.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

var transitions = map[Status][]Status{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether an order in s may move to next. Staying in
// the same status is allowed so the tracking link can be edited alone.
func (s Status) CanTransition(next Status) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentOnline
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Item is frozen at submission time and never re-priced.
type Item struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order represents a purchase as stored by the backend.
type Order struct {
	ID               string        `json:"id"`
	OrderNumber      string        `json:"order_number"`
	CustomerName     string        `json:"customer_name"`
	CustomerEmail    string        `json:"customer_email"`
	Phone            string        `json:"phone"`
	ShippingAddress  string        `json:"shipping_address"`
	Items            []Item        `json:"items"`
	TotalAmount      float64       `json:"total_amount"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	OrderStatus      Status        `json:"order_status"`
	TrackingLink     *string       `json:"tracking_link,omitempty"`
	GatewayOrderID   string        `json:"razorpay_order_id,omitempty"`
	GatewayPaymentID string        `json:"razorpay_payment_id,omitempty"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        string        `json:"updated_at,omitempty"`
}

// Draft is the payload posted when an order is placed.
type Draft struct {
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	Phone           string        `json:"phone"`
	ShippingAddress string        `json:"shipping_address"`
	Items           []Item        `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
}

// StatusUpdate is the partial update admins send for an order.
type StatusUpdate struct {
	OrderStatus  Status `json:"order_status"`
	TrackingLink string `json:"tracking_link,omitempty"`
}
