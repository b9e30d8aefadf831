package backend

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/artisan-storefront/internal/payment"
)

var _ payment.API = (*Client)(nil)

func (c *Client) CreatePaymentOrder(amount float64) (payment.GatewayOrder, error) {
	q := url.Values{"amount": {strconv.FormatFloat(amount, 'f', -1, 64)}}
	var out payment.GatewayOrder
	err := c.do(fiber.Post(c.url("/payment/create-order")).QueryString(q.Encode()), call{}, &out)
	return out, err
}

func (c *Client) VerifyPayment(v payment.Verification) error {
	return c.do(fiber.Post(c.url("/payment/verify")).JSON(v), call{}, nil)
}
