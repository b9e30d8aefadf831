package backend

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/artisan-storefront/internal/checkout"
	"github.com/wichananm65/artisan-storefront/internal/order"
)

var (
	_ order.Source          = (*Client)(nil)
	_ checkout.OrderCreator = (*Client)(nil)
)

func (c *Client) CreateOrder(d order.Draft) (order.Order, error) {
	var out order.Order
	err := c.do(fiber.Post(c.url("/orders")).JSON(d), call{}, &out)
	return out, err
}

func (c *Client) OrderByNumber(number string) (order.Order, error) {
	var out order.Order
	err := c.do(fiber.Get(c.url("/orders/"+url.PathEscape(number))), call{notFound: order.ErrNotFound}, &out)
	return out, err
}

func (c *Client) AdminOrders(token string) ([]order.Order, error) {
	var out []order.Order
	if err := c.do(fiber.Get(c.url("/admin/orders")), call{token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(token, id string, u order.StatusUpdate) error {
	a := fiber.Put(c.url("/admin/orders/" + url.PathEscape(id) + "/status")).JSON(u)
	return c.do(a, call{token: token, notFound: order.ErrNotFound}, nil)
}
