package admin

import (
	"github.com/wichananm65/artisan-storefront/internal/order"
	"github.com/wichananm65/artisan-storefront/internal/product"
	"golang.org/x/sync/errgroup"
)

const recentOrders = 5

type Dashboard struct {
	TotalProducts int           `json:"total_products"`
	TotalOrders   int           `json:"total_orders"`
	TotalRevenue  float64       `json:"total_revenue"`
	RecentOrders  []order.Order `json:"recent_orders"`
}

// Dashboard loads products and orders concurrently. The backend returns
// orders newest first.
func (s *Service) Dashboard(token string) (Dashboard, error) {
	var (
		g        errgroup.Group
		products []product.Product
		orders   []order.Order
	)
	g.Go(func() error {
		var err error
		products, err = s.backend.ListProducts()
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.backend.AdminOrders(token)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		RecentOrders:  orders,
	}
	for _, o := range orders {
		d.TotalRevenue += o.TotalAmount
	}
	if len(d.RecentOrders) > recentOrders {
		d.RecentOrders = d.RecentOrders[:recentOrders]
	}
	if d.RecentOrders == nil {
		d.RecentOrders = []order.Order{}
	}
	return d, nil
}
