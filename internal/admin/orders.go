package admin

import (
	"strings"

	"github.com/wichananm65/artisan-storefront/internal/order"
	"golang.org/x/text/cases"
)

// AllStatuses disables the status predicate.
const AllStatuses = "all"

// OrderFilter narrows the admin order list. The search text matches order
// number, customer name or customer email, case-insensitively.
type OrderFilter struct {
	Status string
	Search string
}

func (f OrderFilter) Apply(orders []order.Order) []order.Order {
	status := strings.TrimSpace(f.Status)
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.Search))

	out := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && status != AllStatuses && string(o.OrderStatus) != status {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(o.OrderNumber), needle) &&
			!strings.Contains(fold.String(o.CustomerName), needle) &&
			!strings.Contains(fold.String(o.CustomerEmail), needle) {
			continue
		}
		out = append(out, o)
	}
	return out
}
