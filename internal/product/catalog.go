package product

import (
	"strings"

	"golang.org/x/text/cases"
)

// AllCategories disables the category predicate.
const AllCategories = "all"

// Filter holds the two catalog predicates. Both are ANDed; each is skipped
// when empty (or "all" for the category).
type Filter struct {
	Category string
	Search   string
}

// Apply scans products once and keeps the ones matching f. Order is preserved.
func (f Filter) Apply(products []Product) []Product {
	category := strings.TrimSpace(f.Category)
	fold := cases.Fold()
	needle := fold.String(f.Search)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != AllCategories && string(p.Category) != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(p.Name), needle) &&
			!strings.Contains(fold.String(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}
