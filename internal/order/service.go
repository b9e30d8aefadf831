package order

import (
	"errors"
	"strings"
)

var ErrEmptyOrderNumber = errors.New("please enter an order number")

// Source is the public order read endpoint of the backend.
type Source interface {
	OrderByNumber(number string) (Order, error)
}

// Service provides order lookup for the confirmation and tracking views.
type Service struct {
	source Source
}

func NewService(s Source) *Service {
	return &Service{source: s}
}

// Lookup fetches an order by its public number. A missing order is reported
// through found=false, not as an error.
func (s *Service) Lookup(number string) (ord Order, found bool, err error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Order{}, false, ErrEmptyOrderNumber
	}
	ord, err = s.source.OrderByNumber(number)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Order{}, false, nil
		}
		return Order{}, false, err
	}
	return ord, true, nil
}
