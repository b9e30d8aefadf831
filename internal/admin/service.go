package admin

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/artisan-storefront/internal/order"
	"github.com/wichananm65/artisan-storefront/internal/product"
)

var (
	ErrConfirmationRequired = errors.New("are you sure you want to delete this product?")
	ErrNoFiles              = errors.New("no files to upload")
	ErrInvalidTrackingLink  = errors.New("tracking link must be an http(s) URL")
)

// Backend is the admin surface of the REST backend. Every call forwards the
// admin's credential.
type Backend interface {
	ListProducts() ([]product.Product, error)
	CreateProduct(token string, in product.Input) (product.Product, error)
	UpdateProduct(token, id string, in product.Input) (product.Product, error)
	DeleteProduct(token, id string) error
	UploadImages(token, id string, files []product.Image) ([]string, error)
	AdminOrders(token string) ([]order.Order, error)
	UpdateOrderStatus(token, id string, u order.StatusUpdate) error
}

type Service struct {
	backend Backend
}

func NewService(b Backend) *Service {
	return &Service{backend: b}
}

func (s *Service) Products() ([]product.Product, error) {
	return s.backend.ListProducts()
}

// SaveProduct creates (empty id) or updates a product, then uploads images
// once the product exists.
func (s *Service) SaveProduct(token, id string, form ProductForm, images []product.Image) (product.Product, error) {
	in, err := form.Normalize()
	if err != nil {
		return product.Product{}, err
	}

	var saved product.Product
	if id == "" {
		saved, err = s.backend.CreateProduct(token, in)
	} else {
		saved, err = s.backend.UpdateProduct(token, id, in)
	}
	if err != nil {
		return product.Product{}, fmt.Errorf("save product: %w", err)
	}

	if len(images) == 0 {
		return saved, nil
	}
	urls, err := s.backend.UploadImages(token, saved.ID, images)
	if err != nil {
		return saved, fmt.Errorf("upload images for %s: %w", saved.ID, err)
	}
	saved.Images = append(saved.Images, urls...)
	return saved, nil
}

func (s *Service) UploadImages(token, id string, images []product.Image) ([]string, error) {
	if len(images) == 0 {
		return nil, ErrNoFiles
	}
	return s.backend.UploadImages(token, id, images)
}

// DeleteProduct requires an explicit confirmation.
func (s *Service) DeleteProduct(token, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.backend.DeleteProduct(token, id)
}

func (s *Service) Orders(token string, f OrderFilter) ([]order.Order, error) {
	orders, err := s.backend.AdminOrders(token)
	if err != nil {
		return nil, err
	}
	return f.Apply(orders), nil
}

// UpdateOrder changes an order's status and tracking link. The move is
// checked against the order's current status before it is sent.
func (s *Service) UpdateOrder(token, id string, u order.StatusUpdate) error {
	if !u.OrderStatus.Valid() {
		return order.ErrInvalidStatus
	}
	u.TrackingLink = strings.TrimSpace(u.TrackingLink)
	if u.TrackingLink != "" {
		link, err := url.Parse(u.TrackingLink)
		if err != nil || (link.Scheme != "http" && link.Scheme != "https") || link.Host == "" {
			return ErrInvalidTrackingLink
		}
	}

	orders, err := s.backend.AdminOrders(token)
	if err != nil {
		return err
	}
	var current *order.Order
	for i := range orders {
		if orders[i].ID == id {
			current = &orders[i]
			break
		}
	}
	if current == nil {
		return order.ErrNotFound
	}
	if !current.OrderStatus.CanTransition(u.OrderStatus) {
		return fmt.Errorf("%s -> %s: %w", current.OrderStatus, u.OrderStatus, order.ErrInvalidTransition)
	}

	if err := s.backend.UpdateOrderStatus(token, id, u); err != nil {
		return err
	}
	log.Infof("order %s moved %s -> %s", current.OrderNumber, current.OrderStatus, u.OrderStatus)
	return nil
}
