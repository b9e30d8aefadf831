package admin

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
	"github.com/wichananm65/artisan-storefront/internal/order"
)

var exportHeaders = []string{
	"Order Number", "Customer", "Email", "Phone", "Shipping Address", "Items",
	"Total", "Payment Method", "Payment Status", "Order Status", "Tracking Link", "Created At",
}

// ExportOrders renders orders as an .xlsx workbook with one row per order.
func ExportOrders(orders []order.Order) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.OrderNumber)
		row.AddCell().SetValue(o.CustomerName)
		row.AddCell().SetValue(o.CustomerEmail)
		row.AddCell().SetValue(o.Phone)
		row.AddCell().SetValue(o.ShippingAddress)
		row.AddCell().SetValue(itemSummary(o.Items))
		row.AddCell().SetValue(o.TotalAmount)
		row.AddCell().SetValue(string(o.PaymentMethod))
		row.AddCell().SetValue(string(o.PaymentStatus))
		row.AddCell().SetValue(string(o.OrderStatus))
		link := ""
		if o.TrackingLink != nil {
			link = *o.TrackingLink
		}
		row.AddCell().SetValue(link)
		row.AddCell().SetValue(o.CreatedAt)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) ExportOrders(token string, f OrderFilter) ([]byte, error) {
	orders, err := s.Orders(token, f)
	if err != nil {
		return nil, err
	}
	return ExportOrders(orders)
}

func itemSummary(items []order.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s x %d", it.ProductName, it.Quantity))
	}
	return strings.Join(parts, "; ")
}
