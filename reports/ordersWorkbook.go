// Package reports renders restaurant order exports.
package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
)

const (
	OrdersSheet       = "Orders"
	OrdersContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var orderHeaders = []string{
	"Order ID", "Created At", "Customer", "Email", "Contact",
	"Address", "City", "Country", "Items", "Total", "Status",
}

// WriteOrdersWorkbook writes one row per order, newest first as given.
func WriteOrdersWorkbook(w io.Writer, orders []models.OrderDetail) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(OrdersSheet)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range orderHeaders {
		header.AddCell().SetString(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		d := o.DeliveryDetails
		row.AddCell().SetString(o.ID.Hex())
		row.AddCell().SetString(o.Created_at.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(d.Name)
		row.AddCell().SetString(d.Email)
		row.AddCell().SetString(d.Contact)
		row.AddCell().SetString(d.Address)
		row.AddCell().SetString(d.City)
		row.AddCell().SetString(d.Country)
		row.AddCell().SetString(itemSummary(o.CartItems))
		row.AddCell().SetString(FormatAmount(o.TotalAmount))
		row.AddCell().SetString(string(o.Status))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func itemSummary(items []models.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(parts, "; ")
}

// FormatAmount renders minor units as a two-decimal amount.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
