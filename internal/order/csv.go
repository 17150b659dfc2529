package order

import (
	"strconv"
	"strings"
)

var csvHeaders = []string{
	"Tracking ID",
	"Customer Name",
	"Phone Number",
	"Product",
	"Quantity",
	"Unit Price",
	"Total",
	"Status",
	"Order Date",
	"Address",
	"Requirements",
}

// ExportCSV renders orders in the admin export layout: a header line plus
// one line per order, every field double-quoted with embedded quotes
// doubled.
func ExportCSV(orders []*Order) string {
	var b strings.Builder

	writeRow(&b, csvHeaders)
	for _, o := range orders {
		requirements := ""
		if o.Requirements != nil {
			requirements = *o.Requirements
		}
		writeRow(&b, []string{
			o.TrackingID,
			o.CustomerName,
			o.PhoneNumber,
			o.ProductName,
			strconv.Itoa(o.Quantity),
			formatAmount(o.Price),
			formatAmount(o.Total),
			string(o.Status),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
			o.Address,
			requirements,
		})
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
