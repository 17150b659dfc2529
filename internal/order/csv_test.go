package order

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	created := time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC)
	req := `wrap in "gift" paper`

	orders := []*Order{
		{
			TrackingID:   "FLOWER#001-1234-567-JD",
			CustomerName: "Jane Doe",
			PhoneNumber:  "0812345678",
			ProductName:  "Monstera",
			Quantity:     2,
			Price:        12.5,
			Total:        25,
			Status:       StatusConfirmed,
			CreatedAt:    created,
			Address:      "12 Garden Lane",
			Requirements: &req,
		},
		{
			TrackingID:   "FLOWER#002-9999-888-BB",
			CustomerName: "Bob",
			PhoneNumber:  "0899999999",
			ProductName:  "Cactus",
			Quantity:     1,
			Price:        7,
			Total:        7,
			Status:       StatusPending,
			CreatedAt:    created,
			Address:      "34 Desert Rd",
		},
	}

	out := ExportCSV(orders)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	t.Run("header row", func(t *testing.T) {
		assert.Equal(t,
			`"Tracking ID","Customer Name","Phone Number","Product","Quantity","Unit Price","Total","Status","Order Date","Address","Requirements"`,
			lines[0])
	})

	t.Run("quotes every field and doubles embedded quotes", func(t *testing.T) {
		assert.Contains(t, lines[1], `"wrap in ""gift"" paper"`)
		assert.Contains(t, lines[1], `"FLOWER#001-1234-567-JD"`)
	})

	t.Run("formats amounts with two decimals", func(t *testing.T) {
		assert.Contains(t, lines[1], `"12.50"`)
		assert.Contains(t, lines[1], `"25.00"`)
	})

	t.Run("formats the order date", func(t *testing.T) {
		assert.Contains(t, lines[1], `"2026-08-29 14:30:05"`)
	})

	t.Run("empty requirements renders as empty field", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(lines[2], `,""`))
	})

	t.Run("empty list yields only the header", func(t *testing.T) {
		assert.Equal(t, lines[0], ExportCSV(nil))
	})
}
