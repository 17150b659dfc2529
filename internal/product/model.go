package product

import "time"

type Product struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	Description *string    `json:"description,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const (
	StatusInStock    = "in_stock"
	StatusOutOfStock = "out_of_stock"
)

// StockState is derived from the stock count, never stored.
type StockState string

const (
	StockIn  StockState = "in_stock"
	StockLow StockState = "low_stock"
	StockOut StockState = "out_of_stock"
)

func StockStateOf(stock, lowLimit int) StockState {
	switch {
	case stock == 0:
		return StockOut
	case stock <= lowLimit:
		return StockLow
	default:
		return StockIn
	}
}

// StatusFor is the stored status flag the storefront filters on.
func StatusFor(stock int) string {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}
