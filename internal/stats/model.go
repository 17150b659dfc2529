package stats

// Dashboard is the admin landing page summary. Revenue counts confirmed
// orders only; the stock buckets use the configured low stock threshold.
type Dashboard struct {
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	ConfirmedOrders int     `json:"confirmed_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
	Revenue         float64 `json:"revenue"`
	OrdersToday     int     `json:"orders_today"`

	ProductsInStock  int `json:"products_in_stock"`
	ProductsLowStock int `json:"products_low_stock"`
	ProductsOutStock int `json:"products_out_of_stock"`
}
