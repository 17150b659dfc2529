package stats

import (
	"context"
	"database/sql"
)

type Repository interface {
	Dashboard(ctx context.Context, lowStockLimit int) (*Dashboard, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Dashboard(ctx context.Context, lowStockLimit int) (*Dashboard, error) {
	var d Dashboard

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM orders GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		switch status {
		case "Pending":
			d.PendingOrders = count
		case "Confirmed":
			d.ConfirmedOrders = count
		case "Cancelled":
			d.CancelledOrders = count
		}
		d.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = 'Confirmed'
	`).Scan(&d.Revenue)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE created_at::date = CURRENT_DATE
	`).Scan(&d.OrdersToday)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE stock > $1),
			COUNT(*) FILTER (WHERE stock > 0 AND stock <= $1),
			COUNT(*) FILTER (WHERE stock = 0)
		FROM products
	`, lowStockLimit).Scan(&d.ProductsInStock, &d.ProductsLowStock, &d.ProductsOutStock)
	if err != nil {
		return nil, err
	}

	return &d, nil
}
