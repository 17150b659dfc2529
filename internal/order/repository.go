package order

import (
	"context"
	"database/sql"
	"errors"

	"plantstore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*Order, error)
	UpdateStatus(ctx context.Context, trackingID string, target Status, allowedFrom []Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, tracking_id, customer_name, phone_number, address,
	product_id, product_name, price, quantity, total,
	requirements, payment_method, status, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.TrackingID, &o.CustomerName, &o.PhoneNumber, &o.Address,
		&o.ProductID, &o.ProductName, &o.Price, &o.Quantity, &o.Total,
		&o.Requirements, &o.PaymentMethod, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("tracking_id", o.TrackingID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			tracking_id, customer_name, phone_number, address,
			product_id, product_name, price, quantity, total,
			requirements, payment_method, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at
	`,
		o.TrackingID, o.CustomerName, o.PhoneNumber, o.Address,
		o.ProductID, o.ProductName, o.Price, o.Quantity, o.Total,
		o.Requirements, o.PaymentMethod, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	log.Info("order created", zap.Float64("total", o.Total))
	return o, nil
}

// List returns the full canonical order list, newest-first. Filtering and
// search happen in the projection layer, not in SQL, so the admin view
// always works from one consistent snapshot.
func (r *repository) List(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) GetByTrackingID(ctx context.Context, trackingID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE tracking_id = $1
	`, trackingID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus is the conditional update the lifecycle controller relies
// on: the row only changes when its current status is one of allowedFrom,
// so a concurrent transition cannot be overwritten.
func (r *repository) UpdateStatus(ctx context.Context, trackingID string, target Status, allowedFrom []Status) error {
	from := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		from[i] = string(s)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE tracking_id = $2 AND status = ANY($3)
	`, target, trackingID, pq.Array(from))
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		// Zero rows means the order is gone or its status moved
		// underneath us; the caller needs to know which.
		var exists bool
		err := r.db.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM orders WHERE tracking_id = $1)
		`, trackingID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			return ErrTransitionNotAllowed
		}
		return ErrOrderNotFound
	}
	return nil
}
