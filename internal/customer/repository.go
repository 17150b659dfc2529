package customer

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"plantstore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Ban(ctx context.Context, c *BannedCustomer) (*BannedCustomer, error)
	Unban(ctx context.Context, phone string) error
	IsBanned(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context) ([]*BannedCustomer, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Ban(ctx context.Context, c *BannedCustomer) (*BannedCustomer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "BanCustomer"),
		zap.String("phone", c.PhoneNumber),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO banned_customers (phone_number, name, reason)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.PhoneNumber, c.Name, c.Reason).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "banned_customers_phone_number_key") {
			return nil, ErrAlreadyBanned
		}
		log.Error("failed to insert ban", zap.Error(err))
		return nil, err
	}

	log.Info("customer banned")
	return c, nil
}

func (r *repository) Unban(ctx context.Context, phone string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM banned_customers WHERE phone_number = $1
	`, phone)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotBanned
	}
	return nil
}

func (r *repository) IsBanned(ctx context.Context, phone string) (bool, error) {
	var banned bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM banned_customers WHERE phone_number = $1)
	`, phone).Scan(&banned)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return banned, nil
}

func (r *repository) List(ctx context.Context) ([]*BannedCustomer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, phone_number, name, reason, created_at
		FROM banned_customers
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*BannedCustomer
	for rows.Next() {
		var c BannedCustomer
		if err := rows.Scan(&c.ID, &c.PhoneNumber, &c.Name, &c.Reason, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}
