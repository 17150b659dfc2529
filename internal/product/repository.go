package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"plantstore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) error
	UpdateStock(ctx context.Context, id uint, stock int) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, search string) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, stock, description, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Price, p.Stock, p.Description, p.ImageURL, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, price = $2, stock = $3, description = $4,
		    image_url = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`, p.Name, p.Price, p.Stock, p.Description, p.ImageURL, p.Status, p.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) UpdateStock(ctx context.Context, id uint, stock int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`, stock, StatusFor(stock), id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, stock, description, image_url, status, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Description, &p.ImageURL, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, search string) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	query := `
		SELECT id, name, price, stock, description, image_url, status, created_at, updated_at
		FROM products
		WHERE 1=1
	`

	args := []any{}
	argIndex := 1

	if search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Description, &p.ImageURL, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("products listed", zap.Int("count", len(products)))
	return products, nil
}
