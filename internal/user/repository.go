package user

import (
	"context"
	"database/sql"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, email, hashedPassword string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, hashedPassword string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO admin_users (email, password)
		VALUES ($1, $2)
		RETURNING id, email, created_at
	`, email, hashedPassword).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password, created_at
		FROM admin_users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
