package notification

import (
	"context"
	"database/sql"

	"plantstore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) (*Notification, error)
	List(ctx context.Context, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) (*Notification, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateNotification"),
		zap.String("type", n.Type),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO notifications (type, tracking_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, n.Type, n.TrackingID, n.Message).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		log.Error("failed to insert notification", zap.Error(err))
		return nil, err
	}
	return n, nil
}

func (r *repository) List(ctx context.Context, limit int) ([]*Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, tracking_id, message, read, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.TrackingID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

func (r *repository) MarkRead(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE WHERE read = FALSE
	`)
	return err
}

func (r *repository) UnreadCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications WHERE read = FALSE
	`).Scan(&count)
	return count, err
}
