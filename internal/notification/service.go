package notification

import (
	"context"
	"fmt"

	"plantstore-be/internal/logger"

	"go.uber.org/zap"
)

const defaultListLimit = 50

type Service interface {
	NotifyNewOrder(ctx context.Context, trackingID, customerName string) (*Notification, error)
	NotifyStatusChange(ctx context.Context, trackingID string, status string) (*Notification, error)
	List(ctx context.Context) ([]*Notification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) NotifyNewOrder(ctx context.Context, trackingID, customerName string) (*Notification, error) {
	n := &Notification{
		Type:       TypeNewOrder,
		TrackingID: trackingID,
		Message:    fmt.Sprintf("New order %s from %s", trackingID, customerName),
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("notification recorded",
		zap.String("layer", "service"),
		zap.String("type", TypeNewOrder),
		zap.String("tracking_id", trackingID),
	)
	return created, nil
}

func (s *service) NotifyStatusChange(ctx context.Context, trackingID string, status string) (*Notification, error) {
	n := &Notification{
		Type:       TypeStatusMoved,
		TrackingID: trackingID,
		Message:    fmt.Sprintf("Order %s is now %s", trackingID, status),
	}
	return s.repo.Create(ctx, n)
}

func (s *service) List(ctx context.Context) ([]*Notification, error) {
	return s.repo.List(ctx, defaultListLimit)
}

func (s *service) MarkRead(ctx context.Context, id uint) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

func (s *service) UnreadCount(ctx context.Context) (int, error) {
	return s.repo.UnreadCount(ctx)
}
