package customer

import (
	"context"
	"strings"

	"plantstore-be/internal/logger"
	"plantstore-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Ban(ctx context.Context, phone, name, reason string) (*BannedCustomer, error)
	Unban(ctx context.Context, phone string) error
	IsBanned(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context) ([]*BannedCustomer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Ban(ctx context.Context, phone, name, reason string) (*BannedCustomer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "BanCustomer"),
	)

	phone = utils.NormalizePhone(strings.TrimSpace(phone))
	if !utils.IsValidPhone(phone) {
		return nil, ErrInvalidPhone
	}

	c := &BannedCustomer{PhoneNumber: phone}
	if v := strings.TrimSpace(name); v != "" {
		c.Name = &v
	}
	if v := strings.TrimSpace(reason); v != "" {
		c.Reason = &v
	}

	banned, err := s.repo.Ban(ctx, c)
	if err != nil {
		return nil, err
	}

	log.Info("customer banned", zap.String("phone", phone))
	return banned, nil
}

func (s *service) Unban(ctx context.Context, phone string) error {
	phone = utils.NormalizePhone(strings.TrimSpace(phone))
	if !utils.IsValidPhone(phone) {
		return ErrInvalidPhone
	}
	return s.repo.Unban(ctx, phone)
}

func (s *service) IsBanned(ctx context.Context, phone string) (bool, error) {
	return s.repo.IsBanned(ctx, phone)
}

func (s *service) List(ctx context.Context) ([]*BannedCustomer, error) {
	return s.repo.List(ctx)
}
