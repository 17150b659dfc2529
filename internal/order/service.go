package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"plantstore-be/internal/logger"
	"plantstore-be/internal/metrics"
	"plantstore-be/internal/product"
	"plantstore-be/internal/utils"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ProductSource is the slice of the catalog the order flow needs.
type ProductSource interface {
	Get(ctx context.Context, id uint) (*product.Product, error)
}

// BanList answers whether a phone number is blocked from ordering.
type BanList interface {
	IsBanned(ctx context.Context, phone string) (bool, error)
}

type PlaceInput struct {
	CustomerName  string
	PhoneNumber   string
	Address       string
	ProductID     uint
	Quantity      int
	Requirements  string
	PaymentMethod string
}

// BulkResult reports a bulk transition. Partial failure is a normal
// outcome, not an error state: Err collects the per-order failures for
// logging and the counts drive the user-facing summary.
type BulkResult struct {
	Succeeded int
	Failed    int
	Err       error
}

type Service interface {
	Place(ctx context.Context, input PlaceInput) (*Order, error)
	Orders(ctx context.Context, proj Projection) ([]*Order, error)
	Track(ctx context.Context, trackingID string) (*Order, error)
	Transition(ctx context.Context, trackingID string, target Status) error
	BulkTransition(ctx context.Context, trackingIDs []string, target Status) BulkResult
	Export(ctx context.Context) (string, error)
	Selection(ctx context.Context) *Selection
}

type service struct {
	repo       Repository
	products   ProductSource
	bans       BanList
	tracking   *TrackingGenerator
	selections *selections
	maxQty     int
}

func NewService(repo Repository, products ProductSource, bans BanList, tracking *TrackingGenerator, maxQty int) Service {
	return &service{
		repo:       repo,
		products:   products,
		bans:       bans,
		tracking:   tracking,
		selections: newSelections(),
		maxQty:     maxQty,
	}
}

// Selection returns the selection set of the admin authenticated on ctx.
// Each admin session gets its own set.
func (s *service) Selection(ctx context.Context) *Selection {
	userID, _ := utils.GetUserIDFromContext(ctx)
	return s.selections.forUser(userID)
}

func (s *service) Place(ctx context.Context, input PlaceInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("product_id", input.ProductID),
	)

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, ErrNameRequired
	}

	phone := utils.NormalizePhone(strings.TrimSpace(input.PhoneNumber))
	if !utils.IsValidPhone(phone) {
		return nil, ErrInvalidPhone
	}

	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, ErrAddressRequired
	}

	switch input.PaymentMethod {
	case PaymentCOD, PaymentBank, PaymentCard:
	default:
		return nil, ErrInvalidPayment
	}

	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	banned, err := s.bans.IsBanned(ctx, phone)
	if err != nil {
		log.Error("ban check failed", zap.Error(err))
		return nil, err
	}
	if banned {
		log.Warn("order rejected for banned customer", zap.String("phone", phone))
		return nil, ErrCustomerBanned
	}

	p, err := s.products.Get(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p.Stock == 0 {
		return nil, ErrOutOfStock
	}
	if input.Quantity > p.Stock || input.Quantity > s.maxQty {
		return nil, ErrQuantityTooLarge
	}

	o := &Order{
		TrackingID:    s.tracking.Generate(p.ID, name),
		CustomerName:  name,
		PhoneNumber:   phone,
		Address:       address,
		ProductID:     p.ID,
		ProductName:   p.Name,
		Price:         p.Price,
		Quantity:      input.Quantity,
		Total:         p.Price * float64(input.Quantity),
		PaymentMethod: input.PaymentMethod,
		Status:        StatusPending,
	}
	if req := strings.TrimSpace(input.Requirements); req != "" {
		o.Requirements = &req
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	metrics.OrdersPlaced.Inc()
	log.Info("order placed",
		zap.String("tracking_id", created.TrackingID),
		zap.Int("quantity", created.Quantity),
		zap.Float64("total", created.Total),
	)
	return created, nil
}

func (s *service) Orders(ctx context.Context, proj Projection) ([]*Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	// keep the caller's selection consistent with the loaded list
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.TrackingID
	}
	s.Selection(ctx).PruneTo(ids)

	return proj.Apply(orders, time.Now()), nil
}

func (s *service) Track(ctx context.Context, trackingID string) (*Order, error) {
	return s.repo.GetByTrackingID(ctx, trackingID)
}

func (s *service) Transition(ctx context.Context, trackingID string, target Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Transition"),
		zap.String("tracking_id", trackingID),
		zap.String("target", string(target)),
	)

	if !ValidStatus(target) {
		return ErrInvalidStatus
	}

	o, err := s.repo.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return err
	}

	if !CanTransition(o.Status, target) {
		log.Warn("transition rejected", zap.String("from", string(o.Status)))
		return ErrTransitionNotAllowed
	}

	// Conditional on the status we just read; a concurrent transition
	// makes this a no-op failure instead of a lost update.
	if err := s.repo.UpdateStatus(ctx, trackingID, target, []Status{o.Status}); err != nil {
		metrics.TransitionsFailed.Inc()
		return err
	}

	// the order left the selectable set for every admin, not just this one
	s.selections.removeAll(trackingID)
	metrics.TransitionsApplied.Inc()
	log.Info("order status updated", zap.String("from", string(o.Status)))
	return nil
}

// BulkTransition applies the transition per order, independently. A
// failure is logged and counted but never aborts the remaining orders,
// and the acting admin's selection is cleared regardless of partial
// failure.
func (s *service) BulkTransition(ctx context.Context, trackingIDs []string, target Status) BulkResult {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "BulkTransition"),
		zap.String("target", string(target)),
		zap.Int("count", len(trackingIDs)),
	)

	var result BulkResult
	for _, id := range trackingIDs {
		if err := s.Transition(ctx, id, target); err != nil {
			log.Warn("bulk item failed", zap.String("tracking_id", id), zap.Error(err))
			result.Failed++
			result.Err = multierr.Append(result.Err, fmt.Errorf("%s: %w", id, err))
			continue
		}
		result.Succeeded++
	}

	s.Selection(ctx).Clear()

	log.Info("bulk transition finished",
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)
	return result
}

func (s *service) Export(ctx context.Context) (string, error) {
	timer := metrics.StartTimer()

	orders, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}

	csv := ExportCSV(orders)
	metrics.ExportsGenerated.Inc()

	logger.FromCtx(ctx).Info("orders exported",
		zap.String("layer", "service"),
		zap.Int("rows", len(orders)),
		zap.Duration("took", timer.Duration()),
	)
	return csv, nil
}
