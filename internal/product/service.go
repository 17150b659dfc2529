package product

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"plantstore-be/internal/logger"
	"plantstore-be/internal/storage"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const snapshotCacheSize = 256

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type CreateInput struct {
	Name        string
	Price       float64
	Stock       int
	Description string
}

type UpdateInput struct {
	ID          uint
	Name        string
	Price       float64
	Stock       int
	Description string
}

type Service interface {
	Create(ctx context.Context, input CreateInput, image *ImageUpload) (*Product, error)
	Update(ctx context.Context, input UpdateInput, image *ImageUpload) (*Product, error)
	UpdateStock(ctx context.Context, id uint, stock int) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, search string) ([]*Product, error)
}

type service struct {
	repo          Repository
	store         storage.ObjectStore
	maxImageBytes int64

	// snapshot cache for order placement; invalidated on any write
	snapshots *lru.Cache[uint, *Product]
}

func NewService(repo Repository, store storage.ObjectStore, maxImageBytes int64) Service {
	snapshots, _ := lru.New[uint, *Product](snapshotCacheSize)
	return &service{
		repo:          repo,
		store:         store,
		maxImageBytes: maxImageBytes,
		snapshots:     snapshots,
	}
}

func validate(name string, price float64, stock int) error {
	if len(strings.TrimSpace(name)) < 2 {
		return ErrNameTooShort
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	if stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

func (s *service) validateImage(img *ImageUpload) error {
	if img.Size > s.maxImageBytes {
		return ErrImageTooLarge
	}
	if !allowedImageTypes[strings.ToLower(img.ContentType)] {
		return ErrImageBadType
	}
	return nil
}

func imageKey(filename string) string {
	ext := "jpg"
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		ext = filename[i+1:]
	}
	return fmt.Sprintf("product_%d.%s", time.Now().UnixNano(), ext)
}

func (s *service) Create(ctx context.Context, input CreateInput, image *ImageUpload) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	if err := validate(input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageRequired
	}
	if err := s.validateImage(image); err != nil {
		return nil, err
	}

	key := imageKey(image.Filename)
	publicURL, err := s.store.Upload(ctx, key, image.ContentType, image.Body)
	if err != nil {
		log.Error("image upload failed", zap.Error(err))
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	p := &Product{
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Stock:    input.Stock,
		ImageURL: &publicURL,
		Status:   StatusFor(input.Stock),
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		p.Description = &desc
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		// Best-effort orphan cleanup; a stranded object is not worth failing over.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn("could not delete orphaned image", zap.String("key", key), zap.Error(delErr))
		}
		log.Error("product insert failed", zap.Error(err))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	log.Info("product created", zap.Uint("product_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput, image *ImageUpload) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.Uint("product_id", input.ID),
	)

	if err := validate(input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	imageURL := existing.ImageURL
	oldKey := ""
	if image != nil {
		if err := s.validateImage(image); err != nil {
			return nil, err
		}

		key := imageKey(image.Filename)
		publicURL, err := s.store.Upload(ctx, key, image.ContentType, image.Body)
		if err != nil {
			log.Error("replacement image upload failed", zap.Error(err))
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = &publicURL
		if existing.ImageURL != nil {
			oldKey = storage.KeyFromURL(*existing.ImageURL)
		}
	}

	p := &Product{
		ID:       input.ID,
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Stock:    input.Stock,
		ImageURL: imageURL,
		Status:   StatusFor(input.Stock),
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		p.Description = &desc
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.snapshots.Remove(input.ID)

	if oldKey != "" {
		if delErr := s.store.Delete(ctx, oldKey); delErr != nil {
			log.Warn("could not delete old image", zap.String("key", oldKey), zap.Error(delErr))
		}
	}

	log.Info("product updated")
	return s.repo.GetByID(ctx, input.ID)
}

func (s *service) UpdateStock(ctx context.Context, id uint, stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	if err := s.repo.UpdateStock(ctx, id, stock); err != nil {
		return err
	}
	s.snapshots.Remove(id)
	return nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.Uint("product_id", id),
	)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.snapshots.Remove(id)

	if existing.ImageURL != nil {
		key := storage.KeyFromURL(*existing.ImageURL)
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn("could not delete product image", zap.String("key", key), zap.Error(delErr))
		}
	}

	log.Info("product deleted")
	return nil
}

// Get serves order placement; snapshots are cached because the storefront
// hits the same handful of products repeatedly.
func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	if p, ok := s.snapshots.Get(id); ok {
		return p, nil
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.snapshots.Add(id, p)
	return p, nil
}

func (s *service) List(ctx context.Context, search string) ([]*Product, error) {
	return s.repo.List(ctx, search)
}
