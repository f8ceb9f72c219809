package product

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/logger"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProduct) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProduct) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	products, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Info("product list fetched",
		zap.Int("count", len(products)),
		zap.String("category", opts.Category),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input NewProduct) (*Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, ErrCategoryRequired
	}
	if input.OriginalPrice != nil && input.Price > *input.OriginalPrice {
		return nil, ErrPriceAboveOriginal
	}

	p := &Product{
		Name:          input.Name,
		Category:      input.Category,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Rating:        input.Rating,
		Reviews:       input.Reviews,
		InStock:       input.InStock,
		StockQuantity: input.StockQuantity,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.String("product_id", p.ID.Hex()),
		zap.String("name", p.Name),
		zap.String("category", p.Category),
	)

	return p, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateProduct) (*Product, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	if !input.hasFields() {
		return nil, ErrNoFieldsToUpdate
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, ErrNegativePrice
	}

	// Validating the discount invariant across a partial update needs
	// the stored document when only one side changes.
	if input.Price != nil || input.OriginalPrice != nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		price := current.Price
		if input.Price != nil {
			price = *input.Price
		}
		original := current.OriginalPrice
		if input.OriginalPrice != nil {
			original = input.OriginalPrice
		}
		if original != nil && price > *original {
			return nil, ErrPriceAboveOriginal
		}
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("product deleted", zap.String("product_id", id))
	return nil
}
