package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/sonuudigital/nimblestore/internal/cache"
	"github.com/sonuudigital/nimblestore/internal/logs"
	"github.com/sonuudigital/nimblestore/internal/repository"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]repository.Product, error)
	ListProductsPaginated(ctx context.Context, arg repository.ListProductsPaginatedParams) ([]repository.Product, error)
	GetProduct(ctx context.Context, id int64) (repository.Product, error)
	CreateProduct(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error)
	UpdateProduct(ctx context.Context, arg repository.UpdateProductParams) (repository.Product, error)
	PartialUpdateProduct(ctx context.Context, id int64, changes repository.ProductChanges) (repository.Product, error)
}

// Page selects a window of the listing. A zero Limit means the whole catalog.
type Page struct {
	Limit  int32
	Offset int32
}

type Service struct {
	repo      ProductRepository
	cache     cache.ProductCache
	logger    logs.Logger
	validator *validator.Validate
}

func NewService(repo ProductRepository, productCache cache.ProductCache, logger logs.Logger) *Service {
	if productCache == nil {
		productCache = cache.NoopProductCache{}
	}
	return &Service{
		repo:      repo,
		cache:     productCache,
		logger:    logger,
		validator: newValidator(),
	}
}

// ListProducts returns products in creation order. Only the full listing is cached.
func (s *Service) ListProducts(ctx context.Context, page Page) ([]repository.Product, error) {
	if page.Limit > 0 {
		products, err := s.repo.ListProductsPaginated(ctx, repository.ListProductsPaginatedParams{
			Limit:  page.Limit,
			Offset: page.Offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		return products, nil
	}

	if products, ok := s.cache.GetProducts(ctx); ok {
		return products, nil
	}

	generation, cacheable := s.cache.Generation(ctx)

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if cacheable {
		s.cache.SetProducts(ctx, generation, products)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (repository.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return repository.Product{}, notFound(err)
	}
	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (repository.Product, error) {
	if err := s.validate(input); err != nil {
		return repository.Product{}, err
	}

	product, err := s.repo.CreateProduct(ctx, input.createParams())
	if err != nil {
		return repository.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("product created", "productId", product.ID)
	return product, nil
}

// UpdateProduct replaces every writable field; absent fields go back to their defaults.
func (s *Service) UpdateProduct(ctx context.Context, id int64, input ProductInput) (repository.Product, error) {
	if err := s.validate(input); err != nil {
		return repository.Product{}, err
	}

	product, err := s.repo.UpdateProduct(ctx, input.updateParams(id))
	if err != nil {
		return repository.Product{}, notFound(err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("product updated", "productId", product.ID)
	return product, nil
}

func (s *Service) PartialUpdateProduct(ctx context.Context, id int64, input ProductInput) (repository.Product, error) {
	if err := s.validate(input); err != nil {
		return repository.Product{}, err
	}

	product, err := s.repo.PartialUpdateProduct(ctx, id, input.changes())
	if err != nil {
		return repository.Product{}, notFound(err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("product partially updated", "productId", product.ID)
	return product, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProductNotFound
	}
	return err
}
