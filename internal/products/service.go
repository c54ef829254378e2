package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emberworks/storefront-backend/pkg/db/models"
	pkgerrors "github.com/emberworks/storefront-backend/pkg/errors"
	"github.com/emberworks/storefront-backend/pkg/logger"
)

const (
	featuredCacheKeyPart   = "featured_products"
	featuredCacheTTL       = 5 * time.Minute
	recommendationLimit    = 4
	maxRecommendationLimit = 12
)

// Service exposes catalog operations for shoppers and admins.
type Service interface {
	ListAll(ctx context.Context) ([]ProductDTO, error)
	ListFeatured(ctx context.Context) ([]ProductDTO, error)
	ListByCategory(ctx context.Context, category string) ([]ProductDTO, error)
	Recommendations(ctx context.Context, limit int) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleFeatured(ctx context.Context, id uuid.UUID, featured bool) error
}

type productCache interface {
	CacheKey(parts ...string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type service struct {
	repo  *Repository
	cache productCache
	logg  *logger.Logger
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo   *Repository
	Cache  productCache
	Logger *logger.Logger
}

// NewService builds a catalog service. Cache is optional; when nil the
// featured listing always hits the database.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:  params.Repo,
		cache: params.Cache,
		logg:  params.Logger,
	}, nil
}

func (s *service) ListAll(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toDTOs(rows), nil
}

// ListFeatured serves the landing page. Results are cached as JSON; cache
// failures are logged and fall through to the database.
func (s *service) ListFeatured(ctx context.Context) ([]ProductDTO, error) {
	if s.cache != nil {
		key := s.cache.CacheKey(featuredCacheKeyPart)
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cached []ProductDTO
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
			s.logg.Warn(ctx, "discarding unreadable featured products cache entry")
		}
	}

	rows, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	dtos := toDTOs(rows)

	if s.cache != nil {
		if encoded, err := json.Marshal(dtos); err == nil {
			key := s.cache.CacheKey(featuredCacheKeyPart)
			if err := s.cache.Set(ctx, key, string(encoded), featuredCacheTTL); err != nil {
				s.logg.Warn(ctx, "caching featured products failed")
			}
		}
	}
	return dtos, nil
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]ProductDTO, error) {
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	rows, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products by category")
	}
	return toDTOs(rows), nil
}

func (s *service) Recommendations(ctx context.Context, limit int) ([]ProductDTO, error) {
	if limit <= 0 || limit > maxRecommendationLimit {
		limit = recommendationLimit
	}
	rows, err := s.repo.ListRandom(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recommendations")
	}
	return toDTOs(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := toDTO(*product)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	product := &models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		IsFeatured:  req.IsFeatured,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	if product.IsFeatured {
		s.invalidateFeaturedCache(ctx)
	}
	dto := toDTO(*product)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	s.invalidateFeaturedCache(ctx)
	return nil
}

func (s *service) ToggleFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	updated, err := s.repo.SetFeatured(ctx, id, featured)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update featured flag")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	s.invalidateFeaturedCache(ctx)
	return nil
}

func (s *service) invalidateFeaturedCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	key := s.cache.CacheKey(featuredCacheKeyPart)
	if err := s.cache.Del(ctx, key); err != nil {
		s.logg.Warn(ctx, "invalidating featured products cache failed")
	}
}
