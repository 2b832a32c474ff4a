package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"storelib/internal/cache"
	"storelib/internal/domain"
	productrepo "storelib/internal/repository/product"
)

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type productRepo interface {
	List(ctx context.Context, f productrepo.ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service manages categories and products. Single products are served through the cache.
type Service struct {
	categories categoryRepo
	products   productRepo
	cache      cache.Cache
	ttl        time.Duration
	logger     *log.Logger
}

func New(categories categoryRepo, products productRepo, c cache.Cache, ttl time.Duration, logger *log.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{categories: categories, products: products, cache: c, ttl: ttl, logger: logger}
}

type CategoryInput struct {
	Name string `json:"name"`
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PriceCents  int64   `json:"priceCents"`
	CategoryID  *string `json:"categoryId"`
	Image       string  `json:"image"`
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name required")
	}
	return s.categories.Create(ctx, domain.Category{Name: name})
}

// DeleteCategory removes the category. Its products stay, uncategorized, so cached copies are dropped.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	affected, err := s.products.List(ctx, productrepo.ListFilter{CategoryID: id})
	if err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	keys := make([]string, 0, len(affected))
	for _, p := range affected {
		keys = append(keys, productKey(p.ID))
	}
	s.evict(ctx, keys...)
	return nil
}

func (s *Service) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return s.products.List(ctx, productrepo.ListFilter{CategoryID: categoryID})
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name required")
	}
	if in.PriceCents < 0 {
		return nil, domain.Invalid("price must not be negative")
	}
	var categoryID *string
	if in.CategoryID != nil && strings.TrimSpace(*in.CategoryID) != "" {
		id := strings.TrimSpace(*in.CategoryID)
		if _, err := s.categories.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Invalid("category %s not found", id)
			}
			return nil, err
		}
		categoryID = &id
	}
	return s.products.Create(ctx, domain.Product{
		Name:        name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		CategoryID:  categoryID,
		Image:       strings.TrimSpace(in.Image),
	})
}

// GetProduct reads through the cache. Cache failures fall back to the repository.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var cached domain.Product
	hit, err := s.cache.Get(ctx, productKey(id), &cached)
	if err != nil {
		s.logger.Printf("catalog: cache get id=%s error=%v", id, err)
	} else if hit {
		return &cached, nil
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, productKey(id), p, s.ttl); err != nil {
		s.logger.Printf("catalog: cache set id=%s error=%v", id, err)
	}
	return p, nil
}

// DeleteProduct removes the product and every cart item holding it.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, productKey(id))
	return nil
}

func (s *Service) evict(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Printf("catalog: cache delete keys=%v error=%v", keys, err)
	}
}

func productKey(id string) string {
	return "product:" + id
}
