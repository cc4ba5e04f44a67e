package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

// ProductRepository defines access to commodity records.
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error)
	All(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewMemoryProductRepository returns an in-memory repository seeded with products.
func NewMemoryProductRepository(seed ...domain.Product) ProductRepository {
	r := &memoryProductRepository{products: make(map[string]domain.Product, len(seed))}
	for _, p := range seed {
		r.products[p.ID] = p
	}
	return r
}

func (r *memoryProductRepository) All(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(), nil
}

// List filters, then paginates. The int result is the filtered total.
func (r *memoryProductRepository) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	r.mu.RLock()
	all := r.sortedLocked()
	r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := all[:0:0]
	for _, p := range all {
		if filter.Category != "" && filter.Category != "All" && p.Category != filter.Category {
			continue
		}
		if filter.Status != "" && filter.Status != "All" && string(p.Status) != filter.Status {
			continue
		}
		if search != "" && !productMatches(p, search) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	if filter.Limit <= 0 {
		return matched, total, nil
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	// Compare page numbers before multiplying so huge pages cannot overflow.
	if total == 0 || page-1 > (total-1)/filter.Limit {
		return []domain.Product{}, total, nil
	}
	start := (page - 1) * filter.Limit
	end := total
	if filter.Limit < total-start {
		end = start + filter.Limit
	}
	return matched[start:end], total, nil
}

func (r *memoryProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *memoryProductRepository) Create(_ context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	product.CreatedAt = now
	product.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *memoryProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[product.ID]
	if !ok {
		return ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	r.products[product.ID] = *product
	return nil
}

func (r *memoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memoryProductRepository) sortedLocked() []domain.Product {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func productMatches(p domain.Product, needle string) bool {
	for _, field := range []string{p.Name, p.Category, p.Supplier, p.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
