package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/commodity-gate/internal/domain"
	"github.com/spec-kit/commodity-gate/internal/events"
	"github.com/spec-kit/commodity-gate/internal/repository"
	apperrors "github.com/spec-kit/commodity-gate/pkg/util/errorutil"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
	// maxPage keeps (page-1)*limit within int for any allowed limit.
	maxPage = math.MaxInt / maxPageLimit
)

// ProductPage is one page of a filtered listing.
type ProductPage struct {
	Items      []domain.Product
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// HasNext reports whether a later page exists.
func (p ProductPage) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether an earlier page exists.
func (p ProductPage) HasPrev() bool { return p.Page > 1 }

// ProductService manages the commodity catalog.
type ProductService struct {
	products repository.ProductRepository
	events   events.Dispatcher
	logger   *zap.Logger
}

// NewProductService creates the service.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{products: products, events: dispatcher, logger: logger}
}

// List returns a page of products matching filter.
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) (ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Page > maxPage {
		filter.Page = maxPage
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return ProductPage{}, apperrors.NewInternalError(err)
	}
	return ProductPage{
		Items:      items,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "product", id)
	}
	return p, nil
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, actor domain.Identity, p *domain.Product) error {
	if p.Status == "" {
		p.Status = domain.StockStatusInStock
	}
	if err := validateProduct(p); err != nil {
		return err
	}
	p.ID = ""
	if err := s.products.Create(ctx, p); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.publishChange(ctx, actor, p.ID, "created")
	return nil
}

// Update replaces an existing product.
func (s *ProductService) Update(ctx context.Context, actor domain.Identity, p *domain.Product) error {
	if p.Status == "" {
		p.Status = domain.StockStatusInStock
	}
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return mapRepoError(err, "product", p.ID)
	}
	s.publishChange(ctx, actor, p.ID, "updated")
	return nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return mapRepoError(err, "product", id)
	}
	s.publishChange(ctx, actor, id, "deleted")
	return nil
}

// Stats summarizes the catalog.
func (s *ProductService) Stats(ctx context.Context) (domain.ProductStats, error) {
	all, err := s.products.All(ctx)
	if err != nil {
		return domain.ProductStats{}, apperrors.NewInternalError(err)
	}
	var stats domain.ProductStats
	for _, p := range all {
		stats.Total++
		switch p.Status {
		case domain.StockStatusInStock:
			stats.InStock++
		case domain.StockStatusLowStock:
			stats.LowStock++
		case domain.StockStatusCritical:
			stats.Critical++
		}
		stats.TotalValue += float64(p.Stock) * p.Price
	}
	return stats, nil
}

// ExportCSV writes the full catalog as CSV.
func (s *ProductService) ExportCSV(ctx context.Context, w io.Writer) error {
	all, err := s.products.All(ctx)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "category", "stock", "price", "unit", "status", "supplier", "updated_at"}); err != nil {
		return err
	}
	for _, p := range all {
		row := []string{
			p.ID,
			p.Name,
			p.Category,
			strconv.Itoa(p.Stock),
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			p.Unit,
			string(p.Status),
			p.Supplier,
			p.UpdatedAt.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ProductService) publishChange(ctx context.Context, actor domain.Identity, id, action string) {
	if s.events == nil {
		return
	}
	event := events.New(events.EventProductChanged, events.ActorFromIdentity(actor, ""), events.ProductChangedPayload{ProductID: id, Action: action})
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publish product change", zap.Error(err))
	}
}

func validateProduct(p *domain.Product) error {
	details := map[string]any{}
	required := map[string]string{
		"name":     p.Name,
		"category": p.Category,
		"unit":     p.Unit,
		"supplier": p.Supplier,
	}
	for field, val := range required {
		if strings.TrimSpace(val) == "" {
			details[field] = "is required"
		}
	}
	if p.Stock < 0 {
		details["stock"] = "must not be negative"
	}
	if p.Price <= 0 {
		details["price"] = "must be positive"
	}
	if !p.Status.Valid() {
		details["status"] = "must be one of In Stock, Low Stock, Critical"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid product", details)
	}
	return nil
}

func mapRepoError(err error, resource, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.NewInternalError(err)
}
