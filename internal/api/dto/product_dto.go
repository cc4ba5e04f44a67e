package dto

import (
	"time"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

// ProductRequest is the create/update payload.
type ProductRequest struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Stock       int                `json:"stock"`
	Price       float64            `json:"price"`
	Unit        string             `json:"unit"`
	Status      domain.StockStatus `json:"status"`
	Description string             `json:"description"`
	Supplier    string             `json:"supplier"`
}

// ToDomain maps the payload onto a product with the given id.
func (r ProductRequest) ToDomain(id string) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        r.Name,
		Category:    r.Category,
		Stock:       r.Stock,
		Price:       r.Price,
		Unit:        r.Unit,
		Status:      r.Status,
		Description: r.Description,
		Supplier:    r.Supplier,
	}
}

// ProductResponse is one product.
type ProductResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Stock       int                `json:"stock"`
	Price       float64            `json:"price"`
	Unit        string             `json:"unit"`
	Status      domain.StockStatus `json:"status"`
	Description string             `json:"description,omitempty"`
	Supplier    string             `json:"supplier"`
	LastUpdated string             `json:"lastUpdated"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// NewProductResponse maps a product.
func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Stock:       p.Stock,
		Price:       p.Price,
		Unit:        p.Unit,
		Status:      p.Status,
		Description: p.Description,
		Supplier:    p.Supplier,
		LastUpdated: p.UpdatedAt.Format("2006-01-02"),
		CreatedAt:   p.CreatedAt,
	}
}

// Pagination mirrors the listing metadata.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// ProductListResponse is one page of products.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}
