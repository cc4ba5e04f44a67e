package domain

import "time"

// StockStatus is the availability band of a commodity.
type StockStatus string

const (
	StockStatusInStock  StockStatus = "In Stock"
	StockStatusLowStock StockStatus = "Low Stock"
	StockStatusCritical StockStatus = "Critical"
)

// Valid reports whether s is a known status.
func (s StockStatus) Valid() bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusCritical:
		return true
	}
	return false
}

// Product is a commodity inventory record.
type Product struct {
	ID          string
	Name        string
	Category    string
	Stock       int
	Price       float64
	Unit        string
	Status      StockStatus
	Description string
	Supplier    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Status   string
	Search   string
	Page     int
	Limit    int
}

// ProductStats summarizes the catalog for the dashboard.
type ProductStats struct {
	Total      int     `json:"total"`
	InStock    int     `json:"inStock"`
	LowStock   int     `json:"lowStock"`
	Critical   int     `json:"critical"`
	TotalValue float64 `json:"totalValue"`
}
