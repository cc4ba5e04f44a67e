package repository

import (
	"time"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// DemoProducts is the starter commodity catalog.
func DemoProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Premium Wheat", Category: "Grains", Stock: 450, Price: 245, Unit: "ton", Status: domain.StockStatusInStock, Description: "High-quality wheat grain for flour production", Supplier: "AgriCorp Ltd", CreatedAt: day("2024-01-15"), UpdatedAt: day("2024-02-15")},
		{ID: "2", Name: "Organic Corn", Category: "Grains", Stock: 380, Price: 189, Unit: "ton", Status: domain.StockStatusInStock, Description: "Organic non-GMO corn for feed and food", Supplier: "Green Fields Inc", CreatedAt: day("2024-01-20"), UpdatedAt: day("2024-02-14")},
		{ID: "3", Name: "Arabica Coffee Beans", Category: "Beverages", Stock: 125, Price: 320, Unit: "kg", Status: domain.StockStatusLowStock, Description: "Premium Arabica coffee beans from Ethiopia", Supplier: "Global Coffee Co", CreatedAt: day("2024-01-10"), UpdatedAt: day("2024-02-13")},
		{ID: "4", Name: "Raw Sugar", Category: "Sweeteners", Stock: 410, Price: 156, Unit: "ton", Status: domain.StockStatusInStock, Description: "Raw cane sugar for industrial use", Supplier: "SweetSource Ltd", CreatedAt: day("2024-01-05"), UpdatedAt: day("2024-02-12")},
		{ID: "5", Name: "Soybeans", Category: "Oilseeds", Stock: 290, Price: 512, Unit: "ton", Status: domain.StockStatusInStock, Description: "High-protein soybeans for oil and feed", Supplier: "AgriProduce Corp", CreatedAt: day("2024-01-25"), UpdatedAt: day("2024-02-11")},
		{ID: "6", Name: "Palm Oil", Category: "Oils", Stock: 85, Price: 890, Unit: "ton", Status: domain.StockStatusCritical, Description: "Refined palm oil for cooking and industrial use", Supplier: "Tropical Oils Ltd", CreatedAt: day("2024-01-30"), UpdatedAt: day("2024-02-10")},
		{ID: "7", Name: "Cocoa Beans", Category: "Beverages", Stock: 95, Price: 1250, Unit: "kg", Status: domain.StockStatusLowStock, Description: "Premium cocoa beans for chocolate production", Supplier: "ChocoSource", CreatedAt: day("2024-02-01"), UpdatedAt: day("2024-02-09")},
		{ID: "8", Name: "Cotton", Category: "Fibers", Stock: 320, Price: 180, Unit: "bale", Status: domain.StockStatusInStock, Description: "High-grade cotton for textile industry", Supplier: "Textile Traders", CreatedAt: day("2024-01-28"), UpdatedAt: day("2024-02-08")},
		{ID: "9", Name: "Rice - Jasmine", Category: "Grains", Stock: 275, Price: 420, Unit: "ton", Status: domain.StockStatusInStock, Description: "Fragrant jasmine rice from Thailand", Supplier: "Asian Grains Inc", CreatedAt: day("2024-02-02"), UpdatedAt: day("2024-02-07")},
		{ID: "10", Name: "Almonds", Category: "Nuts", Stock: 65, Price: 950, Unit: "kg", Status: domain.StockStatusCritical, Description: "California almonds for snacks and baking", Supplier: "Nut Harvesters", CreatedAt: day("2024-01-22"), UpdatedAt: day("2024-02-06")},
	}
}
