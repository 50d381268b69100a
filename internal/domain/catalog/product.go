package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item owned by a tenant.
// Stock is a plain counter mutated only by the inventory ledger inside a
// sales unit of work; everything else is ordinary catalog data.
type Product struct {
	shared.TenantAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	SKU         string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_products_tenant_sku,priority:2"`
	Barcode     string          `gorm:"type:varchar(100)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	MinStock    int             `gorm:"not null;default:0"`
	Unit        string          `gorm:"type:varchar(20)"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	IsActive    bool            `gorm:"not null;default:true"`
	TrackStock  bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product for a tenant
func NewProduct(tenantID uuid.UUID, name, sku string, price decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		SKU:                 sku,
		Price:               price,
		Cost:                decimal.Zero,
		IsActive:            true,
	}, nil
}

// EnableStockTracking turns on stock tracking with an initial quantity
func (p *Product) EnableStockTracking(initialStock, minStock int) error {
	if initialStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Initial stock cannot be negative")
	}
	if minStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot be negative")
	}
	p.TrackStock = true
	p.Stock = initialStock
	p.MinStock = minStock
	p.Touch()
	p.IncrementVersion()
	return nil
}

// UpdatePricing updates the sale price and cost
func (p *Product) UpdatePricing(price, cost decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Product cost cannot be negative")
	}
	p.Price = price
	p.Cost = cost
	p.Touch()
	p.IncrementVersion()
	return nil
}

// IsBelowMinStock returns true if tracking is on and stock fell below the threshold
func (p *Product) IsBelowMinStock() bool {
	return p.TrackStock && p.MinStock > 0 && p.Stock < p.MinStock
}

// CanFulfill returns true if the product can satisfy the requested quantity.
// Untracked products always fulfill.
func (p *Product) CanFulfill(quantity int) bool {
	if !p.TrackStock {
		return true
	}
	return p.Stock >= quantity
}

// GetPriceMoney returns the sale price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(p.Price)
}

// Deactivate removes the product from sale without deleting it
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
	p.IncrementVersion()
}
