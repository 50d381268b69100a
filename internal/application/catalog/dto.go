package catalog

import "github.com/shopspring/decimal"

// CreateProductInput contains data for creating a product
type CreateProductInput struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	SKU         string          `json:"sku" binding:"required,max=100"`
	Barcode     string          `json:"barcode" binding:"max=100"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Cost        decimal.Decimal `json:"cost"`
	Unit        string          `json:"unit" binding:"max=20"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url,max=500"`
	TrackStock  bool            `json:"track_stock"`
	Stock       int             `json:"stock" binding:"min=0"`
	MinStock    int             `json:"min_stock" binding:"min=0"`
}

// UpdateProductInput contains optional fields for updating a product.
// Stock is absent on purpose; it moves only through the sales ledger.
type UpdateProductInput struct {
	Name        *string          `json:"name" binding:"omitempty,max=200"`
	Description *string          `json:"description"`
	Barcode     *string          `json:"barcode" binding:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Unit        *string          `json:"unit" binding:"omitempty,max=20"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,url,max=500"`
	MinStock    *int             `json:"min_stock" binding:"omitempty,min=0"`
	IsActive    *bool            `json:"is_active"`
}

// CreateCustomerInput contains data for creating a customer
type CreateCustomerInput struct {
	Name    string `json:"name" binding:"required,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address"`
}

// UpdateCustomerInput contains optional fields for updating a customer
type UpdateCustomerInput struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=200"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}
