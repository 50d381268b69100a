package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence.
// Stock mutation goes exclusively through the atomic Adjust* methods so that
// concurrent checkouts can never oversell; plain Save never writes the
// stock column.
type ProductRepository interface {
	// FindByIDForTenant finds a product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by SKU within a tenant
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)

	// FindAllForTenant finds all products for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)

	// CountForTenant counts products for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a product (never touches the stock column on update)
	Save(ctx context.Context, product *Product) error

	// DecrementStock atomically decrements stock by quantity when enough is
	// available: UPDATE .. SET stock = stock - qty WHERE .. AND stock >= qty.
	// Returns the number of rows affected; zero means insufficient stock.
	DecrementStock(ctx context.Context, tenantID, id uuid.UUID, quantity int) (int64, error)

	// IncrementStock atomically increments stock by quantity.
	// Returns the number of rows affected; zero means the product is gone.
	IncrementStock(ctx context.Context, tenantID, id uuid.UUID, quantity int) (int64, error)

	// DeleteForTenant deletes a product within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByIDForTenant finds a customer by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindAllForTenant finds all customers for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// CountForTenant counts customers for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// DeleteForTenant deletes a customer within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
