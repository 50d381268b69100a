package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/shared"
)

// StockLedger applies stock reservations and releases against the product
// catalog. All mutations go through the repository's atomic conditional
// updates, so two concurrent checkouts can never both take the last unit.
//
// The ledger is constructed over whichever repository the caller holds;
// inside a sales unit of work that is the transaction-scoped one, so ledger
// writes commit and roll back together with the sale.
type StockLedger struct {
	products catalog.ProductRepository
}

// NewStockLedger creates a new StockLedger
func NewStockLedger(products catalog.ProductRepository) *StockLedger {
	return &StockLedger{products: products}
}

// Reserve decrements stock for a tracked product, failing when the remaining
// stock cannot cover the quantity. Untracked products always succeed.
// Returns the product as loaded before the decrement so callers can snapshot
// its name and SKU.
func (l *StockLedger) Reserve(ctx context.Context, tenantID, productID uuid.UUID, quantity int) (*catalog.Product, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	product, err := l.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is no longer for sale")
	}

	if !product.TrackStock {
		return product, nil
	}

	rows, err := l.products.DecrementStock(ctx, tenantID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, shared.ErrInsufficientStock
	}

	product.Stock -= quantity
	return product, nil
}

// Release returns previously reserved stock, used when a sale is cancelled.
// Untracked products are a no-op. A product that disappeared since the sale
// fails the release; the surrounding unit of work rolls back and the sale
// keeps its current status.
func (l *StockLedger) Release(ctx context.Context, tenantID, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	product, err := l.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	if !product.TrackStock {
		return nil
	}

	_, err = l.products.IncrementStock(ctx, tenantID, productID, quantity)
	return err
}
