package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
)

// ProductService handles catalog product operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, logger: logger}
}

// Create adds a product to the acting tenant's catalog. The SKU must be
// unique within the tenant; a duplicate surfaces as ErrAlreadyExists.
func (s *ProductService) Create(ctx context.Context, tctx identity.TenantContext, input CreateProductInput) (*catalog.Product, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionProductManage) {
		return nil, shared.ErrForbidden
	}

	product, err := catalog.NewProduct(tctx.TenantID, input.Name, input.SKU, input.Price)
	if err != nil {
		return nil, err
	}
	product.Description = input.Description
	product.Barcode = input.Barcode
	product.Unit = input.Unit
	product.ImageURL = input.ImageURL
	if input.Cost.IsPositive() {
		if err := product.UpdatePricing(input.Price, input.Cost); err != nil {
			return nil, err
		}
	}
	if input.TrackStock {
		if err := product.EnableStockTracking(input.Stock, input.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("tenant_id", tctx.TenantID.String()),
		zap.String("sku", product.SKU))

	return product, nil
}

// Get returns a product within the acting tenant
func (s *ProductService) Get(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) (*catalog.Product, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionProductView) {
		return nil, shared.ErrForbidden
	}
	return s.productRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
}

// GetBySKU returns a product by SKU within the acting tenant
func (s *ProductService) GetBySKU(ctx context.Context, tctx identity.TenantContext, sku string) (*catalog.Product, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionProductView) {
		return nil, shared.ErrForbidden
	}
	return s.productRepo.FindBySKU(ctx, tctx.TenantID, sku)
}

// List returns products of the acting tenant, paginated
func (s *ProductService) List(ctx context.Context, tctx identity.TenantContext, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionProductView) {
		return nil, shared.ErrForbidden
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tctx.TenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tctx.TenantID, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(products, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update modifies a product. Stock cannot be changed here; Save in the
// repository omits the stock column on updates as well.
func (s *ProductService) Update(ctx context.Context, tctx identity.TenantContext, id uuid.UUID, input UpdateProductInput) (*catalog.Product, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionProductManage) {
		return nil, shared.ErrForbidden
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Barcode != nil {
		product.Barcode = *input.Barcode
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Price != nil || input.Cost != nil {
		price := product.Price
		cost := product.Cost
		if input.Price != nil {
			price = *input.Price
		}
		if input.Cost != nil {
			cost = *input.Cost
		}
		if err := product.UpdatePricing(price, cost); err != nil {
			return nil, err
		}
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.IsActive != nil {
		if *input.IsActive {
			product.IsActive = true
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product from the acting tenant's catalog
func (s *ProductService) Delete(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) error {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionProductManage) {
		return shared.ErrForbidden
	}

	if err := s.productRepo.DeleteForTenant(ctx, tctx.TenantID, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted",
		zap.String("tenant_id", tctx.TenantID.String()),
		zap.String("product_id", id.String()))
	return nil
}

// LowStock returns active tracked products whose stock fell below their
// minimum threshold
func (s *ProductService) LowStock(ctx context.Context, tctx identity.TenantContext, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionProductView) {
		return nil, shared.ErrForbidden
	}

	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["low_stock"] = true
	filter.Filters["is_active"] = true

	return s.List(ctx, tctx, filter)
}
