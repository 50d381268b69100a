package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
)

// CustomerService handles customer directory operations
type CustomerService struct {
	customerRepo catalog.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo catalog.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, logger: logger}
}

// Create adds a customer to the acting tenant
func (s *CustomerService) Create(ctx context.Context, tctx identity.TenantContext, input CreateCustomerInput) (*catalog.Customer, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionCustomerManage) {
		return nil, shared.ErrForbidden
	}

	customer, err := catalog.NewCustomer(tctx.TenantID, input.Name)
	if err != nil {
		return nil, err
	}
	customer.UpdateContact(input.Phone, input.Email, input.Address)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("tenant_id", tctx.TenantID.String()),
		zap.String("customer_id", customer.ID.String()))

	return customer, nil
}

// Get returns a customer within the acting tenant
func (s *CustomerService) Get(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) (*catalog.Customer, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionCustomerManage) {
		return nil, shared.ErrForbidden
	}
	return s.customerRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
}

// List returns customers of the acting tenant, paginated
func (s *CustomerService) List(ctx context.Context, tctx identity.TenantContext, filter shared.Filter) (*shared.Paginated[catalog.Customer], error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionCustomerManage) {
		return nil, shared.ErrForbidden
	}

	customers, err := s.customerRepo.FindAllForTenant(ctx, tctx.TenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.CountForTenant(ctx, tctx.TenantID, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(customers, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update modifies a customer within the acting tenant
func (s *CustomerService) Update(ctx context.Context, tctx identity.TenantContext, id uuid.UUID, input UpdateCustomerInput) (*catalog.Customer, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionCustomerManage) {
		return nil, shared.ErrForbidden
	}

	customer, err := s.customerRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	phone, email, address := customer.Phone, customer.Email, customer.Address
	if input.Phone != nil {
		phone = *input.Phone
	}
	if input.Email != nil {
		email = *input.Email
	}
	if input.Address != nil {
		address = *input.Address
	}
	customer.UpdateContact(phone, email, address)
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer from the acting tenant
func (s *CustomerService) Delete(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) error {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionCustomerManage) {
		return shared.ErrForbidden
	}

	if err := s.customerRepo.DeleteForTenant(ctx, tctx.TenantID, id); err != nil {
		return err
	}

	s.logger.Info("Customer deleted",
		zap.String("tenant_id", tctx.TenantID.String()),
		zap.String("customer_id", id.String()))
	return nil
}
