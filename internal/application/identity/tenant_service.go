package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
)

// TenantService handles tenant registration and administration
type TenantService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	cache      TenantCache
	logger     *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	cache TenantCache,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		cache:      cache,
		logger:     logger,
	}
}

// Register creates a new tenant together with its owner account
func (s *TenantService) Register(ctx context.Context, input CreateTenantInput) (*identity.Tenant, error) {
	taken, err := s.tenantRepo.ExistsBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.ErrAlreadyExists
	}

	taken, err = s.tenantRepo.ExistsBySubdomain(ctx, input.Subdomain)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.ErrAlreadyExists
	}

	tenant, err := identity.NewTenant(input.Name, input.Slug, input.Subdomain, input.BusinessName)
	if err != nil {
		return nil, err
	}

	owner, err := identity.NewUser(tenant.ID, input.OwnerEmail, input.OwnerPass, input.OwnerName, identity.RoleOwner)
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, owner); err != nil {
		// Leave no tenant without an owner account
		tenant.Deactivate()
		if derr := s.tenantRepo.Save(ctx, tenant); derr != nil {
			s.logger.Error("Failed to deactivate tenant after owner creation failure",
				zap.String("slug", tenant.Slug), zap.Error(derr))
		}
		return nil, err
	}

	s.logger.Info("Tenant registered",
		zap.String("slug", tenant.Slug),
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("owner_email", owner.Email))

	return tenant, nil
}

// GetBySlug returns an active tenant by slug
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, shared.ErrNotFound
	}
	return tenant, nil
}

// UpdateBusinessInfo updates a tenant's business profile. Requires
// tenant:manage on the same tenant.
func (s *TenantService) UpdateBusinessInfo(ctx context.Context, tctx identity.TenantContext, businessType, address, phone, email string) (*identity.Tenant, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionTenantManage) {
		return nil, shared.ErrForbidden
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tctx.TenantID)
	if err != nil {
		return nil, err
	}

	tenant.UpdateBusinessInfo(businessType, address, phone, email)
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.invalidate(ctx, tenant.Slug)
	return tenant, nil
}

// Deactivate disables a tenant. All logins and scope resolutions fail
// from the next cache miss onward, so the cached entry is dropped here.
func (s *TenantService) Deactivate(ctx context.Context, tctx identity.TenantContext) error {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionTenantManage) {
		return shared.ErrForbidden
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tctx.TenantID)
	if err != nil {
		return err
	}

	tenant.Deactivate()
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return err
	}

	s.invalidate(ctx, tenant.Slug)
	s.logger.Info("Tenant deactivated", zap.String("slug", tenant.Slug))
	return nil
}

func (s *TenantService) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn("Failed to invalidate tenant cache", zap.String("slug", slug), zap.Error(err))
	}
}
