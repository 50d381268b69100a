package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
)

// TenantCache caches tenants by slug. A nil tenant with a nil error means
// a cache miss; callers fall back to the repository.
type TenantCache interface {
	GetBySlug(ctx context.Context, slug string) (*identity.Tenant, error)
	Set(ctx context.Context, tenant *identity.Tenant) error
	Invalidate(ctx context.Context, slug string) error
}

// TenantScope resolves a tenant slug and acting user into a TenantContext.
// Every tenant-scoped operation starts here; downstream services only ever
// see the resolved context, never a raw slug.
type TenantScope struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	cache      TenantCache
}

// NewTenantScope creates a new TenantScope
func NewTenantScope(tenantRepo identity.TenantRepository, userRepo identity.UserRepository) *TenantScope {
	return &TenantScope{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
	}
}

// SetCache sets an optional tenant cache
func (s *TenantScope) SetCache(cache TenantCache) {
	s.cache = cache
}

// Resolve binds a tenant slug and actor into a TenantContext.
// An unknown or inactive tenant yields NOT_FOUND; an actor that belongs to
// a different tenant, or is inactive, yields FORBIDDEN. Tenant existence is
// never revealed to actors outside it beyond those two codes.
func (s *TenantScope) Resolve(ctx context.Context, slug string, actorID uuid.UUID) (identity.TenantContext, error) {
	if slug == "" {
		return identity.TenantContext{}, shared.NewDomainError("INVALID_SLUG", "Tenant slug cannot be empty")
	}
	if actorID == uuid.Nil {
		return identity.TenantContext{}, shared.ErrUnauthorized
	}

	tenant, err := s.lookupTenant(ctx, slug)
	if err != nil {
		return identity.TenantContext{}, err
	}
	if tenant == nil || !tenant.IsActive {
		return identity.TenantContext{}, shared.ErrNotFound
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return identity.TenantContext{}, err
	}
	if actor == nil {
		return identity.TenantContext{}, shared.ErrUnauthorized
	}
	if actor.TenantID != tenant.ID || !actor.IsActive {
		return identity.TenantContext{}, shared.ErrForbidden
	}

	return identity.TenantContext{
		TenantID:   tenant.ID,
		TenantSlug: tenant.Slug,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
	}, nil
}

// Authorize checks that the resolved actor may perform the action
func (s *TenantScope) Authorize(tctx identity.TenantContext, action identity.Action) error {
	if tctx.IsZero() {
		return shared.ErrUnauthorized
	}
	if !identity.RoleAllowed(tctx.ActorRole, action) {
		return shared.ErrForbidden
	}
	return nil
}

// lookupTenant checks the cache first and falls back to the repository.
// Cache failures degrade to a repository read; cache writes are best effort.
func (s *TenantScope) lookupTenant(ctx context.Context, slug string) (*identity.Tenant, error) {
	if s.cache != nil {
		if tenant, err := s.cache.GetBySlug(ctx, slug); err == nil && tenant != nil {
			return tenant, nil
		}
	}

	tenant, err := s.tenantRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && tenant != nil {
		_ = s.cache.Set(ctx, tenant)
	}
	return tenant, nil
}
