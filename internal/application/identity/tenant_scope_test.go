package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindBySubdomain(ctx context.Context, subdomain string) (*identity.Tenant, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindActive(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error) {
	args := m.Called(ctx, subdomain)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockTenantCache is a mock implementation of TenantCache
type MockTenantCache struct {
	mock.Mock
}

func (m *MockTenantCache) GetBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantCache) Set(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantCache) Invalidate(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func newTestTenant(t *testing.T) *identity.Tenant {
	t.Helper()
	tenant, err := identity.NewTenant("Warung Maju", "warung-maju", "warung-maju", "Warung Maju Jaya")
	require.NoError(t, err)
	return tenant
}

func newTestUser(t *testing.T, tenantID uuid.UUID, role identity.UserRole) *identity.User {
	t.Helper()
	user, err := identity.NewUser(tenantID, "kasir@warung.id", "password123", "Siti", role)
	require.NoError(t, err)
	return user
}

func TestTenantScope_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("binds tenant and actor into context", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		userRepo := new(MockUserRepository)
		scope := NewTenantScope(tenantRepo, userRepo)

		tenant := newTestTenant(t)
		actor := newTestUser(t, tenant.ID, identity.RoleCashier)

		tenantRepo.On("FindBySlug", ctx, "warung-maju").Return(tenant, nil)
		userRepo.On("FindByID", ctx, actor.ID).Return(actor, nil)

		tctx, err := scope.Resolve(ctx, "warung-maju", actor.ID)

		require.NoError(t, err)
		assert.Equal(t, tenant.ID, tctx.TenantID)
		assert.Equal(t, "warung-maju", tctx.TenantSlug)
		assert.Equal(t, actor.ID, tctx.ActorID)
		assert.Equal(t, identity.RoleCashier, tctx.ActorRole)
		tenantRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown slug yields not found", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		userRepo := new(MockUserRepository)
		scope := NewTenantScope(tenantRepo, userRepo)

		tenantRepo.On("FindBySlug", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, err := scope.Resolve(ctx, "ghost", uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("inactive tenant yields not found", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		userRepo := new(MockUserRepository)
		scope := NewTenantScope(tenantRepo, userRepo)

		tenant := newTestTenant(t)
		tenant.Deactivate()
		tenantRepo.On("FindBySlug", ctx, "warung-maju").Return(tenant, nil)

		_, err := scope.Resolve(ctx, "warung-maju", uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("actor from another tenant is forbidden", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		userRepo := new(MockUserRepository)
		scope := NewTenantScope(tenantRepo, userRepo)

		tenant := newTestTenant(t)
		outsider := newTestUser(t, uuid.New(), identity.RoleOwner)

		tenantRepo.On("FindBySlug", ctx, "warung-maju").Return(tenant, nil)
		userRepo.On("FindByID", ctx, outsider.ID).Return(outsider, nil)

		_, err := scope.Resolve(ctx, "warung-maju", outsider.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("inactive actor is forbidden", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		userRepo := new(MockUserRepository)
		scope := NewTenantScope(tenantRepo, userRepo)

		tenant := newTestTenant(t)
		actor := newTestUser(t, tenant.ID, identity.RoleAdmin)
		actor.Deactivate()

		tenantRepo.On("FindBySlug", ctx, "warung-maju").Return(tenant, nil)
		userRepo.On("FindByID", ctx, actor.ID).Return(actor, nil)

		_, err := scope.Resolve(ctx, "warung-maju", actor.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("empty slug is rejected", func(t *testing.T) {
		scope := NewTenantScope(new(MockTenantRepository), new(MockUserRepository))
		_, err := scope.Resolve(ctx, "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		userRepo := new(MockUserRepository)
		cache := new(MockTenantCache)
		scope := NewTenantScope(tenantRepo, userRepo)
		scope.SetCache(cache)

		tenant := newTestTenant(t)
		actor := newTestUser(t, tenant.ID, identity.RoleOwner)

		cache.On("GetBySlug", ctx, "warung-maju").Return(tenant, nil)
		userRepo.On("FindByID", ctx, actor.ID).Return(actor, nil)

		_, err := scope.Resolve(ctx, "warung-maju", actor.ID)

		require.NoError(t, err)
		tenantRepo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
	})

	t.Run("cache failure falls back to repository", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		userRepo := new(MockUserRepository)
		cache := new(MockTenantCache)
		scope := NewTenantScope(tenantRepo, userRepo)
		scope.SetCache(cache)

		tenant := newTestTenant(t)
		actor := newTestUser(t, tenant.ID, identity.RoleOwner)

		cache.On("GetBySlug", ctx, "warung-maju").Return(nil, errors.New("redis down"))
		tenantRepo.On("FindBySlug", ctx, "warung-maju").Return(tenant, nil)
		cache.On("Set", ctx, tenant).Return(nil)
		userRepo.On("FindByID", ctx, actor.ID).Return(actor, nil)

		_, err := scope.Resolve(ctx, "warung-maju", actor.ID)

		require.NoError(t, err)
		tenantRepo.AssertExpectations(t)
	})
}

func TestTenantScope_Authorize(t *testing.T) {
	scope := NewTenantScope(new(MockTenantRepository), new(MockUserRepository))
	tctx := identity.TenantContext{
		TenantID:   uuid.New(),
		TenantSlug: "warung-maju",
		ActorID:    uuid.New(),
		ActorRole:  identity.RoleCashier,
	}

	t.Run("cashier may create transactions", func(t *testing.T) {
		assert.NoError(t, scope.Authorize(tctx, identity.ActionTransactionCreate))
	})

	t.Run("cashier may not cancel transactions", func(t *testing.T) {
		assert.ErrorIs(t, scope.Authorize(tctx, identity.ActionTransactionCancel), shared.ErrForbidden)
	})

	t.Run("owner may do everything", func(t *testing.T) {
		owner := tctx
		owner.ActorRole = identity.RoleOwner
		assert.NoError(t, scope.Authorize(owner, identity.ActionTenantManage))
	})

	t.Run("zero context is unauthorized", func(t *testing.T) {
		assert.ErrorIs(t, scope.Authorize(identity.TenantContext{}, identity.ActionTransactionView), shared.ErrUnauthorized)
	})
}
