package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/auth"
	"github.com/pos/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "unit-test-secret-at-least-32-chars!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "pos-backend",
		MaxRefreshCount:        10,
	})
}

func authFixture(t *testing.T) (*AuthService, *MockUserRepository, *MockTenantRepository, *identity.Tenant, *identity.User) {
	t.Helper()

	tenant, err := identity.NewTenant("Kopi Kita", "kopi-kita", "kopikita", "Kopi Kita Sdn")
	require.NoError(t, err)

	user, err := identity.NewUser(tenant.ID, "owner@kopikita.id", "s3cret-pass", "Ayu", identity.RoleOwner)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	svc := NewAuthService(userRepo, tenantRepo, newTestJWTService(), zap.NewNop())
	return svc, userRepo, tenantRepo, tenant, user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		svc, userRepo, tenantRepo, tenant, user := authFixture(t)

		userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, tenant.Slug, result.TenantSlug)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "owner", result.User.Role)
		assert.NotNil(t, user.LastLoginAt)
		userRepo.AssertExpectations(t)
	})

	t.Run("access token carries tenant and user claims", func(t *testing.T) {
		svc, userRepo, tenantRepo, tenant, user := authFixture(t)
		jwtSvc := newTestJWTService()

		userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "s3cret-pass"})
		require.NoError(t, err)

		claims, err := jwtSvc.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, tenant.ID.String(), claims.TenantID)
		assert.Equal(t, tenant.Slug, claims.TenantSlug)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, "owner", claims.Role)
	})

	t.Run("rejects unknown email with generic error", func(t *testing.T) {
		svc, userRepo, _, _, _ := authFixture(t)

		userRepo.On("FindByEmail", mock.Anything, "ghost@kopikita.id").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "ghost@kopikita.id", Password: "whatever"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects wrong password with the same generic error", func(t *testing.T) {
		svc, userRepo, _, _, user := authFixture(t)

		userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "wrong"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		svc, userRepo, _, _, user := authFixture(t)
		user.Deactivate()

		userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "s3cret-pass"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})

	t.Run("rejects login when tenant is deactivated", func(t *testing.T) {
		svc, userRepo, tenantRepo, tenant, user := authFixture(t)
		tenant.Deactivate()

		userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

		_, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "s3cret-pass"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TENANT_INACTIVE", domainErr.Code)
	})

	t.Run("login succeeds even if recording last login fails", func(t *testing.T) {
		svc, userRepo, tenantRepo, tenant, user := authFixture(t)

		userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		userRepo.On("Save", mock.Anything, user).Return(assert.AnError)

		result, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, svc *AuthService, userRepo *MockUserRepository, tenantRepo *MockTenantRepository, tenant *identity.Tenant, user *identity.User) *LoginResult {
		t.Helper()
		userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)
		result, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "s3cret-pass"})
		require.NoError(t, err)
		return result
	}

	t.Run("exchanges a valid refresh token for a new pair", func(t *testing.T) {
		svc, userRepo, tenantRepo, tenant, user := authFixture(t)
		loginResult := login(t, svc, userRepo, tenantRepo, tenant, user)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		result, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: loginResult.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
	})

	t.Run("rejects garbage refresh token", func(t *testing.T) {
		svc, _, _, _, _ := authFixture(t)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not-a-jwt"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("rejects refresh for a deactivated user", func(t *testing.T) {
		svc, userRepo, tenantRepo, tenant, user := authFixture(t)
		loginResult := login(t, svc, userRepo, tenantRepo, tenant, user)

		user.Deactivate()
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: loginResult.RefreshToken})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}
