package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
)

// UserService handles user administration within a tenant
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Create adds a user to the acting tenant. Requires user:manage.
func (s *UserService) Create(ctx context.Context, tctx identity.TenantContext, input CreateUserInput) (*identity.User, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionUserManage) {
		return nil, shared.ErrForbidden
	}

	role := identity.UserRole(input.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}

	user, err := identity.NewUser(tctx.TenantID, input.Email, input.Password, input.FirstName, role)
	if err != nil {
		return nil, err
	}
	user.LastName = input.LastName
	user.Phone = input.Phone

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("tenant_id", tctx.TenantID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	return user, nil
}

// Get returns a user within the acting tenant
func (s *UserService) Get(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) (*identity.User, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionUserManage) {
		return nil, shared.ErrForbidden
	}
	return s.userRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
}

// List returns users of the acting tenant, paginated
func (s *UserService) List(ctx context.Context, tctx identity.TenantContext, filter shared.Filter) (*shared.Paginated[identity.User], error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionUserManage) {
		return nil, shared.ErrForbidden
	}

	users, err := s.userRepo.FindAllForTenant(ctx, tctx.TenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.CountForTenant(ctx, tctx.TenantID, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(users, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update modifies a user within the acting tenant. A user cannot change
// their own role or deactivate themselves.
func (s *UserService) Update(ctx context.Context, tctx identity.TenantContext, id uuid.UUID, input UpdateUserInput) (*identity.User, error) {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionUserManage) {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
	if err != nil {
		return nil, err
	}

	selfEdit := user.ID == tctx.ActorID
	if selfEdit && (input.Role != nil || (input.IsActive != nil && !*input.IsActive)) {
		return nil, shared.NewDomainError("SELF_EDIT_FORBIDDEN", "Cannot change own role or deactivate own account")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		role := identity.UserRole(*input.Role)
		if !role.IsValid() {
			return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
		}
		user.Role = role
	}
	if input.IsActive != nil {
		if *input.IsActive {
			user.IsActive = true
		} else {
			user.Deactivate()
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user from the acting tenant
func (s *UserService) Delete(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) error {
	if !identity.RoleAllowed(tctx.ActorRole, identity.ActionUserManage) {
		return shared.ErrForbidden
	}
	if id == tctx.ActorID {
		return shared.NewDomainError("SELF_EDIT_FORBIDDEN", "Cannot delete own account")
	}

	if err := s.userRepo.DeleteForTenant(ctx, tctx.TenantID, id); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.String("tenant_id", tctx.TenantID.String()),
		zap.String("user_id", id.String()))
	return nil
}
