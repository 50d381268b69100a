package identity

import "github.com/google/uuid"

// Action names a tenant-scoped operation subject to access control
type Action string

const (
	ActionTransactionCreate Action = "transaction:create"
	ActionTransactionUpdate Action = "transaction:update"
	ActionTransactionCancel Action = "transaction:cancel"
	ActionTransactionView   Action = "transaction:view"
	ActionProductManage     Action = "product:manage"
	ActionProductView       Action = "product:view"
	ActionCustomerManage    Action = "customer:manage"
	ActionReportView        Action = "report:view"
	ActionUserManage        Action = "user:manage"
	ActionTenantManage      Action = "tenant:manage"
)

// rolePermissions maps each role to the actions it may perform.
// Owner is handled separately and is allowed everything.
var rolePermissions = map[UserRole]map[Action]bool{
	RoleAdmin: {
		ActionTransactionCreate: true,
		ActionTransactionUpdate: true,
		ActionTransactionCancel: true,
		ActionTransactionView:   true,
		ActionProductManage:     true,
		ActionProductView:       true,
		ActionCustomerManage:    true,
		ActionReportView:        true,
		ActionUserManage:        true,
	},
	RoleCashier: {
		ActionTransactionCreate: true,
		ActionTransactionView:   true,
		ActionProductView:       true,
		ActionCustomerManage:    true,
	},
	RoleStaff: {
		ActionTransactionView: true,
		ActionProductView:     true,
	},
}

// Allowed reports whether the actor may perform the action within the tenant.
// An actor never crosses tenants regardless of role.
func Allowed(actor *User, tenant *Tenant, action Action) bool {
	if actor == nil || tenant == nil {
		return false
	}
	if !actor.IsActive || !tenant.IsActive {
		return false
	}
	if actor.TenantID != tenant.ID {
		return false
	}
	if actor.Role == RoleOwner {
		return true
	}
	return rolePermissions[actor.Role][action]
}

// RoleAllowed reports whether a role may perform the action. It assumes
// tenant membership and active flags were already verified when the actor
// was resolved into a TenantContext.
func RoleAllowed(role UserRole, action Action) bool {
	if role == RoleOwner {
		return true
	}
	return rolePermissions[role][action]
}

// TenantContext binds a resolved tenant and acting user for the duration of
// one operation. It is an immutable value passed explicitly to every
// tenant-scoped call; no component reads tenant identity from ambient state.
type TenantContext struct {
	TenantID   uuid.UUID
	TenantSlug string
	ActorID    uuid.UUID
	ActorRole  UserRole
}

// IsZero reports whether the context carries no tenant binding
func (c TenantContext) IsZero() bool {
	return c.TenantID == uuid.Nil
}
