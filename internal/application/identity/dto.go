package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains credentials for authentication
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserInfo is the user payload returned alongside tokens
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

// LoginResult contains tokens and user info after successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	TenantSlug            string    `json:"tenant_slug"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResult contains the renewed token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// CreateTenantInput contains data for registering a new tenant
type CreateTenantInput struct {
	Name         string `json:"name" binding:"required,max=200"`
	Slug         string `json:"slug" binding:"required,max=100,slug"`
	Subdomain    string `json:"subdomain" binding:"required,max=100"`
	BusinessName string `json:"business_name" binding:"required,max=200"`
	OwnerEmail   string `json:"owner_email" binding:"required,email"`
	OwnerName    string `json:"owner_name" binding:"required,max=100"`
	OwnerPass    string `json:"owner_password" binding:"required,min=8"`
}

// CreateUserInput contains data for adding a user to a tenant
type CreateUserInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Phone     string `json:"phone" binding:"max=50"`
	Role      string `json:"role" binding:"required,oneof=owner admin cashier staff"`
}

// UpdateUserInput contains optional fields for updating a user
type UpdateUserInput struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Role      *string `json:"role" binding:"omitempty,oneof=owner admin cashier staff"`
	IsActive  *bool   `json:"is_active"`
}
