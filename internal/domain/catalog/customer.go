package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// Customer represents an optional buyer reference on a transaction
type Customer struct {
	shared.TenantAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	Phone    string `gorm:"type:varchar(50)"`
	Email    string `gorm:"type:varchar(200)"`
	Address  string `gorm:"type:text"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer for a tenant
func NewCustomer(tenantID uuid.UUID, name string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		IsActive:            true,
	}, nil
}

// UpdateContact updates the customer's contact details
func (c *Customer) UpdateContact(phone, email, address string) {
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.Touch()
	c.IncrementVersion()
}
