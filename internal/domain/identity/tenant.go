package identity

import (
	"regexp"
	"strings"

	"github.com/pos/backend/internal/domain/shared"
)

// Tenant represents an isolated merchant account in the multi-tenant system
// It is the aggregate root for tenant-related operations and the unit of
// data partitioning: every other entity carries its TenantID.
type Tenant struct {
	shared.BaseAggregateRoot
	Name            string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Slug            string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Subdomain       string `gorm:"type:varchar(100);not null;uniqueIndex"`
	BusinessName    string `gorm:"type:varchar(200);not null"`
	BusinessType    string `gorm:"type:varchar(100)"`
	BusinessAddress string `gorm:"type:text"`
	BusinessPhone   string `gorm:"type:varchar(50)"`
	BusinessEmail   string `gorm:"type:varchar(200)"`
	IsActive        bool   `gorm:"not null;default:true"`
	Settings        string `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NewTenant creates a new active tenant with required fields
func NewTenant(name, slug, subdomain, businessName string) (*Tenant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateSlug(subdomain); err != nil {
		return nil, err
	}
	if strings.TrimSpace(businessName) == "" {
		return nil, shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Subdomain:         subdomain,
		BusinessName:      businessName,
		IsActive:          true,
		Settings:          "{}",
	}, nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug cannot exceed 100 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug must contain only lowercase letters, digits and hyphens")
	}
	return nil
}

// Deactivate marks the tenant as inactive
// All tenant-scoped operations fail with NotFound afterwards
func (t *Tenant) Deactivate() {
	t.IsActive = false
	t.Touch()
	t.IncrementVersion()
}

// Activate re-enables a deactivated tenant
func (t *Tenant) Activate() {
	t.IsActive = true
	t.Touch()
	t.IncrementVersion()
}

// UpdateBusinessInfo updates the business contact details
func (t *Tenant) UpdateBusinessInfo(businessType, address, phone, email string) {
	t.BusinessType = businessType
	t.BusinessAddress = address
	t.BusinessPhone = phone
	t.BusinessEmail = email
	t.Touch()
	t.IncrementVersion()
}
