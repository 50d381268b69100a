package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionFilter carries list filters on top of shared paging
type TransactionFilter struct {
	shared.Filter
	Status        *TransactionStatus
	PaymentMethod *PaymentMethod
	UserID        *uuid.UUID
	CustomerID    *uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
}

// DaySummary aggregates completed sales for a single day
type DaySummary struct {
	Date             time.Time
	TransactionCount int64
	TotalRevenue     decimal.Decimal
	TotalItemsSold   int64
}

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Transaction, error)
	FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*Transaction, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) ([]*Transaction, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) (int64, error)
	SummarizeDay(ctx context.Context, tenantID uuid.UUID, day time.Time) (*DaySummary, error)
	Save(ctx context.Context, transaction *Transaction) error
}

// SequenceRepository hands out per-tenant per-day sequence values.
// NextValue must be safe under concurrent callers: two transactions created
// at the same instant must receive distinct values.
type SequenceRepository interface {
	NextValue(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error)
}
