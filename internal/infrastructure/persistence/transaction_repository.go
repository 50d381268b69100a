package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByIDForTenant finds a transaction with its items within a tenant
func (r *GormTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Transaction, error) {
	var transaction sales.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindByNumberForTenant finds a transaction by its number within a tenant
func (r *GormTransactionRepository) FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*sales.Transaction, error) {
	var transaction sales.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND transaction_number = ?", tenantID, number).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindAllForTenant finds all transactions for a tenant matching the filter
func (r *GormTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter sales.TransactionFilter) ([]*sales.Transaction, error) {
	var transactions []*sales.Transaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.Transaction{}).Preload("Items").Where("tenant_id = ?", tenantID),
		filter,
		true,
	)

	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// CountForTenant counts transactions for a tenant matching the filter
func (r *GormTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter sales.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.Transaction{}).Where("tenant_id = ?", tenantID),
		filter,
		false,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SummarizeDay rolls up completed transactions for one calendar day
func (r *GormTransactionRepository) SummarizeDay(ctx context.Context, tenantID uuid.UUID, day time.Time) (*sales.DaySummary, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var row struct {
		TransactionCount int64
		TotalRevenue     decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&sales.Transaction{}).
		Select("COUNT(*) AS transaction_count, COALESCE(SUM(total), 0) AS total_revenue").
		Where("tenant_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			tenantID, sales.StatusCompleted, dayStart, dayEnd).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	var itemsSold int64
	err = r.db.WithContext(ctx).Model(&sales.TransactionItem{}).
		Select("COALESCE(SUM(transaction_items.quantity), 0)").
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transactions.tenant_id = ? AND transactions.status = ? AND transactions.created_at >= ? AND transactions.created_at < ?",
			tenantID, sales.StatusCompleted, dayStart, dayEnd).
		Scan(&itemsSold).Error
	if err != nil {
		return nil, err
	}

	return &sales.DaySummary{
		Date:             dayStart,
		TransactionCount: row.TransactionCount,
		TotalRevenue:     row.TotalRevenue,
		TotalItemsSold:   itemsSold,
	}, nil
}

// Save persists the transaction header and its items.
// A unique-constraint violation on (tenant_id, transaction_number) surfaces
// as a conflict so the caller can mint a fresh number and retry.
func (r *GormTransactionRepository) Save(ctx context.Context, transaction *sales.Transaction) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(transaction).Error; err != nil {
			return err
		}
		for i := range transaction.Items {
			if err := tx.Save(&transaction.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// applyFilter applies the transaction filter, optionally with pagination
func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter sales.TransactionFilter, paginate bool) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *filter.PaymentMethod)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		query = query.Where("transaction_number ILIKE ?", "%"+filter.Search+"%")
	}

	if !paginate {
		return query
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	dir := "desc"
	if filter.OrderDir == "asc" {
		dir = "asc"
	}
	query = query.Order(orderBy + " " + dir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
