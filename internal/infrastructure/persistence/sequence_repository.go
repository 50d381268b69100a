package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pos/backend/internal/domain/sales"
)

// GormSequenceRepository allocates per-tenant per-day transaction sequence
// values. The upsert is a single statement so concurrent callers each get a
// distinct value without an advisory lock.
type GormSequenceRepository struct {
	db *gorm.DB
}

func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

func (r *GormSequenceRepository) NextValue(ctx context.Context, tenantID uuid.UUID, date time.Time) (int64, error) {
	var value int64
	day := date.Format("2006-01-02")
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO transaction_sequences (tenant_id, seq_date, value)
		VALUES (?, ?, 1)
		ON CONFLICT (tenant_id, seq_date)
		DO UPDATE SET value = transaction_sequences.value + 1
		RETURNING value`, tenantID, day).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

var _ sales.SequenceRepository = (*GormSequenceRepository)(nil)
