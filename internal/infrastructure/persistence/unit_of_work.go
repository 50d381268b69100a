package persistence

import (
	"context"

	appsales "github.com/pos/backend/internal/application/sales"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope implements the sales TransactionScope using GORM
// transactions. Stock decrements, the sequence bump and the transaction rows
// all ride the same database transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to repositories sharing one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// TransactionRepo returns the sales transaction repository scoped to the current transaction
func (r *gormTransactionalRepositories) TransactionRepo() sales.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// SequenceRepo returns the numbering sequence repository scoped to the current transaction
func (r *gormTransactionalRepositories) SequenceRepo() sales.SequenceRepository {
	return NewGormSequenceRepository(r.tx)
}

var _ appsales.TransactionScope = (*GormTransactionScope)(nil)
var _ appsales.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
