package sales

import (
	"context"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories a sale
// touches. Everything done inside Execute commits or rolls back as one unit:
// stock decrements, the sequence bump and the transaction rows.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to
// the current database transaction.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// TransactionRepo returns the sales transaction repository scoped to the current transaction
	TransactionRepo() sales.TransactionRepository
	// SequenceRepo returns the numbering sequence repository scoped to the current transaction
	SequenceRepo() sales.SequenceRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	productRepo     catalog.ProductRepository
	transactionRepo sales.TransactionRepository
	sequenceRepo    sales.SequenceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	transactionRepo sales.TransactionRepository,
	sequenceRepo sales.SequenceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		sequenceRepo:    sequenceRepo,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// TransactionRepo returns the sales transaction repository
func (s *NoOpTransactionScope) TransactionRepo() sales.TransactionRepository {
	return s.transactionRepo
}

// SequenceRepo returns the numbering sequence repository
func (s *NoOpTransactionScope) SequenceRepo() sales.SequenceRepository {
	return s.sequenceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
