package sales

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	appinv "github.com/pos/backend/internal/application/inventory"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// createMaxAttempts bounds the retry loop around transaction number
// collisions. A collision needs two sales in the same tenant racing the
// same sequence value, so a second attempt almost always succeeds.
const createMaxAttempts = 3

// TransactionService coordinates the sale lifecycle: creation with stock
// reservation, the status transitions and the queries. Every write runs in
// a single unit of work, so a failure anywhere rolls everything back,
// including stock already taken for earlier items of the same sale.
type TransactionService struct {
	scope           TransactionScope
	transactionRepo sales.TransactionRepository
	logger          *zap.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(scope TransactionScope, transactionRepo sales.TransactionRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		scope:           scope,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// Create creates a pending sale: mints a transaction number, reserves stock
// for every tracked item in request order and persists the header with its
// items, all in one unit of work.
func (s *TransactionService) Create(ctx context.Context, tctx identity.TenantContext, input CreateTransactionInput) (*sales.Transaction, error) {
	if err := authorize(tctx, identity.ActionTransactionCreate); err != nil {
		return nil, err
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	method := parsePaymentMethod(input.PaymentMethod)

	var created *sales.Transaction
	var lastErr error

	for attempt := 1; attempt <= createMaxAttempts; attempt++ {
		err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			number, err := NewNumberingService(repos.SequenceRepo()).Next(ctx, tctx.TenantID, time.Now())
			if err != nil {
				return err
			}

			transaction, err := sales.NewTransaction(tctx.TenantID, number, tctx.ActorID, method)
			if err != nil {
				return err
			}

			ledger := appinv.NewStockLedger(repos.ProductRepo())
			for _, item := range input.Items {
				product, err := ledger.Reserve(ctx, tctx.TenantID, item.ProductID, item.Quantity)
				if err != nil {
					return err
				}

				line, err := transaction.AddItem(product.ID, product.Name, product.SKU, item.Quantity, item.UnitPrice, item.Discount)
				if err != nil {
					return err
				}
				line.Notes = item.Notes
			}

			if err := transaction.ApplyCharges(input.Tax, input.Discount); err != nil {
				return err
			}
			if input.CustomerID != nil {
				if err := transaction.SetCustomer(*input.CustomerID); err != nil {
					return err
				}
			}
			if input.Notes != "" {
				transaction.SetNotes(input.Notes)
			}
			if err := transaction.RecordPayment(input.PaidAmount); err != nil {
				return err
			}

			if err := repos.TransactionRepo().Save(ctx, transaction); err != nil {
				return err
			}

			created = transaction
			return nil
		})

		if err == nil {
			s.logger.Info("Transaction created",
				zap.String("tenant_id", tctx.TenantID.String()),
				zap.String("transaction_number", created.TransactionNumber),
				zap.Int("items", created.ItemCount()))
			return created, nil
		}

		lastErr = err
		if !errors.Is(err, shared.ErrConflict) {
			return nil, err
		}

		s.logger.Warn("Transaction number collision, retrying",
			zap.String("tenant_id", tctx.TenantID.String()),
			zap.Int("attempt", attempt))
	}

	return nil, lastErr
}

// Update changes header fields of a pending sale. Items never change here;
// a wrong sale gets cancelled and rung up again.
func (s *TransactionService) Update(ctx context.Context, tctx identity.TenantContext, id uuid.UUID, input UpdateTransactionInput) (*sales.Transaction, error) {
	if err := authorize(tctx, identity.ActionTransactionUpdate); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !transaction.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only pending transactions can be updated")
	}

	if input.PaymentMethod != nil {
		if err := transaction.ChangePaymentMethod(parsePaymentMethod(*input.PaymentMethod)); err != nil {
			return nil, err
		}
	}
	if input.Tax != nil || input.Discount != nil {
		tax := transaction.Tax
		discount := transaction.Discount
		if input.Tax != nil {
			tax = *input.Tax
		}
		if input.Discount != nil {
			discount = *input.Discount
		}
		if err := transaction.ApplyCharges(tax, discount); err != nil {
			return nil, err
		}
	}
	if input.CustomerID != nil {
		if err := transaction.SetCustomer(*input.CustomerID); err != nil {
			return nil, err
		}
	}
	if input.Notes != nil {
		transaction.SetNotes(*input.Notes)
	}
	if input.PaidAmount != nil {
		if err := transaction.RecordPayment(*input.PaidAmount); err != nil {
			return nil, err
		}
	} else {
		// Charges may have moved the total; keep change consistent
		if err := transaction.RecordPayment(transaction.PaidAmount); err != nil {
			return nil, err
		}
	}

	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// Complete finalizes a pending sale. Stock was already committed at
// creation, so this is a pure status transition.
func (s *TransactionService) Complete(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) (*sales.Transaction, error) {
	if err := authorize(tctx, identity.ActionTransactionUpdate); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := transaction.Complete(); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction completed",
		zap.String("tenant_id", tctx.TenantID.String()),
		zap.String("transaction_number", transaction.TransactionNumber))

	return transaction, nil
}

// Cancel voids a pending sale and returns reserved stock to the catalog.
// The status change and every stock restitution commit atomically.
func (s *TransactionService) Cancel(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) (*sales.Transaction, error) {
	if err := authorize(tctx, identity.ActionTransactionCancel); err != nil {
		return nil, err
	}

	var cancelled *sales.Transaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		transaction, err := repos.TransactionRepo().FindByIDForTenant(ctx, tctx.TenantID, id)
		if err != nil {
			return err
		}
		if err := transaction.Cancel(); err != nil {
			return err
		}

		ledger := appinv.NewStockLedger(repos.ProductRepo())
		for _, item := range transaction.Items {
			if err := ledger.Release(ctx, tctx.TenantID, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := repos.TransactionRepo().Save(ctx, transaction); err != nil {
			return err
		}

		cancelled = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction cancelled",
		zap.String("tenant_id", tctx.TenantID.String()),
		zap.String("transaction_number", cancelled.TransactionNumber))

	return cancelled, nil
}

// Refund marks a completed sale as refunded. Stock stays where it is; goods
// coming back physically is a separate catalog adjustment.
func (s *TransactionService) Refund(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) (*sales.Transaction, error) {
	if err := authorize(tctx, identity.ActionTransactionCancel); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := transaction.Refund(); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction refunded",
		zap.String("tenant_id", tctx.TenantID.String()),
		zap.String("transaction_number", transaction.TransactionNumber))

	return transaction, nil
}

// GetByID returns a single sale with its items
func (s *TransactionService) GetByID(ctx context.Context, tctx identity.TenantContext, id uuid.UUID) (*sales.Transaction, error) {
	if err := authorize(tctx, identity.ActionTransactionView); err != nil {
		return nil, err
	}
	return s.transactionRepo.FindByIDForTenant(ctx, tctx.TenantID, id)
}

// GetByNumber returns a single sale looked up by its transaction number
func (s *TransactionService) GetByNumber(ctx context.Context, tctx identity.TenantContext, number string) (*sales.Transaction, error) {
	if err := authorize(tctx, identity.ActionTransactionView); err != nil {
		return nil, err
	}
	return s.transactionRepo.FindByNumberForTenant(ctx, tctx.TenantID, number)
}

// List returns a page of sales matching the filter
func (s *TransactionService) List(ctx context.Context, tctx identity.TenantContext, input ListTransactionsInput) (*shared.Paginated[*sales.Transaction], error) {
	if err := authorize(tctx, identity.ActionTransactionView); err != nil {
		return nil, err
	}

	filter := buildTransactionFilter(input)

	transactions, err := s.transactionRepo.FindAllForTenant(ctx, tctx.TenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.transactionRepo.CountForTenant(ctx, tctx.TenantID, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(transactions, total, filter.Page, filter.PageSize)
	return &page, nil
}

// TodaySummary rolls up completed sales for the current day
func (s *TransactionService) TodaySummary(ctx context.Context, tctx identity.TenantContext) (*sales.DaySummary, error) {
	if err := authorize(tctx, identity.ActionReportView); err != nil {
		return nil, err
	}
	return s.transactionRepo.SummarizeDay(ctx, tctx.TenantID, time.Now())
}

func authorize(tctx identity.TenantContext, action identity.Action) error {
	if tctx.IsZero() {
		return shared.ErrUnauthorized
	}
	if !identity.RoleAllowed(tctx.ActorRole, action) {
		return shared.ErrForbidden
	}
	return nil
}

func validateCreateInput(input CreateTransactionInput) error {
	if len(input.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Transaction must have at least one item")
	}
	if !parsePaymentMethod(input.PaymentMethod).IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if input.PaidAmount.IsNegative() {
		return shared.NewDomainError("INVALID_PAID_AMOUNT", "Paid amount cannot be negative")
	}
	if input.Tax.IsNegative() || input.Discount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Tax and discount cannot be negative")
	}

	seen := make(map[uuid.UUID]bool, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_PRODUCT", "Item product ID cannot be empty")
		}
		if item.Quantity < 1 {
			return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
		}
		if item.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Item unit price cannot be negative")
		}
		if item.Discount.IsNegative() {
			return shared.NewDomainError("INVALID_DISCOUNT", "Item discount cannot be negative")
		}
		if seen[item.ProductID] {
			return shared.NewDomainError("DUPLICATE_PRODUCT", "Each product may appear only once per transaction")
		}
		seen[item.ProductID] = true
	}
	return nil
}

func parsePaymentMethod(raw string) sales.PaymentMethod {
	return sales.PaymentMethod(strings.ToUpper(strings.TrimSpace(raw)))
}

func buildTransactionFilter(input ListTransactionsInput) sales.TransactionFilter {
	base := shared.DefaultFilter()
	if input.Page > 0 {
		base.Page = input.Page
	}
	if input.PageSize > 0 && input.PageSize <= 100 {
		base.PageSize = input.PageSize
	}

	filter := sales.TransactionFilter{
		Filter:     base,
		UserID:     input.UserID,
		CustomerID: input.CustomerID,
		DateFrom:   input.DateFrom,
		DateTo:     input.DateTo,
	}
	if input.Status != "" {
		status := sales.TransactionStatus(strings.ToUpper(input.Status))
		filter.Status = &status
	}
	if input.PaymentMethod != "" {
		method := parsePaymentMethod(input.PaymentMethod)
		filter.PaymentMethod = &method
	}
	return filter
}
