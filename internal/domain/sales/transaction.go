package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the status of a sale transaction
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusRefunded  TransactionStatus = "REFUNDED"
)

// IsValid checks if the status is a valid TransactionStatus
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of TransactionStatus
func (s TransactionStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusCompleted || target == StatusCancelled
	case StatusCompleted:
		return target == StatusRefunded
	case StatusCancelled, StatusRefunded:
		return false // Terminal states
	}
	return false
}

// PaymentMethod represents how a transaction was paid
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "CASH"
	PaymentCard          PaymentMethod = "CARD"
	PaymentDigitalWallet PaymentMethod = "DIGITAL_WALLET"
	PaymentBankTransfer  PaymentMethod = "BANK_TRANSFER"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentDigitalWallet, PaymentBankTransfer:
		return true
	}
	return false
}

// TransactionItem represents a line item in a transaction.
// Product name and SKU are snapshotted at sale time so later catalog edits
// never change what was sold. Items are fixed once the transaction is
// created; cancellation only compensates stock.
type TransactionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	ProductSKU    string          `gorm:"type:varchar(100)"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes         string          `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// NewTransactionItem creates a new line item with a product snapshot
func NewTransactionItem(transactionID, productID uuid.UUID, productName, productSKU string, quantity int, unitPrice, discount decimal.Decimal) (*TransactionItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Item discount cannot be negative")
	}

	now := time.Now()
	return &TransactionItem{
		ID:            uuid.New(),
		TransactionID: transactionID,
		ProductID:     productID,
		ProductName:   productName,
		ProductSKU:    productSKU,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalPrice:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Discount:      discount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// GetUnitPriceMoney returns the unit price as Money value object
func (i *TransactionItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(i.UnitPrice)
}

// GetTotalPriceMoney returns the line total as Money value object
func (i *TransactionItem) GetTotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(i.TotalPrice)
}

// Transaction represents a sale aggregate root.
// It is created in PENDING state with all of its items, drives a small
// status lifecycle and is never deleted.
type Transaction struct {
	shared.TenantAggregateRoot
	TransactionNumber string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_transactions_tenant_number,priority:2"`
	UserID            uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerID        *uuid.UUID        `gorm:"type:uuid;index"`
	Items             []TransactionItem `gorm:"foreignKey:TransactionID;references:ID"`
	Subtotal          decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Tax               decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Discount          decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Total             decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	PaidAmount        decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	ChangeAmount      decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod     PaymentMethod     `gorm:"type:varchar(20);not null;default:'CASH'"`
	Status            TransactionStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Notes             string            `gorm:"type:text"`
	CompletedAt       *time.Time
	CancelledAt       *time.Time
	RefundedAt        *time.Time
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a new pending transaction
func NewTransaction(tenantID uuid.UUID, transactionNumber string, userID uuid.UUID, paymentMethod PaymentMethod) (*Transaction, error) {
	if transactionNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Transaction number cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	return &Transaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TransactionNumber:   transactionNumber,
		UserID:              userID,
		Items:               make([]TransactionItem, 0),
		Subtotal:            decimal.Zero,
		Tax:                 decimal.Zero,
		Discount:            decimal.Zero,
		Total:               decimal.Zero,
		PaidAmount:          decimal.Zero,
		ChangeAmount:        decimal.Zero,
		PaymentMethod:       paymentMethod,
		Status:              StatusPending,
	}, nil
}

// AddItem adds a line item while the transaction is still being assembled.
// Items are immutable once the transaction leaves PENDING.
func (t *Transaction) AddItem(productID uuid.UUID, productName, productSKU string, quantity int, unitPrice, discount decimal.Decimal) (*TransactionItem, error) {
	if t.Status != StatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending transaction")
	}

	item, err := NewTransactionItem(t.ID, productID, productName, productSKU, quantity, unitPrice, discount)
	if err != nil {
		return nil, err
	}

	t.Items = append(t.Items, *item)
	t.recalculateTotals()
	t.UpdatedAt = time.Now()

	return item, nil
}

// ApplyCharges sets the header-level tax and discount.
// Item discounts are recorded per line but never subtracted from the
// subtotal; only the header discount reduces the total.
func (t *Transaction) ApplyCharges(tax, discount decimal.Decimal) error {
	if t.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot change charges on a non-pending transaction")
	}
	if tax.IsNegative() {
		return shared.NewDomainError("INVALID_TAX", "Tax cannot be negative")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	t.Tax = tax
	t.Discount = discount
	t.recalculateTotals()
	t.UpdatedAt = time.Now()
	return nil
}

// RecordPayment records the amount tendered and derives the change.
// Change may be negative; sufficiency is not enforced at this layer.
func (t *Transaction) RecordPayment(paidAmount decimal.Decimal) error {
	if t.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot record payment on a non-pending transaction")
	}
	if paidAmount.IsNegative() {
		return shared.NewDomainError("INVALID_PAID_AMOUNT", "Paid amount cannot be negative")
	}

	t.PaidAmount = paidAmount
	t.ChangeAmount = paidAmount.Sub(t.Total)
	t.UpdatedAt = time.Now()
	return nil
}

// ChangePaymentMethod switches the payment method of a pending transaction
func (t *Transaction) ChangePaymentMethod(method PaymentMethod) error {
	if t.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot change payment method on a non-pending transaction")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	t.PaymentMethod = method
	t.UpdatedAt = time.Now()
	return nil
}

// SetCustomer attaches an optional customer reference
func (t *Transaction) SetCustomer(customerID uuid.UUID) error {
	if t.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot change customer on a non-pending transaction")
	}
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	t.CustomerID = &customerID
	t.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the transaction notes
func (t *Transaction) SetNotes(notes string) {
	t.Notes = notes
	t.UpdatedAt = time.Now()
}

// Complete marks the transaction as completed.
// Stock was already committed at creation, so there is no inventory effect.
func (t *Transaction) Complete() error {
	if !t.Status.CanTransitionTo(StatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete transaction in %s status", t.Status))
	}
	if len(t.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot complete transaction without items")
	}

	now := time.Now()
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Cancel marks the transaction as cancelled.
// Stock compensation is coordinated by the application service within the
// same unit of work.
func (t *Transaction) Cancel() error {
	if !t.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel transaction in %s status", t.Status))
	}

	now := time.Now()
	t.Status = StatusCancelled
	t.CancelledAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Refund marks a completed transaction as refunded
func (t *Transaction) Refund() error {
	if !t.Status.CanTransitionTo(StatusRefunded) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot refund transaction in %s status", t.Status))
	}

	now := time.Now()
	t.Status = StatusRefunded
	t.RefundedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// recalculateTotals recomputes subtotal, total and change from the items
// and header charges
func (t *Transaction) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range t.Items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	t.Subtotal = subtotal
	t.Total = subtotal.Add(t.Tax).Sub(t.Discount)
	t.ChangeAmount = t.PaidAmount.Sub(t.Total)
}

// ItemCount returns the number of line items
func (t *Transaction) ItemCount() int {
	return len(t.Items)
}

// TotalQuantity returns the sum of all item quantities
func (t *Transaction) TotalQuantity() int {
	total := 0
	for _, item := range t.Items {
		total += item.Quantity
	}
	return total
}

// GetTotalMoney returns the total as Money value object
func (t *Transaction) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(t.Total)
}

// IsPending returns true if the transaction is pending
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// IsCompleted returns true if the transaction is completed
func (t *Transaction) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsCancelled returns true if the transaction is cancelled
func (t *Transaction) IsCancelled() bool {
	return t.Status == StatusCancelled
}

// IsTerminal returns true if no further transition except refund bookkeeping is possible
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusCancelled || t.Status == StatusRefunded
}

// CanModify returns true if header fields may still change
func (t *Transaction) CanModify() bool {
	return t.Status == StatusPending
}

// GetItemByProduct returns the line item for a product, if present
func (t *Transaction) GetItemByProduct(productID uuid.UUID) *TransactionItem {
	for idx := range t.Items {
		if t.Items[idx].ProductID == productID {
			return &t.Items[idx]
		}
	}
	return nil
}
