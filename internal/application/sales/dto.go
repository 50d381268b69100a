package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionItemInput is one requested line of a new sale.
// The unit price is the price rung up at the till, which may differ from the
// current catalog price; the line snapshots whatever the cashier charged.
type CreateTransactionItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Notes     string          `json:"notes"`
}

// CreateTransactionInput carries everything needed to create a sale
type CreateTransactionInput struct {
	CustomerID    *uuid.UUID                   `json:"customer_id"`
	PaymentMethod string                       `json:"payment_method" binding:"required"`
	PaidAmount    decimal.Decimal              `json:"paid_amount"`
	Tax           decimal.Decimal              `json:"tax"`
	Discount      decimal.Decimal              `json:"discount"`
	Notes         string                       `json:"notes"`
	Items         []CreateTransactionItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateTransactionInput carries the header fields that may change while a
// sale is still pending. Nil pointers leave the field untouched; items are
// fixed at creation and cannot be updated.
type UpdateTransactionInput struct {
	CustomerID    *uuid.UUID       `json:"customer_id"`
	PaymentMethod *string          `json:"payment_method"`
	PaidAmount    *decimal.Decimal `json:"paid_amount"`
	Tax           *decimal.Decimal `json:"tax"`
	Discount      *decimal.Decimal `json:"discount"`
	Notes         *string          `json:"notes"`
}

// ListTransactionsInput carries list filters
type ListTransactionsInput struct {
	Page          int
	PageSize      int
	Status        string
	PaymentMethod string
	UserID        *uuid.UUID
	CustomerID    *uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
}
