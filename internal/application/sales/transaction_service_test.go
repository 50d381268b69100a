package sales

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memProductRepo is an in-memory ProductRepository whose stock updates are
// guarded the same way the SQL conditional update is: the check and the
// decrement happen under one lock.
type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepo(products ...*catalog.Product) *memProductRepo {
	repo := &memProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *memProductRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProductRepo) FindBySKU(_ context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.TenantID == tenantID && p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *memProductRepo) CountForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return 0, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) DecrementStock(_ context.Context, tenantID, id uuid.UUID, quantity int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID || p.Stock < quantity {
		return 0, nil
	}
	p.Stock -= quantity
	return 1, nil
}

func (r *memProductRepo) IncrementStock(_ context.Context, tenantID, id uuid.UUID, quantity int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return 0, nil
	}
	p.Stock += quantity
	return 1, nil
}

func (r *memProductRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) stockOf(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

// memTransactionRepo stores transactions in memory and enforces the unique
// (tenant, number) constraint the way the database does. Reads return copies
// so a mutation that never reaches Save stays invisible, like a rolled back
// database transaction.
type memTransactionRepo struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*sales.Transaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{transactions: make(map[uuid.UUID]*sales.Transaction)}
}

func (r *memTransactionRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*sales.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || t.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTransactionRepo) FindByNumberForTenant(_ context.Context, tenantID uuid.UUID, number string) (*sales.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.TenantID == tenantID && t.TransactionNumber == number {
			clone := *t
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTransactionRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ sales.TransactionFilter) ([]*sales.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*sales.Transaction
	for _, t := range r.transactions {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ sales.TransactionFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.transactions {
		if t.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *memTransactionRepo) SummarizeDay(_ context.Context, tenantID uuid.UUID, day time.Time) (*sales.DaySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := &sales.DaySummary{Date: day, TotalRevenue: decimal.Zero}
	for _, t := range r.transactions {
		if t.TenantID == tenantID && t.IsCompleted() {
			summary.TransactionCount++
			summary.TotalRevenue = summary.TotalRevenue.Add(t.Total)
			summary.TotalItemsSold += int64(t.TotalQuantity())
		}
	}
	return summary, nil
}

func (r *memTransactionRepo) Save(_ context.Context, transaction *sales.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.transactions {
		if id != transaction.ID &&
			existing.TenantID == transaction.TenantID &&
			existing.TransactionNumber == transaction.TransactionNumber {
			return shared.ErrConflict
		}
	}
	r.transactions[transaction.ID] = transaction
	return nil
}

// memSequenceRepo hands out strictly increasing per-day values
type memSequenceRepo struct {
	mu     sync.Mutex
	values map[string]int64
}

func newMemSequenceRepo() *memSequenceRepo {
	return &memSequenceRepo{values: make(map[string]int64)}
}

func (r *memSequenceRepo) NextValue(_ context.Context, tenantID uuid.UUID, date time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := tenantID.String() + date.Format("20060102")
	r.values[key]++
	return r.values[key], nil
}

type fixture struct {
	tenantID     uuid.UUID
	tctx         identity.TenantContext
	products     *memProductRepo
	transactions *memTransactionRepo
	sequences    *memSequenceRepo
	service      *TransactionService
}

func newFixture(t *testing.T, products ...*catalog.Product) *fixture {
	t.Helper()
	tenantID := uuid.New()
	for _, p := range products {
		p.TenantID = tenantID
	}

	productRepo := newMemProductRepo(products...)
	transactionRepo := newMemTransactionRepo()
	sequenceRepo := newMemSequenceRepo()
	scope := NewNoOpTransactionScope(productRepo, transactionRepo, sequenceRepo)

	return &fixture{
		tenantID:     tenantID,
		tctx:         identity.TenantContext{TenantID: tenantID, TenantSlug: "warung-maju", ActorID: uuid.New(), ActorRole: identity.RoleOwner},
		products:     productRepo,
		transactions: transactionRepo,
		sequences:    sequenceRepo,
		service:      NewTransactionService(scope, transactionRepo, zap.NewNop()),
	}
}

func trackedProduct(t *testing.T, name, sku string, price int64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), name, sku, decimal.NewFromInt(price))
	require.NoError(t, err)
	require.NoError(t, product.EnableStockTracking(stock, 0))
	return product
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending sale with snapshot and totals", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		roti := trackedProduct(t, "Roti Bakar", "RB-001", 20000, 5)
		f := newFixture(t, kopi, roti)

		trx, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(100000),
			Tax:           decimal.NewFromInt(7000),
			Discount:      decimal.NewFromInt(2000),
			Items: []CreateTransactionItemInput{
				{ProductID: kopi.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(15000)},
				{ProductID: roti.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(20000), Discount: decimal.NewFromInt(1000)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, sales.StatusPending, trx.Status)
		assert.Equal(t, "Kopi Susu", trx.Items[0].ProductName)
		assert.Equal(t, "KS-001", trx.Items[0].ProductSKU)
		// subtotal 2*15000 + 2*20000 = 70000, item discount not subtracted
		assert.True(t, trx.Subtotal.Equal(decimal.NewFromInt(70000)), "subtotal %s", trx.Subtotal)
		assert.True(t, trx.Total.Equal(decimal.NewFromInt(75000)), "total %s", trx.Total)
		assert.True(t, trx.ChangeAmount.Equal(decimal.NewFromInt(25000)))
		assert.Regexp(t, `^TRX-\d{8}-\d{4}$`, trx.TransactionNumber)
		assert.Equal(t, 8, f.products.stockOf(kopi.ID))
		assert.Equal(t, 3, f.products.stockOf(roti.ID))
	})

	t.Run("line items use the price rung up, not the catalog price", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)

		trx, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(20000),
			Items: []CreateTransactionItemInput{
				{ProductID: kopi.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(10000)},
			},
		})

		require.NoError(t, err)
		assert.True(t, trx.Items[0].UnitPrice.Equal(decimal.NewFromInt(10000)))
		assert.True(t, trx.Subtotal.Equal(decimal.NewFromInt(20000)), "subtotal %s", trx.Subtotal)
		assert.True(t, trx.ChangeAmount.IsZero())
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)

		_, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(10000),
			Items: []CreateTransactionItemInput{
				{ProductID: kopi.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
			},
		})

		assert.Error(t, err)
		assert.Equal(t, 10, f.products.stockOf(kopi.ID))
	})

	t.Run("insufficient stock fails the whole sale", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 1)
		f := newFixture(t, kopi)

		_, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(100000),
			Items:         []CreateTransactionItemInput{{ProductID: kopi.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(15000)}},
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		n, _ := f.transactions.CountForTenant(ctx, f.tenantID, sales.TransactionFilter{})
		assert.Zero(t, n)
	})

	t.Run("unknown product yields not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(1000),
			Items:         []CreateTransactionItemInput{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(15000)}},
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("untracked product never runs out", func(t *testing.T) {
		jasa, err := catalog.NewProduct(uuid.New(), "Jasa Antar", "JA-001", decimal.NewFromInt(10000))
		require.NoError(t, err)
		f := newFixture(t, jasa)

		trx, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "digital_wallet",
			PaidAmount:    decimal.NewFromInt(1000000),
			Items:         []CreateTransactionItemInput{{ProductID: jasa.ID, Quantity: 100, UnitPrice: decimal.NewFromInt(10000)}},
		})

		require.NoError(t, err)
		assert.Equal(t, 100, trx.TotalQuantity())
	})

	t.Run("underpayment is recorded with negative change", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)

		trx, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(10000),
			Items:         []CreateTransactionItemInput{{ProductID: kopi.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(15000)}},
		})

		require.NoError(t, err)
		assert.True(t, trx.ChangeAmount.Equal(decimal.NewFromInt(-5000)))
	})

	t.Run("rejects empty items", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{PaymentMethod: "cash"})
		assert.Error(t, err)
	})

	t.Run("rejects duplicate products", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)

		_, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(100000),
			Items: []CreateTransactionItemInput{
				{ProductID: kopi.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(15000)},
				{ProductID: kopi.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(15000)},
			},
		})

		assert.Error(t, err)
	})

	t.Run("staff may not create sales", func(t *testing.T) {
		f := newFixture(t)
		staff := f.tctx
		staff.ActorRole = identity.RoleStaff

		_, err := f.service.Create(ctx, staff, CreateTransactionInput{
			PaymentMethod: "cash",
			Items:         []CreateTransactionItemInput{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(15000)}},
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("sequential sales get distinct increasing numbers", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)

		input := CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(15000),
			Items:         []CreateTransactionItemInput{{ProductID: kopi.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(15000)}},
		}

		first, err := f.service.Create(ctx, f.tctx, input)
		require.NoError(t, err)
		second, err := f.service.Create(ctx, f.tctx, input)
		require.NoError(t, err)

		date := time.Now().Format("20060102")
		assert.Equal(t, fmt.Sprintf("TRX-%s-0001", date), first.TransactionNumber)
		assert.Equal(t, fmt.Sprintf("TRX-%s-0002", date), second.TransactionNumber)
	})
}

func TestTransactionService_ConcurrentCheckout(t *testing.T) {
	ctx := context.Background()
	const stock = 5
	const buyers = 20

	kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, stock)
	f := newFixture(t, kopi)

	input := CreateTransactionInput{
		PaymentMethod: "cash",
		PaidAmount:    decimal.NewFromInt(15000),
		Items:         []CreateTransactionItemInput{{ProductID: kopi.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(15000)}},
	}

	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Create(ctx, f.tctx, input)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, oversold int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, shared.ErrInsufficientStock):
			oversold++
		}
	}

	assert.Equal(t, stock, succeeded, "exactly one sale per unit of stock")
	assert.Equal(t, buyers-stock, oversold)
	assert.Equal(t, 0, f.products.stockOf(kopi.ID))

	// Every persisted sale carries a unique number
	all, err := f.transactions.FindAllForTenant(ctx, f.tenantID, sales.TransactionFilter{})
	require.NoError(t, err)
	numbers := make(map[string]bool)
	for _, trx := range all {
		assert.False(t, numbers[trx.TransactionNumber], "duplicate number %s", trx.TransactionNumber)
		numbers[trx.TransactionNumber] = true
	}
}

func TestTransactionService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	createSale := func(t *testing.T, f *fixture, productID uuid.UUID) *sales.Transaction {
		t.Helper()
		trx, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(30000),
			Items:         []CreateTransactionItemInput{{ProductID: productID, Quantity: 2, UnitPrice: decimal.NewFromInt(15000)}},
		})
		require.NoError(t, err)
		return trx
	}

	t.Run("complete then refund", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx := createSale(t, f, kopi.ID)

		completed, err := f.service.Complete(ctx, f.tctx, trx.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.StatusCompleted, completed.Status)

		refunded, err := f.service.Refund(ctx, f.tctx, trx.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.StatusRefunded, refunded.Status)
		// Refund does not restock
		assert.Equal(t, 8, f.products.stockOf(kopi.ID))
	})

	t.Run("cancel restores stock", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx := createSale(t, f, kopi.ID)
		require.Equal(t, 8, f.products.stockOf(kopi.ID))

		cancelled, err := f.service.Cancel(ctx, f.tctx, trx.ID)

		require.NoError(t, err)
		assert.Equal(t, sales.StatusCancelled, cancelled.Status)
		assert.Equal(t, 10, f.products.stockOf(kopi.ID))
	})

	t.Run("cancel fails whole when a product is gone", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx := createSale(t, f, kopi.ID)
		require.NoError(t, f.products.DeleteForTenant(ctx, f.tenantID, kopi.ID))

		_, err := f.service.Cancel(ctx, f.tctx, trx.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		stored, err := f.transactions.FindByIDForTenant(ctx, f.tenantID, trx.ID)
		require.NoError(t, err)
		assert.Equal(t, sales.StatusPending, stored.Status, "failed cancellation leaves the sale pending")
	})

	t.Run("double cancel fails without touching stock again", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx := createSale(t, f, kopi.ID)

		_, err := f.service.Cancel(ctx, f.tctx, trx.ID)
		require.NoError(t, err)

		_, err = f.service.Cancel(ctx, f.tctx, trx.ID)
		assert.Error(t, err)
		assert.Equal(t, 10, f.products.stockOf(kopi.ID))
	})

	t.Run("cannot complete a cancelled sale", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx := createSale(t, f, kopi.ID)

		_, err := f.service.Cancel(ctx, f.tctx, trx.ID)
		require.NoError(t, err)

		_, err = f.service.Complete(ctx, f.tctx, trx.ID)
		assert.Error(t, err)
	})

	t.Run("cancelling a completed sale fails", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx := createSale(t, f, kopi.ID)

		_, err := f.service.Complete(ctx, f.tctx, trx.ID)
		require.NoError(t, err)

		_, err = f.service.Cancel(ctx, f.tctx, trx.ID)
		assert.Error(t, err)
	})

	t.Run("cashier may not cancel", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx := createSale(t, f, kopi.ID)

		cashier := f.tctx
		cashier.ActorRole = identity.RoleCashier

		_, err := f.service.Cancel(ctx, cashier, trx.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestTransactionService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates header fields of a pending sale", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(50000),
			Items:         []CreateTransactionItemInput{{ProductID: kopi.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(15000)}},
		})
		require.NoError(t, err)

		method := "card"
		discount := decimal.NewFromInt(5000)
		updated, err := f.service.Update(ctx, f.tctx, trx.ID, UpdateTransactionInput{
			PaymentMethod: &method,
			Discount:      &discount,
		})

		require.NoError(t, err)
		assert.Equal(t, sales.PaymentCard, updated.PaymentMethod)
		assert.True(t, updated.Total.Equal(decimal.NewFromInt(25000)))
		// Change recomputed against the new total
		assert.True(t, updated.ChangeAmount.Equal(decimal.NewFromInt(25000)))
	})

	t.Run("rejects update of completed sale", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(30000),
			Items:         []CreateTransactionItemInput{{ProductID: kopi.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(15000)}},
		})
		require.NoError(t, err)
		_, err = f.service.Complete(ctx, f.tctx, trx.ID)
		require.NoError(t, err)

		notes := "late edit"
		_, err = f.service.Update(ctx, f.tctx, trx.ID, UpdateTransactionInput{Notes: &notes})
		assert.Error(t, err)
	})
}

func TestTransactionService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id and number", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(15000),
			Items:         []CreateTransactionItemInput{{ProductID: kopi.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(15000)}},
		})
		require.NoError(t, err)

		byID, err := f.service.GetByID(ctx, f.tctx, trx.ID)
		require.NoError(t, err)
		assert.Equal(t, trx.ID, byID.ID)

		byNumber, err := f.service.GetByNumber(ctx, f.tctx, trx.TransactionNumber)
		require.NoError(t, err)
		assert.Equal(t, trx.ID, byNumber.ID)
	})

	t.Run("sales of another tenant are invisible", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)
		trx, err := f.service.Create(ctx, f.tctx, CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(15000),
			Items:         []CreateTransactionItemInput{{ProductID: kopi.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(15000)}},
		})
		require.NoError(t, err)

		other := identity.TenantContext{TenantID: uuid.New(), TenantSlug: "other", ActorID: uuid.New(), ActorRole: identity.RoleOwner}
		_, err = f.service.GetByID(ctx, other, trx.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("today summary counts only completed sales", func(t *testing.T) {
		kopi := trackedProduct(t, "Kopi Susu", "KS-001", 15000, 10)
		f := newFixture(t, kopi)

		input := CreateTransactionInput{
			PaymentMethod: "cash",
			PaidAmount:    decimal.NewFromInt(30000),
			Items:         []CreateTransactionItemInput{{ProductID: kopi.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(15000)}},
		}
		first, err := f.service.Create(ctx, f.tctx, input)
		require.NoError(t, err)
		_, err = f.service.Complete(ctx, f.tctx, first.ID)
		require.NoError(t, err)

		// A second sale stays pending
		_, err = f.service.Create(ctx, f.tctx, input)
		require.NoError(t, err)

		summary, err := f.service.TodaySummary(ctx, f.tctx)

		require.NoError(t, err)
		assert.Equal(t, int64(1), summary.TransactionCount)
		assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(30000)))
		assert.Equal(t, int64(2), summary.TotalItemsSold)
	})
}

func TestNumberingService(t *testing.T) {
	ctx := context.Background()
	sequences := newMemSequenceRepo()
	numbering := NewNumberingService(sequences)
	tenantID := uuid.New()
	date := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	t.Run("formats tenant day sequence", func(t *testing.T) {
		number, err := numbering.Next(ctx, tenantID, date)
		require.NoError(t, err)
		assert.Equal(t, "TRX-20260115-0001", number)
	})

	t.Run("per tenant sequences are independent", func(t *testing.T) {
		other, err := numbering.Next(ctx, uuid.New(), date)
		require.NoError(t, err)
		assert.Equal(t, "TRX-20260115-0001", other)
	})

	t.Run("per day sequences are independent", func(t *testing.T) {
		nextDay, err := numbering.Next(ctx, tenantID, date.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, "TRX-20260116-0001", nextDay)
	})

	t.Run("counter widens past 9999", func(t *testing.T) {
		big := uuid.New()
		var number string
		var err error
		for i := 0; i < 10000; i++ {
			number, err = numbering.Next(ctx, big, date)
			require.NoError(t, err)
		}
		assert.Equal(t, "TRX-20260115-10000", number)
	})
}
