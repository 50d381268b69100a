package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pos/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormProductRepository_DecrementStock(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("decrements when enough stock is available", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1 WHERE tenant_id = \$2 AND id = \$3 AND stock >= \$4`).
			WithArgs(3, tenantID, productID, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := repo.DecrementStock(context.Background(), tenantID, productID, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("affects no rows when stock would go negative", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1`).
			WithArgs(10, tenantID, productID, 10).
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.DecrementStock(context.Background(), tenantID, productID, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1`).
			WillReturnError(assert.AnError)

		_, err := repo.DecrementStock(context.Background(), tenantID, productID, 1)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_IncrementStock(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("increments without a stock guard", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE tenant_id = \$2 AND id = \$3`).
			WithArgs(5, tenantID, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := repo.IncrementStock(context.Background(), tenantID, productID, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByIDForTenant(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("maps missing rows to not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		mock.ExpectQuery(`SELECT .* FROM "products" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, productID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForTenant(context.Background(), tenantID, productID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
