package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSequenceRepository_NextValue(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	t.Run("allocates the next value via a single upsert", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSequenceRepository(gormDB)

		mock.ExpectQuery(`(?s)INSERT INTO transaction_sequences.*ON CONFLICT \(tenant_id, seq_date\).*RETURNING value`).
			WithArgs(tenantID, "2026-01-15").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(42))

		value, err := repo.NextValue(context.Background(), tenantID, day)

		require.NoError(t, err)
		assert.Equal(t, int64(42), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("uses the calendar day, not the full timestamp", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSequenceRepository(gormDB)

		latePM := time.Date(2026, 1, 15, 23, 59, 59, 0, time.UTC)
		mock.ExpectQuery(`INSERT INTO transaction_sequences`).
			WithArgs(tenantID, "2026-01-15").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))

		_, err := repo.NextValue(context.Background(), tenantID, latePM)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSequenceRepository(gormDB)

		mock.ExpectQuery(`INSERT INTO transaction_sequences`).
			WillReturnError(assert.AnError)

		_, err := repo.NextValue(context.Background(), tenantID, day)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
