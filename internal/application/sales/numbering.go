package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
)

// transactionNumberPrefix is the fixed prefix of every transaction number
const transactionNumberPrefix = "TRX"

// NumberingService mints transaction numbers of the form TRX-YYYYMMDD-NNNN,
// one sequence per tenant per day. Numbers come from a database sequence row
// bumped atomically, never from counting existing transactions, so two sales
// hitting the same instant always get distinct numbers.
type NumberingService struct {
	sequences sales.SequenceRepository
}

// NewNumberingService creates a new NumberingService
func NewNumberingService(sequences sales.SequenceRepository) *NumberingService {
	return &NumberingService{sequences: sequences}
}

// Next mints the next transaction number for the tenant on the given date.
// The counter pads to four digits and widens naturally beyond 9999.
func (s *NumberingService) Next(ctx context.Context, tenantID uuid.UUID, date time.Time) (string, error) {
	value, err := s.sequences.NextValue(ctx, tenantID, date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", transactionNumberPrefix, date.Format("20060102"), value), nil
}
