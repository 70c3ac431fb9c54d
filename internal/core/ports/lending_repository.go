package ports

import (
	"context"
	"time"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

// LendingRepository is the persistence contract for the lending log.
type LendingRepository interface {
	Insert(ctx context.Context, item *domain.LendingLogItem) (*domain.LendingLogItem, error)
	// FindOutstanding returns the open loan (zero EndTime) for the given
	// reader and book, or domain.ErrLendingNotFound.
	FindOutstanding(ctx context.Context, userID, bookID string) (*domain.LendingLogItem, error)
	// Close sets the end time on an outstanding loan.
	Close(ctx context.Context, id string, endTime time.Time) error
	// HistoryByUser lists a reader's loans ordered by start time, paginated.
	HistoryByUser(ctx context.Context, userID string, page, size int) ([]domain.LendingLogItem, int64, error)
}
