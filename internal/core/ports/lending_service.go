package ports

import (
	"context"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

// HistoryInput carries the parameters for a lending history query.
type HistoryInput struct {
	UserID string
	Page   int
	Size   int
}

// HistoryResult is returned by History.
type HistoryResult struct {
	Items      []domain.LendingLogItem
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// LendingService defines use-case operations for the lending log.
type LendingService interface {
	// Lend records a loan of bookID to the reader userID, performed by actor.
	Lend(ctx context.Context, actor, userID, bookID string) (*domain.LendingLogItem, error)
	// Return closes the outstanding loan of bookID by userID.
	Return(ctx context.Context, actor, userID, bookID string) (*domain.LendingLogItem, error)
	// History lists a reader's loans ordered by start time.
	History(ctx context.Context, input HistoryInput) (*HistoryResult, error)
}
