package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

// LendingService implements the lending log use cases: lend, return, history.
type LendingService struct {
	lendings ports.LendingRepository
	books    ports.BookRepository
	users    ports.UserRepository
	audit    ports.AuditSink
	log      zerolog.Logger
	now      func() time.Time
}

func NewLendingService(lendings ports.LendingRepository, books ports.BookRepository, users ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *LendingService {
	return &LendingService{
		lendings: lendings,
		books:    books,
		users:    users,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// Lend records a loan of bookID to the reader userID. Both must exist and the
// pair must not already have an outstanding loan.
func (s *LendingService) Lend(ctx context.Context, actor, userID, bookID string) (*domain.LendingLogItem, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	if _, err := s.lendings.FindOutstanding(ctx, userID, bookID); err == nil {
		return nil, domain.ErrAlreadyLent
	} else if !errors.Is(err, domain.ErrLendingNotFound) {
		return nil, err
	}

	item := &domain.LendingLogItem{
		BookID:    bookID,
		UserID:    userID,
		StartTime: s.now().UTC(),
	}

	created, err := s.lendings.Insert(ctx, item)
	if err != nil {
		s.log.Error().Err(err).Str("book_id", bookID).Str("user_id", userID).Msg("failed to record loan")
		return nil, err
	}

	s.emit(actor, domain.AuditLend, "book "+bookID+" to "+userID)
	s.log.Info().Str("book_id", bookID).Str("user_id", userID).Msg("book lent")
	return created, nil
}

// Return closes the outstanding loan of bookID by userID.
func (s *LendingService) Return(ctx context.Context, actor, userID, bookID string) (*domain.LendingLogItem, error) {
	item, err := s.lendings.FindOutstanding(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	end := s.now().UTC()
	if err := s.lendings.Close(ctx, item.ID, end); err != nil {
		return nil, err
	}
	item.EndTime = end

	s.emit(actor, domain.AuditReturn, "book "+bookID+" from "+userID)
	s.log.Info().Str("book_id", bookID).Str("user_id", userID).Msg("book returned")
	return item, nil
}

// History lists a reader's loans ordered by start time.
func (s *LendingService) History(ctx context.Context, input ports.HistoryInput) (*ports.HistoryResult, error) {
	page, size := normalizePage(input.Page, input.Size)

	items, total, err := s.lendings.HistoryByUser(ctx, input.UserID, page, size)
	if err != nil {
		return nil, err
	}

	return &ports.HistoryResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages(total, size),
	}, nil
}

func (s *LendingService) emit(actor, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		Actor:     actor,
		Action:    action,
		Detail:    detail,
		Timestamp: s.now().UTC(),
	})
}
