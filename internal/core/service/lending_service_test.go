package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

type stubLendingRepo struct {
	items  map[string]*domain.LendingLogItem
	nextID int
}

func newStubLendingRepo() *stubLendingRepo {
	return &stubLendingRepo{items: make(map[string]*domain.LendingLogItem)}
}

func (r *stubLendingRepo) Insert(_ context.Context, item *domain.LendingLogItem) (*domain.LendingLogItem, error) {
	r.nextID++
	clone := *item
	clone.ID = fmt.Sprintf("loan-%d", r.nextID)
	r.items[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubLendingRepo) FindOutstanding(_ context.Context, userID, bookID string) (*domain.LendingLogItem, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.BookID == bookID && item.Outstanding() {
			clone := *item
			return &clone, nil
		}
	}
	return nil, domain.ErrLendingNotFound
}

func (r *stubLendingRepo) Close(_ context.Context, id string, endTime time.Time) error {
	item, ok := r.items[id]
	if !ok {
		return domain.ErrLendingNotFound
	}
	item.EndTime = endTime
	return nil
}

func (r *stubLendingRepo) HistoryByUser(_ context.Context, userID string, page, size int) ([]domain.LendingLogItem, int64, error) {
	var matched []domain.LendingLogItem
	for _, item := range r.items {
		if item.UserID == userID {
			matched = append(matched, *item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].StartTime.Before(matched[j].StartTime) })
	total := int64(len(matched))
	start := page * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func newLendingFixture(t *testing.T) (*LendingService, *stubUserRepo, *stubBookRepo) {
	t.Helper()
	users := newStubUserRepo()
	books := newStubBookRepo()
	svc := NewLendingService(newStubLendingRepo(), books, users, nil, zerolog.Nop())
	return svc, users, books
}

func seedReaderAndBook(t *testing.T, users *stubUserRepo, books *stubBookRepo) (string, string) {
	t.Helper()
	reader, err := users.Create(context.Background(), &domain.User{Username: "reader1", Role: domain.RoleReader})
	if err != nil {
		t.Fatalf("seed reader: %v", err)
	}
	book, err := books.Insert(context.Background(), &domain.Book{Title: "Dune", Author: "Herbert"})
	if err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return reader.ID, book.ID
}

func TestLendingService_LendAndReturn(t *testing.T) {
	svc, users, books := newLendingFixture(t)
	readerID, bookID := seedReaderAndBook(t, users, books)

	loan, err := svc.Lend(context.Background(), "librarian1", readerID, bookID)
	if err != nil {
		t.Fatalf("lend failed: %v", err)
	}
	if !loan.Outstanding() {
		t.Fatalf("fresh loan must be outstanding")
	}

	returned, err := svc.Return(context.Background(), "librarian1", readerID, bookID)
	if err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if returned.Outstanding() {
		t.Fatalf("returned loan must carry an end time")
	}
}

func TestLendingService_Lend_UnknownParties(t *testing.T) {
	svc, users, books := newLendingFixture(t)
	readerID, bookID := seedReaderAndBook(t, users, books)

	if _, err := svc.Lend(context.Background(), "librarian1", "ghost", bookID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Lend(context.Background(), "librarian1", readerID, "ghost"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestLendingService_Lend_Duplicate(t *testing.T) {
	svc, users, books := newLendingFixture(t)
	readerID, bookID := seedReaderAndBook(t, users, books)

	if _, err := svc.Lend(context.Background(), "librarian1", readerID, bookID); err != nil {
		t.Fatalf("lend failed: %v", err)
	}
	if _, err := svc.Lend(context.Background(), "librarian1", readerID, bookID); !errors.Is(err, domain.ErrAlreadyLent) {
		t.Fatalf("expected ErrAlreadyLent, got %v", err)
	}

	// Returning frees the pair for a fresh loan.
	if _, err := svc.Return(context.Background(), "librarian1", readerID, bookID); err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if _, err := svc.Lend(context.Background(), "librarian1", readerID, bookID); err != nil {
		t.Fatalf("re-lend after return failed: %v", err)
	}
}

func TestLendingService_Return_NothingOutstanding(t *testing.T) {
	svc, users, books := newLendingFixture(t)
	readerID, bookID := seedReaderAndBook(t, users, books)

	if _, err := svc.Return(context.Background(), "librarian1", readerID, bookID); !errors.Is(err, domain.ErrLendingNotFound) {
		t.Fatalf("expected ErrLendingNotFound, got %v", err)
	}
}

func TestLendingService_History(t *testing.T) {
	svc, users, books := newLendingFixture(t)
	readerID, bookID := seedReaderAndBook(t, users, books)

	otherBook, err := books.Insert(context.Background(), &domain.Book{Title: "Foundation", Author: "Asimov"})
	if err != nil {
		t.Fatalf("seed book: %v", err)
	}

	if _, err := svc.Lend(context.Background(), "librarian1", readerID, bookID); err != nil {
		t.Fatalf("lend failed: %v", err)
	}
	if _, err := svc.Lend(context.Background(), "librarian1", readerID, otherBook.ID); err != nil {
		t.Fatalf("lend failed: %v", err)
	}

	result, err := svc.History(context.Background(), ports.HistoryInput{UserID: readerID})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 history entries, got %d", result.Total)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items in page, got %d", len(result.Items))
	}
	if result.Items[0].StartTime.After(result.Items[1].StartTime) {
		t.Fatalf("history must be ordered by start time")
	}
}
