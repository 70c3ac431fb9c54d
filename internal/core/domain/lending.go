package domain

import (
	"errors"
	"time"
)

// LendingLogItem records one loan of one book to one reader. EndTime stays
// zero while the loan is outstanding and is set when the book is returned.
type LendingLogItem struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`
}

// Outstanding reports whether the book has not been returned yet.
func (l *LendingLogItem) Outstanding() bool {
	return l.EndTime.IsZero()
}

var ErrLendingNotFound = errors.New("lending record not found")
var ErrAlreadyLent = errors.New("book already lent to this reader")
