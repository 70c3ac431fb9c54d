package ports

import (
	"context"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

// AddBookInput carries the data needed to create a catalog entry.
type AddBookInput struct {
	Title      string
	Author     string
	ISBN       string
	Categories []string
}

// EditBookInput carries a full replacement of a catalog entry's fields.
type EditBookInput struct {
	ID         string
	Title      string
	Author     string
	ISBN       string
	Categories []string
}

// SearchBooksInput carries the catalog search parameters.
type SearchBooksInput struct {
	Cond  string // title | author | categories
	Param string
	Page  int
	Size  int
}

// SearchBooksResult is returned by SearchBooks.
type SearchBooksResult struct {
	Items      []domain.Book
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// CatalogService defines use-case operations for the book catalog.
type CatalogService interface {
	AddBook(ctx context.Context, input AddBookInput) (*domain.Book, error)
	EditBook(ctx context.Context, input EditBookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id string) error
	SearchBooks(ctx context.Context, input SearchBooksInput) (*SearchBooksResult, error)
}
