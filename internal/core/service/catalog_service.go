package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CatalogService implements book catalog maintenance and search.
type CatalogService struct {
	books ports.BookRepository
	log   zerolog.Logger
}

func NewCatalogService(books ports.BookRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{books: books, log: log}
}

func (s *CatalogService) AddBook(ctx context.Context, input ports.AddBookInput) (*domain.Book, error) {
	book := &domain.Book{
		Title:      input.Title,
		Author:     input.Author,
		ISBN:       input.ISBN,
		Categories: input.Categories,
	}

	created, err := s.books.Insert(ctx, book)
	if err != nil {
		s.log.Error().Err(err).Str("title", input.Title).Msg("failed to add book")
		return nil, err
	}

	s.log.Info().Str("book_id", created.ID).Str("title", created.Title).Msg("book added")
	return created, nil
}

func (s *CatalogService) EditBook(ctx context.Context, input ports.EditBookInput) (*domain.Book, error) {
	book, err := s.books.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Author = input.Author
	book.ISBN = input.ISBN
	book.Categories = input.Categories

	if err := s.books.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, id string) error {
	if _, err := s.books.FindByID(ctx, id); err != nil {
		return err
	}
	return s.books.Delete(ctx, id)
}

func (s *CatalogService) SearchBooks(ctx context.Context, input ports.SearchBooksInput) (*ports.SearchBooksResult, error) {
	switch input.Cond {
	case domain.SearchByTitle, domain.SearchByAuthor, domain.SearchByCategories:
	default:
		return nil, domain.ErrInvalidSearchCond
	}

	page, size := normalizePage(input.Page, input.Size)

	items, total, err := s.books.Search(ctx, input.Cond, input.Param, page, size)
	if err != nil {
		return nil, err
	}

	return &ports.SearchBooksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages(total, size),
	}, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func totalPages(total int64, size int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
