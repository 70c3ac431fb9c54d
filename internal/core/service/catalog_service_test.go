package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

type stubBookRepo struct {
	books  map[string]*domain.Book
	nextID int
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[string]*domain.Book)}
}

func (r *stubBookRepo) Insert(_ context.Context, book *domain.Book) (*domain.Book, error) {
	r.nextID++
	clone := *book
	clone.ID = fmt.Sprintf("book-%d", r.nextID)
	r.books[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubBookRepo) Update(_ context.Context, book *domain.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return domain.ErrBookNotFound
	}
	clone := *book
	r.books[book.ID] = &clone
	return nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *book
	return &clone, nil
}

func (r *stubBookRepo) Search(_ context.Context, cond, param string, page, size int) ([]domain.Book, int64, error) {
	var matched []domain.Book
	for _, b := range r.books {
		var field string
		switch cond {
		case domain.SearchByTitle:
			field = b.Title
		case domain.SearchByAuthor:
			field = b.Author
		case domain.SearchByCategories:
			field = strings.Join(b.Categories, " ")
		}
		if strings.Contains(field, param) {
			matched = append(matched, *b)
		}
	}
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

func TestCatalogService_AddAndEdit(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewCatalogService(repo, zerolog.Nop())

	book, err := svc.AddBook(context.Background(), ports.AddBookInput{
		Title:      "The Go Programming Language",
		Author:     "Donovan",
		Categories: []string{"programming"},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if book.ID == "" {
		t.Fatalf("expected an id on the created book")
	}

	edited, err := svc.EditBook(context.Background(), ports.EditBookInput{
		ID:         book.ID,
		Title:      "The Go Programming Language",
		Author:     "Donovan, Kernighan",
		Categories: []string{"programming", "go"},
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if edited.Author != "Donovan, Kernighan" {
		t.Fatalf("edit not applied: %+v", edited)
	}
}

func TestCatalogService_EditMissing(t *testing.T) {
	svc := NewCatalogService(newStubBookRepo(), zerolog.Nop())

	if _, err := svc.EditBook(context.Background(), ports.EditBookInput{ID: "ghost"}); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestCatalogService_Delete(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewCatalogService(repo, zerolog.Nop())

	book, err := svc.AddBook(context.Background(), ports.AddBookInput{Title: "X", Author: "Y"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.DeleteBook(context.Background(), book.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteBook(context.Background(), book.ID); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound on second delete, got %v", err)
	}
}

func TestCatalogService_Search(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewCatalogService(repo, zerolog.Nop())

	titles := []string{"Go in Action", "Go Web Programming", "Rust in Action"}
	for _, title := range titles {
		if _, err := svc.AddBook(context.Background(), ports.AddBookInput{Title: title, Author: "anon"}); err != nil {
			t.Fatalf("add %q failed: %v", title, err)
		}
	}

	result, err := svc.SearchBooks(context.Background(), ports.SearchBooksInput{
		Cond:  domain.SearchByTitle,
		Param: "Go",
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", result.Total)
	}

	if _, err := svc.SearchBooks(context.Background(), ports.SearchBooksInput{Cond: "publisher", Param: "x"}); !errors.Is(err, domain.ErrInvalidSearchCond) {
		t.Fatalf("expected ErrInvalidSearchCond, got %v", err)
	}
}
