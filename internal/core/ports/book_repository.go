package ports

import (
	"context"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

// BookRepository is the persistence contract for the catalog.
type BookRepository interface {
	Insert(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// Search matches books whose field named by cond (title, author or
	// categories) contains param as a substring. Results are paginated and
	// ordered by id.
	Search(ctx context.Context, cond, param string, page, size int) ([]domain.Book, int64, error)
}
