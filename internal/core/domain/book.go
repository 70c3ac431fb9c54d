package domain

import (
	"errors"
	"time"
)

// Book is a catalog entry. Categories are free-form tags; searching by
// category matches any entry containing the query as a substring, mirroring
// the title and author searches.
type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	ISBN       string    `json:"isbn,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var ErrBookNotFound = errors.New("book not found")

// Search conditions accepted by the catalog search endpoints.
const (
	SearchByTitle      = "title"
	SearchByAuthor     = "author"
	SearchByCategories = "categories"
)

var ErrInvalidSearchCond = errors.New("invalid search condition")
