package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

// BookHandler handles catalog maintenance and search.
type BookHandler struct {
	catalog ports.CatalogService
}

func NewBookHandler(catalog ports.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

type bookRequest struct {
	Title      string   `json:"title"  validate:"required"`
	Author     string   `json:"author" validate:"required"`
	ISBN       string   `json:"isbn,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

type searchBooksResponse struct {
	Items      []domain.Book `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalPages int           `json:"total_pages"`
}

// Add handles POST /librarian/books.
//
// @Summary      Add a book to the catalog
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /librarian/books [post]
func (h *BookHandler) Add(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.catalog.AddBook(c.Request().Context(), ports.AddBookInput{
		Title:      req.Title,
		Author:     req.Author,
		ISBN:       req.ISBN,
		Categories: req.Categories,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Edit handles PUT /librarian/books/:id.
//
// @Summary      Replace a catalog entry
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Book id"
// @Param        body  body      bookRequest  true  "Book details"
// @Success      200   {object}  domain.Book
// @Failure      404   {object}  errorResponse
// @Router       /librarian/books/{id} [put]
func (h *BookHandler) Edit(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.catalog.EditBook(c.Request().Context(), ports.EditBookInput{
		ID:         c.Param("id"),
		Title:      req.Title,
		Author:     req.Author,
		ISBN:       req.ISBN,
		Categories: req.Categories,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /librarian/books/:id.
//
// @Summary      Delete a catalog entry
// @Tags         catalog
// @Produce      json
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /librarian/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteBook(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /librarian/books/search and /reader/books/search.
//
// @Summary      Search the catalog
// @Tags         catalog
// @Produce      json
// @Param        cond   query     string  true   "Field to match: title, author or categories"
// @Param        param  query     string  true   "Substring to match"
// @Param        page   query     int     false  "Page number (0-based)"
// @Param        size   query     int     false  "Page size"
// @Success      200    {object}  searchBooksResponse
// @Failure      400    {object}  errorResponse
// @Router       /librarian/books/search [get]
func (h *BookHandler) Search(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.catalog.SearchBooks(c.Request().Context(), ports.SearchBooksInput{
		Cond:  c.QueryParam("cond"),
		Param: c.QueryParam("param"),
		Page:  page,
		Size:  size,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []domain.Book{}
	}
	return c.JSON(http.StatusOK, searchBooksResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Size:       result.Size,
		TotalPages: result.TotalPages,
	})
}
