package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/api/metrics"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

// LendingHandler handles the lending log: lend, return, history. The
// librarian routes act on any reader; the reader route is scoped to the
// session's own identity.
type LendingHandler struct {
	lending ports.LendingService
	auth    ports.AuthService
}

func NewLendingHandler(lending ports.LendingService, auth ports.AuthService) *LendingHandler {
	return &LendingHandler{lending: lending, auth: auth}
}

type lendRequest struct {
	UserID string `json:"user_id" validate:"required"`
	BookID string `json:"book_id" validate:"required"`
}

type registerReaderRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type historyResponse struct {
	Items      []domain.LendingLogItem `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Size       int                     `json:"size"`
	TotalPages int                     `json:"total_pages"`
}

// Lend handles POST /librarian/lending/lend.
//
// @Summary      Lend a book to a reader
// @Tags         lending
// @Accept       json
// @Produce      json
// @Param        body  body      lendRequest  true  "Reader and book ids"
// @Success      201   {object}  domain.LendingLogItem
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /librarian/lending/lend [post]
func (h *LendingHandler) Lend(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req lendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.lending.Lend(c.Request().Context(), actorID, req.UserID, req.BookID)
	if err != nil {
		return err
	}
	metrics.LendingsTotal.WithLabelValues("lend").Inc()
	return c.JSON(http.StatusCreated, item)
}

// Return handles POST /librarian/lending/return.
//
// @Summary      Record a book return
// @Tags         lending
// @Accept       json
// @Produce      json
// @Param        body  body      lendRequest  true  "Reader and book ids"
// @Success      200   {object}  domain.LendingLogItem
// @Failure      404   {object}  errorResponse
// @Router       /librarian/lending/return [post]
func (h *LendingHandler) Return(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req lendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.lending.Return(c.Request().Context(), actorID, req.UserID, req.BookID)
	if err != nil {
		return err
	}
	metrics.LendingsTotal.WithLabelValues("return").Inc()
	return c.JSON(http.StatusOK, item)
}

// History handles GET /librarian/lending/history?user_id=&page=&size=.
//
// @Summary      Lending history of a reader
// @Tags         lending
// @Produce      json
// @Param        user_id  query     string  true   "Reader id"
// @Param        page     query     int     false  "Page number (0-based)"
// @Param        size     query     int     false  "Page size"
// @Success      200      {object}  historyResponse
// @Router       /librarian/lending/history [get]
func (h *LendingHandler) History(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	return h.history(c, userID)
}

// MyHistory handles GET /reader/lending/history. The resolved session
// identity scopes the query: a reader only ever sees their own loans.
//
// @Summary      Lending history of the calling reader
// @Tags         lending
// @Produce      json
// @Param        page  query     int  false  "Page number (0-based)"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  historyResponse
// @Failure      401   {object}  errorResponse
// @Router       /reader/lending/history [get]
func (h *LendingHandler) MyHistory(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return h.history(c, userID)
}

// RegisterReader handles POST /librarian/readers: staff-created reader
// accounts.
//
// @Summary      Register a reader account
// @Tags         lending
// @Accept       json
// @Produce      json
// @Param        body  body      registerReaderRequest  true  "Reader credentials"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  errorResponse
// @Router       /librarian/readers [post]
func (h *LendingHandler) RegisterReader(c echo.Context) error {
	var req registerReaderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), req.Username, req.Password, domain.RoleReader)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *LendingHandler) history(c echo.Context, userID string) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.lending.History(c.Request().Context(), ports.HistoryInput{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []domain.LendingLogItem{}
	}
	return c.JSON(http.StatusOK, historyResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Size:       result.Size,
		TotalPages: result.TotalPages,
	})
}
