package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized},
		{"role mismatch", domain.ErrRoleMismatch, http.StatusForbidden},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"already logged in", domain.ErrAlreadyAuthenticated, http.StatusConflict},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"book not found", domain.ErrBookNotFound, http.StatusNotFound},
		{"lending not found", domain.ErrLendingNotFound, http.StatusNotFound},
		{"already lent", domain.ErrAlreadyLent, http.StatusConflict},
		{"bad search cond", domain.ErrInvalidSearchCond, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	handlerFn := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handlerFn(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

// Unauthenticated and forbidden must stay distinguishable end to end: the
// former asks "who are you", the latter says "you may not do this".
func TestHTTPErrorHandler_401vs403(t *testing.T) {
	handlerFn := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	rec401 := httptest.NewRecorder()
	handlerFn(domain.ErrNotAuthenticated, e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec401))

	rec403 := httptest.NewRecorder()
	handlerFn(domain.ErrForbidden, e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec403))

	if rec401.Code == rec403.Code {
		t.Fatalf("401 and 403 collapsed into %d", rec401.Code)
	}
}

func TestHTTPErrorHandler_WrappedError(t *testing.T) {
	handlerFn := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	wrapped := errors.Join(errors.New("find user"), domain.ErrUserNotFound)
	handlerFn(wrapped, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped ErrUserNotFound, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_InternalDoesNotLeak(t *testing.T) {
	handlerFn := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handlerFn(errors.New("dsn=mongodb://admin:hunter2@db"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "hunter2") {
		t.Fatalf("internal error detail leaked to client: %q", body)
	}
}
