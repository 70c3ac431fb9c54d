package domain

import (
	"errors"
	"time"
)

// Roles form a closed set. There is no hierarchy between them: a librarian is
// not implicitly a reader, and every protected operation names the exact role
// it requires.
const (
	RoleReader    = "reader"
	RoleLibrarian = "librarian"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleReader || role == RoleLibrarian
}

// User models a registered library member or staff account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials covers both an unknown username and a wrong password,
// so the two cases are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")
