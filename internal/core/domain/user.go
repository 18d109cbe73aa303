package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var ErrDuplicatedEmail = errors.New("email is duplicated")
var ErrEmailNotFound = errors.New("email not found")
var ErrInvalidPassword = errors.New("password is invalid")
var ErrInvalidRefreshToken = errors.New("refresh token is invalid")
var ErrUserNotFound = errors.New("user not found")
var ErrTooManySignInAttempts = errors.New("too many failed sign-in attempts")

// User models a registered account. PasswordHash is never rendered.
// RefreshToken holds the single currently valid refresh token; it is empty
// when the session has been revoked.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal is the authenticated identity attached to a request after the
// bearer token has been verified and resolved against the user store.
// It lives only for the duration of request handling.
type Principal struct {
	ID       uint64
	Email    string
	Username string
	Role     string
}
