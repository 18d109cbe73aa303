package ports

import (
	"context"
	"time"

	"github.com/openboard/board-api/internal/core/domain"
)

// UserSearchFilter carries the admin search criteria. Zero-valued fields are
// not applied. Date ranges are inclusive of their end day.
type UserSearchFilter struct {
	Username     string
	Email        string
	CreatedFrom  time.Time
	CreatedUntil time.Time
	UpdatedFrom  time.Time
	UpdatedUntil time.Time
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create persists a new user and returns it with server-assigned fields.
	// Returns domain.ErrDuplicatedEmail when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrEmailNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no account matches.
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	// SaveRefreshToken stores the given refresh token on the user row.
	SaveRefreshToken(ctx context.Context, userID uint64, refreshToken string) error
	// RotateRefreshToken compares presented against the stored refresh token
	// under a row lock. On match it stores next and returns nil. On mismatch
	// it clears the stored token and returns domain.ErrInvalidRefreshToken.
	RotateRefreshToken(ctx context.Context, userID uint64, presented, next string) error
	// Delete removes the user together with their articles and comments, and
	// the comments left by others on their articles, in one transaction.
	Delete(ctx context.Context, userID uint64) error
	// Search returns USER-role accounts matching filter, newest id first.
	Search(ctx context.Context, filter UserSearchFilter) ([]*domain.User, error)
}
