package ports

import (
	"context"

	"github.com/openboard/board-api/internal/core/domain"
)

// SignUpInput carries the fields of a registration request.
type SignUpInput struct {
	Email    string
	Password string
	Username string
	Role     string
}

// TokenPair is an access token and its companion refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService implements the user lifecycle: registration, credential
// verification with token issuance, refresh-token rotation and self-delete.
type UserService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*domain.User, TokenPair, error)
	// Refresh exchanges presented (the raw bearer segment of the request's
	// Authorization header) for a freshly issued pair, rotating the stored
	// refresh token. A mismatch revokes the session.
	Refresh(ctx context.Context, userID uint64, presented string) (TokenPair, error)
	Delete(ctx context.Context, userID uint64) error
}

// SignInThrottle limits repeated failed sign-in attempts per email.
type SignInThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
