package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
	"github.com/openboard/board-api/internal/pkg/token"
)

// UserService implements sign-up, sign-in, refresh rotation and self-delete.
type UserService struct {
	users    ports.UserRepository
	codec    *token.Codec
	throttle ports.SignInThrottle
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, codec *token.Codec, throttle ports.SignInThrottle, logger zerolog.Logger) *UserService {
	return &UserService{users: users, codec: codec, throttle: throttle, logger: logger}
}

// SignUp registers a new account. The password is stored only as a bcrypt
// hash; the role is fixed at creation.
func (s *UserService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Msg("user signed up")
	return user, nil
}

// SignIn verifies credentials and, on success, issues an access+refresh pair
// and persists the refresh token on the user record.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*domain.User, ports.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("sign-in throttle check failed")
		} else if blocked {
			return nil, ports.TokenPair{}, domain.ErrTooManySignInAttempts
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, email); err != nil {
				s.logger.Warn().Err(err).Str("email", email).Msg("sign-in throttle record failed")
			}
		}
		return nil, ports.TokenPair{}, domain.ErrInvalidPassword
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}
	if err := s.users.SaveRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, ports.TokenPair{}, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("sign-in throttle reset failed")
		}
	}

	s.logger.Info().Str("email", user.Email).Msg("user signed in")
	return user, pair, nil
}

// Refresh rotates the stored refresh token. The presented token must equal
// the stored one byte-for-byte; any mismatch revokes the session so a stale
// or replayed refresh token forces a fresh sign-in.
func (s *UserService) Refresh(ctx context.Context, userID uint64, presented string) (ports.TokenPair, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ports.TokenPair{}, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return ports.TokenPair{}, err
	}

	if err := s.users.RotateRefreshToken(ctx, user.ID, presented, pair.RefreshToken); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("refresh token rotation rejected")
		return ports.TokenPair{}, err
	}

	s.logger.Info().Str("email", user.Email).Msg("token pair rotated")
	return pair, nil
}

// Delete removes the account and everything it owns.
func (s *UserService) Delete(ctx context.Context, userID uint64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.logger.Info().Str("email", user.Email).Msg("user deleted")
	return nil
}

func (s *UserService) issuePair(user *domain.User) (ports.TokenPair, error) {
	access, err := s.codec.IssueAccessToken(user.Email, user.Role)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := s.codec.IssueRefreshToken(user.Email, user.Role)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
