package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
)

// AdminService implements the ADMIN-only user search. Only USER-role
// accounts are returned; the role gate in front of the route has already
// established that the caller is an admin.
type AdminService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, logger: logger}
}

func (s *AdminService) SearchUsers(ctx context.Context, filter ports.UserSearchFilter) ([]*domain.User, error) {
	users, err := s.users.Search(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("user search failed")
		return nil, err
	}
	return users, nil
}
