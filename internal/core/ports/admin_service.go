package ports

import (
	"context"

	"github.com/openboard/board-api/internal/core/domain"
)

// AdminService implements the ADMIN-only user search.
type AdminService interface {
	SearchUsers(ctx context.Context, filter UserSearchFilter) ([]*domain.User, error)
}
