package ports

import (
	"context"

	"github.com/openboard/board-api/internal/core/domain"
)

// CommentService implements comment CRUD under an article. Article existence
// is checked before any comment lookup, and ownership before any mutation.
type CommentService interface {
	Create(ctx context.Context, principal domain.Principal, articleID uint64, content string) (*domain.Comment, error)
	Update(ctx context.Context, principal domain.Principal, articleID, commentID uint64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, principal domain.Principal, articleID, commentID uint64) error
}
