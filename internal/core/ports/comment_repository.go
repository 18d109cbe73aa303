package ports

import (
	"context"

	"github.com/openboard/board-api/internal/core/domain"
)

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	// FindByIDAndArticleID returns domain.ErrCommentNotFound when no comment
	// with the given id exists under that article.
	FindByIDAndArticleID(ctx context.Context, id, articleID uint64) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id uint64) error
}
