package ports

import (
	"context"

	"github.com/openboard/board-api/internal/core/domain"
)

// ArticleRepository defines persistence for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	// FindByID returns domain.ErrArticleNotFound when no article matches.
	FindByID(ctx context.Context, id uint64) (*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) (*domain.Article, error)
	// Delete removes the article and its comments in one transaction.
	Delete(ctx context.Context, id uint64) error
}
