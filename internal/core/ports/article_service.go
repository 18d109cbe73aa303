package ports

import (
	"context"

	"github.com/openboard/board-api/internal/core/domain"
)

// ArticleInput carries the mutable fields of an article.
type ArticleInput struct {
	Title   string
	Content string
}

// ArticleService implements article CRUD with ownership enforcement:
// only the author may update or delete an article.
type ArticleService interface {
	Create(ctx context.Context, principal domain.Principal, input ArticleInput) (*domain.Article, error)
	Update(ctx context.Context, principal domain.Principal, articleID uint64, input ArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, principal domain.Principal, articleID uint64) error
}
