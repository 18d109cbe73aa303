package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
)

// ArticleService implements article CRUD. Existence is always checked before
// ownership so a non-owner probing a missing id gets not-found, not
// permission-denied.
type ArticleService struct {
	articles ports.ArticleRepository
	logger   zerolog.Logger
}

func NewArticleService(articles ports.ArticleRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{articles: articles, logger: logger}
}

func (s *ArticleService) Create(ctx context.Context, principal domain.Principal, input ports.ArticleInput) (*domain.Article, error) {
	article, err := s.articles.Create(ctx, &domain.Article{
		UserID:  principal.ID,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint64("article_id", article.ID).Str("author", principal.Email).Msg("article created")
	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, principal domain.Principal, articleID uint64, input ports.ArticleInput) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !article.OwnedBy(principal.ID) {
		return nil, domain.ErrInvalidPermission
	}

	article.Title = input.Title
	article.Content = input.Content
	return s.articles.Update(ctx, article)
}

func (s *ArticleService) Delete(ctx context.Context, principal domain.Principal, articleID uint64) error {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return err
	}
	if !article.OwnedBy(principal.ID) {
		return domain.ErrInvalidPermission
	}

	if err := s.articles.Delete(ctx, article.ID); err != nil {
		return err
	}
	s.logger.Info().Uint64("article_id", article.ID).Str("author", principal.Email).Msg("article deleted")
	return nil
}
