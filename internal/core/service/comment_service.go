package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
)

// CommentService implements comment CRUD under an article. The parent
// article must exist for every operation; comment existence is checked
// before ownership.
type CommentService struct {
	articles ports.ArticleRepository
	comments ports.CommentRepository
	logger   zerolog.Logger
}

func NewCommentService(articles ports.ArticleRepository, comments ports.CommentRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{articles: articles, comments: comments, logger: logger}
}

func (s *CommentService) Create(ctx context.Context, principal domain.Principal, articleID uint64, content string) (*domain.Comment, error) {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, &domain.Comment{
		UserID:    principal.ID,
		ArticleID: article.ID,
		Content:   content,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint64("comment_id", comment.ID).Uint64("article_id", article.ID).Str("author", principal.Email).Msg("comment created")
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, principal domain.Principal, articleID, commentID uint64, content string) (*domain.Comment, error) {
	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByIDAndArticleID(ctx, commentID, articleID)
	if err != nil {
		return nil, err
	}
	if !comment.OwnedBy(principal.ID) {
		return nil, domain.ErrInvalidPermission
	}

	comment.Content = content
	return s.comments.Update(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, principal domain.Principal, articleID, commentID uint64) error {
	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		return err
	}

	comment, err := s.comments.FindByIDAndArticleID(ctx, commentID, articleID)
	if err != nil {
		return err
	}
	if !comment.OwnedBy(principal.ID) {
		return domain.ErrInvalidPermission
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return err
	}
	s.logger.Info().Uint64("comment_id", comment.ID).Uint64("article_id", articleID).Str("author", principal.Email).Msg("comment deleted")
	return nil
}
