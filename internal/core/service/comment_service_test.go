package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openboard/board-api/internal/core/domain"
)

type stubCommentRepo struct {
	comments map[uint64]*domain.Comment
	nextID   uint64
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[uint64]*domain.Comment), nextID: 1}
}

func cloneComment(c *domain.Comment) *domain.Comment {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCommentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	copy := cloneComment(comment)
	copy.ID = r.nextID
	r.nextID++
	r.comments[copy.ID] = cloneComment(copy)
	return copy, nil
}

func (r *stubCommentRepo) FindByIDAndArticleID(_ context.Context, id, articleID uint64) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok || c.ArticleID != articleID {
		return nil, domain.ErrCommentNotFound
	}
	return cloneComment(c), nil
}

func (r *stubCommentRepo) Update(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if _, ok := r.comments[comment.ID]; !ok {
		return nil, domain.ErrCommentNotFound
	}
	r.comments[comment.ID] = cloneComment(comment)
	return cloneComment(comment), nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func newCommentFixture(t *testing.T) (*CommentService, *domain.Article) {
	t.Helper()
	articles := newStubArticleRepo()
	comments := newStubCommentRepo()
	articles.comments = comments

	article, err := articles.Create(context.Background(), &domain.Article{UserID: owner.ID, Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("seed article: %v", err)
	}
	return NewCommentService(articles, comments, zerolog.Nop()), article
}

func TestCommentService_Create(t *testing.T) {
	svc, article := newCommentFixture(t)

	comment, err := svc.Create(context.Background(), stranger, article.ID, "hello")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comment.ArticleID != article.ID || comment.UserID != stranger.ID {
		t.Fatalf("unexpected ownership: %+v", comment)
	}
}

func TestCommentService_Create_ArticleMissing(t *testing.T) {
	svc, _ := newCommentFixture(t)
	if _, err := svc.Create(context.Background(), owner, 99, "hello"); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestCommentService_Update_OwnershipAfterExistence(t *testing.T) {
	svc, article := newCommentFixture(t)

	comment, _ := svc.Create(context.Background(), owner, article.ID, "hello")

	if _, err := svc.Update(context.Background(), stranger, article.ID, 99, "x"); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound for missing id, got %v", err)
	}
	if _, err := svc.Update(context.Background(), stranger, article.ID, comment.ID, "x"); !errors.Is(err, domain.ErrInvalidPermission) {
		t.Fatalf("expected ErrInvalidPermission for non-owner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), owner, article.ID, comment.ID, "edited")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestCommentService_Update_WrongArticle(t *testing.T) {
	articles := newStubArticleRepo()
	comments := newStubCommentRepo()
	svc := NewCommentService(articles, comments, zerolog.Nop())

	first, _ := articles.Create(context.Background(), &domain.Article{UserID: owner.ID, Title: "a", Content: "1"})
	second, _ := articles.Create(context.Background(), &domain.Article{UserID: owner.ID, Title: "b", Content: "2"})
	comment, _ := svc.Create(context.Background(), owner, first.ID, "hello")

	// a comment id is only addressable under its own article
	if _, err := svc.Update(context.Background(), owner, second.ID, comment.ID, "x"); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestCommentService_Delete(t *testing.T) {
	svc, article := newCommentFixture(t)
	comment, _ := svc.Create(context.Background(), owner, article.ID, "hello")

	if err := svc.Delete(context.Background(), stranger, article.ID, comment.ID); !errors.Is(err, domain.ErrInvalidPermission) {
		t.Fatalf("expected ErrInvalidPermission, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, article.ID, comment.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), owner, article.ID, comment.ID); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}
