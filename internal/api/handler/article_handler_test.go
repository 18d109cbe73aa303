package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/openboard/board-api/internal/api/middleware"
	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
)

type stubArticleService struct {
	createFn func(ctx context.Context, principal domain.Principal, input ports.ArticleInput) (*domain.Article, error)
	updateFn func(ctx context.Context, principal domain.Principal, articleID uint64, input ports.ArticleInput) (*domain.Article, error)
	deleteFn func(ctx context.Context, principal domain.Principal, articleID uint64) error
}

func (s *stubArticleService) Create(ctx context.Context, principal domain.Principal, input ports.ArticleInput) (*domain.Article, error) {
	return s.createFn(ctx, principal, input)
}

func (s *stubArticleService) Update(ctx context.Context, principal domain.Principal, articleID uint64, input ports.ArticleInput) (*domain.Article, error) {
	return s.updateFn(ctx, principal, articleID, input)
}

func (s *stubArticleService) Delete(ctx context.Context, principal domain.Principal, articleID uint64) error {
	return s.deleteFn(ctx, principal, articleID)
}

var author = domain.Principal{ID: 3, Email: "author@b.com", Username: "author", Role: domain.RoleUser}

func TestArticleHandler_Create_Success(t *testing.T) {
	stub := &stubArticleService{
		createFn: func(ctx context.Context, principal domain.Principal, input ports.ArticleInput) (*domain.Article, error) {
			if principal.ID != author.ID {
				t.Fatalf("unexpected principal: %+v", principal)
			}
			return &domain.Article{ID: 10, UserID: principal.ID, Title: input.Title, Content: input.Content}, nil
		},
	}
	h := NewArticleHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/articles", `{"title":"t","content":"c"}`)
	c.Set(middleware.PrincipalKey, author)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(10) || resp["email"] != author.Email || resp["title"] != "t" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestArticleHandler_Create_Unauthenticated(t *testing.T) {
	stub := &stubArticleService{
		createFn: func(ctx context.Context, principal domain.Principal, input ports.ArticleInput) (*domain.Article, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewArticleHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/articles", `{"title":"t","content":"c"}`)

	if code := httpErrorCode(t, h.Create(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestArticleHandler_Create_MissingTitle(t *testing.T) {
	stub := &stubArticleService{
		createFn: func(ctx context.Context, principal domain.Principal, input ports.ArticleInput) (*domain.Article, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewArticleHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/articles", `{"content":"c"}`)
	c.Set(middleware.PrincipalKey, author)

	if code := httpErrorCode(t, h.Create(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestArticleHandler_Update_NotOwner(t *testing.T) {
	stub := &stubArticleService{
		updateFn: func(ctx context.Context, principal domain.Principal, articleID uint64, input ports.ArticleInput) (*domain.Article, error) {
			return nil, domain.ErrInvalidPermission
		},
	}
	h := NewArticleHandler(stub)

	c, _ := newJSONContext(t, http.MethodPut, "/api/articles/10", `{"title":"t2","content":"c2"}`)
	c.SetParamNames("id")
	c.SetParamValues("10")
	c.Set(middleware.PrincipalKey, author)

	if err := h.Update(c); !errors.Is(err, domain.ErrInvalidPermission) {
		t.Fatalf("expected ErrInvalidPermission, got %v", err)
	}
}

func TestArticleHandler_Update_BadPathID(t *testing.T) {
	stub := &stubArticleService{
		updateFn: func(ctx context.Context, principal domain.Principal, articleID uint64, input ports.ArticleInput) (*domain.Article, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewArticleHandler(stub)

	c, _ := newJSONContext(t, http.MethodPut, "/api/articles/abc", `{"title":"t","content":"c"}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set(middleware.PrincipalKey, author)

	if code := httpErrorCode(t, h.Update(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestArticleHandler_Delete_Success(t *testing.T) {
	var got uint64
	stub := &stubArticleService{
		deleteFn: func(ctx context.Context, principal domain.Principal, articleID uint64) error {
			got = articleID
			return nil
		},
	}
	h := NewArticleHandler(stub)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/articles/10", "")
	c.SetParamNames("id")
	c.SetParamValues("10")
	c.Set(middleware.PrincipalKey, author)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != 10 {
		t.Fatalf("expected delete of article 10, got %d", got)
	}
}

func TestArticleHandler_Delete_NotFound(t *testing.T) {
	stub := &stubArticleService{
		deleteFn: func(ctx context.Context, principal domain.Principal, articleID uint64) error {
			return domain.ErrArticleNotFound
		},
	}
	h := NewArticleHandler(stub)

	c, _ := newJSONContext(t, http.MethodDelete, "/api/articles/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	c.Set(middleware.PrincipalKey, author)

	if err := h.Delete(c); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}
