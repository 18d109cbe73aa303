package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openboard/board-api/internal/core/domain"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const articleColumns = "id, user_id, title, content, created_at, updated_at"

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO articles (user_id, title, content) VALUES (?,?,?)",
		article.UserID, article.Title, article.Content)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert article id: %w", err)
	}
	return r.FindByID(ctx, uint64(id))
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uint64) (*domain.Article, error) {
	var a domain.Article
	err := r.db.QueryRowContext(ctx,
		"SELECT "+articleColumns+" FROM articles WHERE id=? LIMIT 1", id).
		Scan(&a.ID, &a.UserID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find article: %w", err)
	}
	return &a, nil
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE articles SET title=?, content=? WHERE id=?",
		article.Title, article.Content, article.ID)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// 0 rows can also mean an identical write; confirm existence
		if _, err := r.FindByID(ctx, article.ID); err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, article.ID)
}

// Delete removes the article and its comments in one transaction.
func (r *ArticleRepository) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE article_id=?", id); err != nil {
		return fmt.Errorf("delete article comments: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrArticleNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}
