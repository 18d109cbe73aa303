package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openboard/board-api/internal/core/domain"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = "id, user_id, article_id, content, created_at, updated_at"

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (user_id, article_id, content) VALUES (?,?,?)",
		comment.UserID, comment.ArticleID, comment.Content)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert comment id: %w", err)
	}
	return r.findByID(ctx, uint64(id))
}

func (r *CommentRepository) findByID(ctx context.Context, id uint64) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.UserID, &c.ArticleID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) FindByIDAndArticleID(ctx context.Context, id, articleID uint64) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE id=? AND article_id=? LIMIT 1",
		id, articleID).
		Scan(&c.ID, &c.UserID, &c.ArticleID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	_, err := r.db.ExecContext(ctx,
		"UPDATE comments SET content=? WHERE id=?", comment.Content, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return r.findByID(ctx, comment.ID)
}

func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
