package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
)

const duplicateEntryErrNo = 1062

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, username, password_hash, role, COALESCE(refresh_token, ''), created_at, updated_at"

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
		&u.RefreshToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email, username, password_hash, role) VALUES (?,?,?,?)",
		email, user.Username, user.PasswordHash, user.Role)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == duplicateEntryErrNo {
			return nil, domain.ErrDuplicatedEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user id: %w", err)
	}
	return r.FindByID(ctx, uint64(id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEmailNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) SaveRefreshToken(ctx context.Context, userID uint64, refreshToken string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET refresh_token=? WHERE id=?", refreshToken, userID)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// RotateRefreshToken performs the compare-and-swap of the stored refresh
// token inside one transaction. The SELECT ... FOR UPDATE row lock
// serializes concurrent refresh calls for the same user, so two racing
// rotations cannot both succeed against the same stored token.
func (r *UserRepository) RotateRefreshToken(ctx context.Context, userID uint64, presented, next string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rotate tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stored sql.NullString
	err = tx.QueryRowContext(ctx,
		"SELECT refresh_token FROM users WHERE id=? FOR UPDATE", userID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("lock user row: %w", err)
	}

	if !stored.Valid || stored.String == "" || stored.String != presented {
		// revoke: a stale or replayed token permanently ends the session
		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET refresh_token=NULL WHERE id=?", userID); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit revoke: %w", err)
		}
		return domain.ErrInvalidRefreshToken
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET refresh_token=? WHERE id=?", next, userID); err != nil {
		return fmt.Errorf("store rotated token: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rotate: %w", err)
	}
	return nil
}

// Delete removes the user and cascades over owned rows: the user's comments,
// comments left by others on the user's articles, the articles themselves,
// then the account. All or nothing.
func (r *UserRepository) Delete(ctx context.Context, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	steps := []struct {
		query string
	}{
		{"DELETE FROM comments WHERE user_id=?"},
		{"DELETE c FROM comments c JOIN articles a ON c.article_id=a.id WHERE a.user_id=?"},
		{"DELETE FROM articles WHERE user_id=?"},
		{"DELETE FROM users WHERE id=?"},
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.query, userID); err != nil {
			return fmt.Errorf("delete user cascade: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// Search returns USER-role accounts matching the filter, newest id first.
// Date ranges are inclusive of their end day.
func (r *UserRepository) Search(ctx context.Context, filter ports.UserSearchFilter) ([]*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE role=?"
	args := []any{domain.RoleUser}

	if filter.Username != "" {
		query += " AND username=?"
		args = append(args, filter.Username)
	}
	if filter.Email != "" {
		query += " AND email=?"
		args = append(args, filter.Email)
	}
	if !filter.CreatedFrom.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.CreatedFrom)
	}
	if !filter.CreatedUntil.IsZero() {
		query += " AND created_at < ?"
		args = append(args, filter.CreatedUntil.AddDate(0, 0, 1))
	}
	if !filter.UpdatedFrom.IsZero() {
		query += " AND updated_at >= ?"
		args = append(args, filter.UpdatedFrom)
	}
	if !filter.UpdatedUntil.IsZero() {
		query += " AND updated_at < ?"
		args = append(args, filter.UpdatedUntil.AddDate(0, 0, 1))
	}
	query += " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
			&u.RefreshToken, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search users rows: %w", err)
	}
	return users, nil
}
