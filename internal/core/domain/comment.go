package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment belongs to both a user (its author) and an article.
type Comment struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"-"`
	ArticleID uint64    `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the comment was written by the given user.
func (c *Comment) OwnedBy(userID uint64) bool {
	return c.UserID == userID
}
