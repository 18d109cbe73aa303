package domain

import (
	"errors"
	"time"
)

var ErrArticleNotFound = errors.New("article not found")
var ErrInvalidPermission = errors.New("permission is invalid")

// Article is a board post. UserID references the owning user; ownership is
// tracked by id only, never by an embedded User value.
type Article struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the article belongs to the given user.
func (a *Article) OwnedBy(userID uint64) bool {
	return a.UserID == userID
}
