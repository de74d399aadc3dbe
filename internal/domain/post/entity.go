package post

import (
	"errors"
	"time"
)

var (
	// ErrPostNotFound indicates a missing post.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotAuthorized indicates the caller does not own the resource.
	ErrNotAuthorized = errors.New("user not authorized")
	// ErrAlreadyLiked rejects a second like from the same user.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotLiked rejects an unlike from a user who has not liked the post.
	ErrNotLiked = errors.New("post has not yet been liked")
	// ErrCommentNotFound indicates a missing comment.
	ErrCommentNotFound = errors.New("comment does not exist")
)

// Like records a single user's like on a post.
type Like struct {
	ID   string `json:"_id"`
	User string `json:"user"`
}

// Comment is an embedded comment document. Author name and avatar are
// denormalized at creation time, matching the post itself.
type Comment struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// Post is a feed entry authored by a user.
type Post struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// LikedBy reports whether userID already appears in the likes array.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}
