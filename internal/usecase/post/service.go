package post

import (
	"context"
	"time"

	domain "devconnector/backend/internal/domain/post"
	userdomain "devconnector/backend/internal/domain/user"

	"github.com/google/uuid"
)

// Service implements the post feed: creation, listing, likes and comments.
type Service struct {
	posts   domain.Repository
	users   userdomain.Repository
	nowFunc func() time.Time
}

// NewService constructs a post service.
func NewService(posts domain.Repository, users userdomain.Repository) *Service {
	return &Service{
		posts:   posts,
		users:   users,
		nowFunc: time.Now,
	}
}

// Create stores a new post, denormalizing the author's name and avatar onto
// the document so the feed renders without joining users.
func (s *Service) Create(ctx context.Context, userID, text string) (*domain.Post, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &domain.Post{
		ID:        uuid.NewString(),
		User:      u.ID,
		Text:      text,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Likes:     []domain.Like{},
		Comments:  []domain.Comment{},
		CreatedAt: s.nowFunc().UTC(),
	}

	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

// Get fetches a single post by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Delete removes a post; only the author may delete it.
func (s *Service) Delete(ctx context.Context, userID, postID string) error {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.User != userID {
		return domain.ErrNotAuthorized
	}
	return s.posts.Delete(ctx, postID)
}

// Like prepends a like for the user and returns the updated likes array.
// A second like from the same user is rejected.
func (s *Service) Like(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.LikedBy(userID) {
		return nil, domain.ErrAlreadyLiked
	}

	p.Likes = append([]domain.Like{{ID: uuid.NewString(), User: userID}}, p.Likes...)
	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// Unlike removes the user's like and returns the updated likes array.
func (s *Service) Unlike(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !p.LikedBy(userID) {
		return nil, domain.ErrNotLiked
	}

	likes := make([]domain.Like, 0, len(p.Likes)-1)
	for _, l := range p.Likes {
		if l.User != userID {
			likes = append(likes, l)
		}
	}
	p.Likes = likes

	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// AddComment prepends a comment to the post and returns the comments array.
func (s *Service) AddComment(ctx context.Context, userID, postID, text string) ([]domain.Comment, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		User:      u.ID,
		Text:      text,
		Name:      u.Name,
		Avatar:    u.Avatar,
		CreatedAt: s.nowFunc().UTC(),
	}
	p.Comments = append([]domain.Comment{comment}, p.Comments...)

	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// RemoveComment deletes a comment; only its author may remove it. Returns
// the remaining comments.
func (s *Service) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]domain.Comment, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, c := range p.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.ErrCommentNotFound
	}
	if p.Comments[idx].User != userID {
		return nil, domain.ErrNotAuthorized
	}

	p.Comments = append(p.Comments[:idx], p.Comments[idx+1:]...)

	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}
