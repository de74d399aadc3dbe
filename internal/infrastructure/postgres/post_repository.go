package postgres

import (
	"context"
	"encoding/json"
	"errors"

	domain "devconnector/backend/internal/domain/post"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepository persists posts in PostgreSQL. Likes and comments are
// embedded JSONB arrays on the post document.
type PostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository constructs a repository.
func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Ensure PostRepository implements the domain interface.
var _ domain.Repository = (*PostRepository)(nil)

// Create inserts a new post record.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	likes, comments, err := marshalPostDocs(p)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO posts (id, user_id, text, name, avatar, likes, comments, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.User,
		p.Text,
		p.Name,
		p.Avatar,
		likes,
		comments,
		p.CreatedAt,
	)
	return err
}

// GetByID fetches a post by id.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const query = `
SELECT id, user_id, text, name, avatar, likes, comments, created_at
FROM posts WHERE id = $1
`
	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns all posts, newest first.
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	const query = `
SELECT id, user_id, text, name, avatar, likes, comments, created_at
FROM posts ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// Save overwrites the embedded likes and comments arrays of a post.
func (r *PostRepository) Save(ctx context.Context, p *domain.Post) error {
	likes, comments, err := marshalPostDocs(p)
	if err != nil {
		return err
	}

	const query = `UPDATE posts SET likes = $2, comments = $3 WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, p.ID, likes, comments)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// Delete removes a post by id.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM posts WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// DeleteByUserID removes every post authored by a user.
func (r *PostRepository) DeleteByUserID(ctx context.Context, userID string) error {
	const query = `DELETE FROM posts WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

func marshalPostDocs(p *domain.Post) (likes, comments []byte, err error) {
	if likes, err = json.Marshal(p.Likes); err != nil {
		return nil, nil, err
	}
	if comments, err = json.Marshal(p.Comments); err != nil {
		return nil, nil, err
	}
	return likes, comments, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		p        domain.Post
		likes    []byte
		comments []byte
	)
	err := row.Scan(
		&p.ID,
		&p.User,
		&p.Text,
		&p.Name,
		&p.Avatar,
		&likes,
		&comments,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(likes, &p.Likes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(comments, &p.Comments); err != nil {
		return nil, err
	}
	if p.Likes == nil {
		p.Likes = []domain.Like{}
	}
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	return &p, nil
}
