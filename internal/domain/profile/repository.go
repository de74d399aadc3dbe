package profile

import "context"

// Repository defines persistence operations for profiles. Reads return the
// owner's name and avatar joined from the users table.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Upsert(ctx context.Context, p *Profile) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	DeleteByUserID(ctx context.Context, userID string) error
}
