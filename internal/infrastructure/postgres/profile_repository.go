package postgres

import (
	"context"
	"encoding/json"
	"errors"

	domain "devconnector/backend/internal/domain/profile"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository persists profiles in PostgreSQL. Embedded arrays
// (skills, social, experience, education) are stored as JSONB documents.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository constructs a repository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Ensure ProfileRepository implements the domain interface.
var _ domain.Repository = (*ProfileRepository)(nil)

const profileColumns = `
p.id, p.user_id, u.name, u.avatar,
p.company, p.website, p.location, p.status, p.skills, p.bio, p.githubusername,
p.social, p.experience, p.education, p.created_at, p.updated_at
`

// GetByUserID fetches the profile owned by a user, joined with the owner's
// name and avatar.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
SELECT ` + profileColumns + `
FROM profiles p JOIN users u ON u.id = p.user_id
WHERE p.user_id = $1
`
	row := r.pool.QueryRow(ctx, query, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns all profiles with owner name and avatar.
func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	query := `
SELECT ` + profileColumns + `
FROM profiles p JOIN users u ON u.id = p.user_id
ORDER BY p.created_at DESC
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert inserts a profile or, when the user already has one, updates the
// writable fields in place. Experience and education entries of an existing
// profile are preserved.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	skills, social, experience, education, err := marshalProfileDocs(p)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO profiles (id, user_id, company, website, location, status, skills,
                      bio, githubusername, social, experience, education,
                      created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (user_id) DO UPDATE SET
    company = EXCLUDED.company,
    website = EXCLUDED.website,
    location = EXCLUDED.location,
    status = EXCLUDED.status,
    skills = EXCLUDED.skills,
    bio = EXCLUDED.bio,
    githubusername = EXCLUDED.githubusername,
    social = EXCLUDED.social,
    updated_at = EXCLUDED.updated_at
`
	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.User.ID,
		p.Company,
		p.Website,
		p.Location,
		p.Status,
		skills,
		p.Bio,
		p.GithubUsername,
		social,
		experience,
		education,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, p.User.ID)
}

// Save overwrites the mutable fields of an existing profile, including the
// embedded experience and education arrays.
func (r *ProfileRepository) Save(ctx context.Context, p *domain.Profile) error {
	skills, social, experience, education, err := marshalProfileDocs(p)
	if err != nil {
		return err
	}

	const query = `
UPDATE profiles
SET company = $2, website = $3, location = $4, status = $5, skills = $6,
    bio = $7, githubusername = $8, social = $9, experience = $10,
    education = $11, updated_at = $12
WHERE user_id = $1
`
	ct, err := r.pool.Exec(ctx, query,
		p.User.ID,
		p.Company,
		p.Website,
		p.Location,
		p.Status,
		skills,
		p.Bio,
		p.GithubUsername,
		social,
		experience,
		education,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// DeleteByUserID removes the profile owned by a user.
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	const query = `DELETE FROM profiles WHERE user_id = $1`
	ct, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func marshalProfileDocs(p *domain.Profile) (skills, social, experience, education []byte, err error) {
	if skills, err = json.Marshal(p.Skills); err != nil {
		return nil, nil, nil, nil, err
	}
	if social, err = json.Marshal(p.Social); err != nil {
		return nil, nil, nil, nil, err
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, nil, err
	}
	if education, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, nil, err
	}
	return skills, social, experience, education, nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p          domain.Profile
		skills     []byte
		social     []byte
		experience []byte
		education  []byte
	)
	err := row.Scan(
		&p.ID,
		&p.User.ID,
		&p.User.Name,
		&p.User.Avatar,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Status,
		&skills,
		&p.Bio,
		&p.GithubUsername,
		&social,
		&experience,
		&education,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(social, &p.Social); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, err
	}
	if p.Experience == nil {
		p.Experience = []domain.Experience{}
	}
	if p.Education == nil {
		p.Education = []domain.Education{}
	}
	return &p, nil
}
