package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	postdomain "devconnector/backend/internal/domain/post"
	domain "devconnector/backend/internal/domain/profile"
	userdomain "devconnector/backend/internal/domain/user"

	"github.com/google/uuid"
)

// ErrNoGithubProfile indicates the upstream GitHub lookup found nothing.
var ErrNoGithubProfile = errors.New("no github profile found")

// RepoFetcher abstracts the GitHub repository lookup.
type RepoFetcher interface {
	Repos(ctx context.Context, username string) (json.RawMessage, error)
}

// Service manages developer profiles and account deletion.
type Service struct {
	profiles domain.Repository
	users    userdomain.Repository
	posts    postdomain.Repository
	repos    RepoFetcher
	nowFunc  func() time.Time
}

// NewService constructs a profile service.
func NewService(profiles domain.Repository, users userdomain.Repository, posts postdomain.Repository, repos RepoFetcher) *Service {
	return &Service{
		profiles: profiles,
		users:    users,
		posts:    posts,
		repos:    repos,
		nowFunc:  time.Now,
	}
}

// UpsertInput carries the writable profile fields. Skills is the raw
// comma-separated form submitted by clients.
type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// Me returns the caller's own profile.
func (s *Service) Me(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// List returns all profiles with owner name and avatar.
func (s *Service) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

// GetByUserID returns the profile belonging to the given user.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Upsert creates the caller's profile or updates it in place when one
// already exists. Only fields carrying a value in the input overwrite the
// stored profile; omitted fields keep their previous values, and existing
// experience and education entries are preserved.
func (s *Service) Upsert(ctx context.Context, userID string, in UpsertInput) (*domain.Profile, error) {
	now := s.nowFunc().UTC()

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		p = &domain.Profile{
			ID:         uuid.NewString(),
			User:       domain.Owner{ID: userID},
			Skills:     []string{},
			Experience: []domain.Experience{},
			Education:  []domain.Education{},
			CreatedAt:  now,
		}
	}

	setIfPresent(&p.Company, in.Company)
	setIfPresent(&p.Website, in.Website)
	setIfPresent(&p.Location, in.Location)
	setIfPresent(&p.Status, in.Status)
	setIfPresent(&p.Bio, in.Bio)
	setIfPresent(&p.GithubUsername, in.GithubUsername)
	if skills := splitSkills(in.Skills); len(skills) > 0 {
		p.Skills = skills
	}
	setIfPresent(&p.Social.Youtube, in.Youtube)
	setIfPresent(&p.Social.Twitter, in.Twitter)
	setIfPresent(&p.Social.Facebook, in.Facebook)
	setIfPresent(&p.Social.Linkedin, in.Linkedin)
	setIfPresent(&p.Social.Instagram, in.Instagram)
	p.UpdatedAt = now

	return s.profiles.Upsert(ctx, p)
}

func setIfPresent(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

// ExperienceInput carries a new work-history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddExperience prepends an experience entry to the caller's profile.
func (s *Service) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := domain.Experience{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: strings.TrimSpace(in.Description),
	}
	p.Experience = append([]domain.Experience{entry}, p.Experience...)
	p.UpdatedAt = s.nowFunc().UTC()

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveExperience deletes an experience entry by id.
func (s *Service) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range p.Experience {
		if e.ID == expID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.ErrExperienceNotFound
	}
	p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)
	p.UpdatedAt = s.nowFunc().UTC()

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// EducationInput carries a new education-history entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// AddEducation prepends an education entry to the caller's profile.
func (s *Service) AddEducation(ctx context.Context, userID string, in EducationInput) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := domain.Education{
		ID:           uuid.NewString(),
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  strings.TrimSpace(in.Description),
	}
	p.Education = append([]domain.Education{entry}, p.Education...)
	p.UpdatedAt = s.nowFunc().UTC()

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveEducation deletes an education entry by id.
func (s *Service) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range p.Education {
		if e.ID == eduID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.ErrEducationNotFound
	}
	p.Education = append(p.Education[:idx], p.Education[idx+1:]...)
	p.UpdatedAt = s.nowFunc().UTC()

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteAccount removes the caller's posts, profile and user record. A
// missing profile is not an error; the account may never have created one.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.posts.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil &&
		!errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}
	return s.users.Delete(ctx, userID)
}

// GithubRepos proxies the user's most recent public repositories.
func (s *Service) GithubRepos(ctx context.Context, username string) (json.RawMessage, error) {
	return s.repos.Repos(ctx, username)
}

func splitSkills(raw string) []string {
	parts := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
