package profile_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	postdomain "devconnector/backend/internal/domain/post"
	domain "devconnector/backend/internal/domain/profile"
	userdomain "devconnector/backend/internal/domain/user"
	"devconnector/backend/internal/usecase/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProfileRepo struct {
	byUser map[string]*domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{byUser: map[string]*domain.Profile{}}
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *memProfileRepo) List(_ context.Context) ([]*domain.Profile, error) {
	out := make([]*domain.Profile, 0, len(r.byUser))
	for _, p := range r.byUser {
		copy := *p
		out = append(out, &copy)
	}
	return out, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	if existing, ok := r.byUser[p.User.ID]; ok {
		updated := *p
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		updated.Experience = existing.Experience
		updated.Education = existing.Education
		r.byUser[p.User.ID] = &updated
	} else {
		copy := *p
		r.byUser[p.User.ID] = &copy
	}
	copy := *r.byUser[p.User.ID]
	return &copy, nil
}

func (r *memProfileRepo) Save(_ context.Context, p *domain.Profile) error {
	if _, ok := r.byUser[p.User.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	copy := *p
	r.byUser[p.User.ID] = &copy
	return nil
}

func (r *memProfileRepo) DeleteByUserID(_ context.Context, userID string) error {
	if _, ok := r.byUser[userID]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.byUser, userID)
	return nil
}

type memUserRepo struct {
	users map[string]*userdomain.User
}

func (r *memUserRepo) Create(context.Context, *userdomain.User) error { return nil }

func (r *memUserRepo) GetByEmail(context.Context, string) (*userdomain.User, error) {
	return nil, userdomain.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*userdomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return userdomain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type memPostRepo struct {
	posts map[string]*postdomain.Post
}

func (r *memPostRepo) Create(_ context.Context, p *postdomain.Post) error {
	r.posts[p.ID] = p
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*postdomain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, postdomain.ErrPostNotFound
	}
	return p, nil
}

func (r *memPostRepo) List(context.Context) ([]*postdomain.Post, error) { return nil, nil }

func (r *memPostRepo) Save(_ context.Context, p *postdomain.Post) error {
	r.posts[p.ID] = p
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) DeleteByUserID(_ context.Context, userID string) error {
	for id, p := range r.posts {
		if p.User == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

type stubRepoFetcher struct {
	body json.RawMessage
	err  error
}

func (f *stubRepoFetcher) Repos(context.Context, string) (json.RawMessage, error) {
	return f.body, f.err
}

type fixtures struct {
	svc      *profile.Service
	profiles *memProfileRepo
	users    *memUserRepo
	posts    *memPostRepo
	fetcher  *stubRepoFetcher
}

func newFixtures() fixtures {
	profiles := newMemProfileRepo()
	users := &memUserRepo{users: map[string]*userdomain.User{
		"u1": {ID: "u1", Name: "Alice", Avatar: "a.png"},
	}}
	posts := &memPostRepo{posts: map[string]*postdomain.Post{}}
	fetcher := &stubRepoFetcher{}
	return fixtures{
		svc:      profile.NewService(profiles, users, posts, fetcher),
		profiles: profiles,
		users:    users,
		posts:    posts,
		fetcher:  fetcher,
	}
}

func TestUpsert_SplitsSkills(t *testing.T) {
	f := newFixtures()

	p, err := f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{
		Status: "Developer",
		Skills: " Go,  SQL ,, JavaScript ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL", "JavaScript"}, p.Skills)
}

func TestUpsert_PartialUpdatePreservesFields(t *testing.T) {
	f := newFixtures()

	_, err := f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{
		Status:  "Dev",
		Skills:  "Go",
		Bio:     "hello",
		Company: "Acme",
		Twitter: "https://twitter.com/alice",
	})
	require.NoError(t, err)

	p, err := f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{
		Status: "Senior Dev",
		Skills: "Go,SQL",
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Dev", p.Status)
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills)
	assert.Equal(t, "hello", p.Bio, "omitted fields must keep their stored values")
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "https://twitter.com/alice", p.Social.Twitter)
}

func TestUpsert_BlankSkillsKeepStoredList(t *testing.T) {
	f := newFixtures()

	p, err := f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{Status: "Dev", Skills: " , "})
	require.NoError(t, err)
	assert.Equal(t, []string{}, p.Skills)

	_, err = f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	p, err = f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{Status: "Dev", Skills: " , "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, p.Skills)
}

func TestUpsert_PreservesHistoryOnUpdate(t *testing.T) {
	f := newFixtures()

	_, err := f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	_, err = f.svc.AddExperience(context.Background(), "u1", profile.ExperienceInput{
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	p, err := f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{Status: "Senior Dev", Skills: "Go,SQL"})
	require.NoError(t, err)
	assert.Equal(t, "Senior Dev", p.Status)
	assert.Len(t, p.Experience, 1, "updating the profile must not drop history")
}

func TestExperience_AddAndRemove(t *testing.T) {
	f := newFixtures()

	_, err := f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	first, err := f.svc.AddExperience(context.Background(), "u1", profile.ExperienceInput{
		Title: "Junior", Company: "Acme", From: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, first.Experience, 1)

	second, err := f.svc.AddExperience(context.Background(), "u1", profile.ExperienceInput{
		Title: "Senior", Company: "Acme", From: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, second.Experience, 2)
	assert.Equal(t, "Senior", second.Experience[0].Title, "newest entry comes first")

	removed, err := f.svc.RemoveExperience(context.Background(), "u1", second.Experience[1].ID)
	require.NoError(t, err)
	require.Len(t, removed.Experience, 1)
	assert.Equal(t, "Senior", removed.Experience[0].Title)

	_, err = f.svc.RemoveExperience(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrExperienceNotFound)
}

func TestEducation_AddAndRemove(t *testing.T) {
	f := newFixtures()

	_, err := f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	p, err := f.svc.AddEducation(context.Background(), "u1", profile.EducationInput{
		School: "State U", Degree: "BSc", FieldOfStudy: "CS",
		From: time.Date(2014, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	p, err = f.svc.RemoveEducation(context.Background(), "u1", p.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)

	_, err = f.svc.RemoveEducation(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrEducationNotFound)
}

func TestAddExperience_RequiresProfile(t *testing.T) {
	f := newFixtures()

	_, err := f.svc.AddExperience(context.Background(), "u1", profile.ExperienceInput{
		Title: "Engineer", Company: "Acme", From: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestDeleteAccount_RemovesEverything(t *testing.T) {
	f := newFixtures()

	_, err := f.svc.Upsert(context.Background(), "u1", profile.UpsertInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)
	f.posts.posts["p1"] = &postdomain.Post{ID: "p1", User: "u1"}
	f.posts.posts["p2"] = &postdomain.Post{ID: "p2", User: "other"}

	require.NoError(t, f.svc.DeleteAccount(context.Background(), "u1"))

	assert.Empty(t, f.profiles.byUser)
	assert.Empty(t, f.users.users)
	assert.Len(t, f.posts.posts, 1, "other users' posts must survive")
}

func TestDeleteAccount_ToleratesMissingProfile(t *testing.T) {
	f := newFixtures()

	require.NoError(t, f.svc.DeleteAccount(context.Background(), "u1"))
	assert.Empty(t, f.users.users)
}

func TestGithubRepos(t *testing.T) {
	f := newFixtures()
	f.fetcher.body = json.RawMessage(`[{"name":"repo"}]`)

	body, err := f.svc.GithubRepos(context.Background(), "octocat")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"repo"}]`, string(body))

	f.fetcher.body = nil
	f.fetcher.err = profile.ErrNoGithubProfile
	_, err = f.svc.GithubRepos(context.Background(), "nobody")
	assert.ErrorIs(t, err, profile.ErrNoGithubProfile)
}
