package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	profileusecase "devconnector/backend/internal/usecase/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Repos(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"repo-one"},{"name":"repo-two"}]`))
	}))
	defer srv.Close()

	c := NewClient("client-id", "client-secret")
	c.SetBaseURL(srv.URL)

	body, err := c.Repos(context.Background(), "octocat")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"repo-one"},{"name":"repo-two"}]`, string(body))
	assert.Equal(t, "/users/octocat/repos", gotPath)
	assert.Contains(t, gotQuery, "per_page=5")
	assert.Contains(t, gotQuery, "client_id=client-id")
}

func TestClient_Repos_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient("", "")
	c.SetBaseURL(srv.URL)

	_, err := c.Repos(context.Background(), "nobody")
	assert.ErrorIs(t, err, profileusecase.ErrNoGithubProfile)
}

func TestClient_Repos_OmitsCredentialsWhenUnset(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient("", "")
	c.SetBaseURL(srv.URL)

	_, err := c.Repos(context.Background(), "octocat")
	require.NoError(t, err)
	assert.NotContains(t, gotQuery, "client_id")
}
