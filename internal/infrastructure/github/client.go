// Package github fetches public repository listings for profile pages.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	profileusecase "devconnector/backend/internal/usecase/profile"
)

const defaultBaseURL = "https://api.github.com"

// Client queries the GitHub REST API for a user's repositories.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

// NewClient constructs a client. Client id and secret are optional; when set
// they are forwarded to raise the unauthenticated rate limit.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      defaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Ensure Client implements the RepoFetcher interface.
var _ profileusecase.RepoFetcher = (*Client)(nil)

// Repos returns the five most recent public repositories for a username as
// raw JSON. Any non-200 upstream response is reported as ErrNoGithubProfile.
func (c *Client) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	query := req.URL.Query()
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if c.clientID != "" {
		query.Set("client_id", c.clientID)
		query.Set("client_secret", c.clientSecret)
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", "devconnector")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, profileusecase.ErrNoGithubProfile
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}
