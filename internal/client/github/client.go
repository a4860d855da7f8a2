package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/liftoff/internal/version"
	"github.com/garrettladley/liftoff/internal/xhttp"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 10 * time.Second
)

// ErrNoRelease is returned when the repository has not published a release.
var ErrNoRelease = errors.New("no published release")

// Repo identifies the repository releases are read from.
type Repo struct {
	Owner string
	Name  string
}

var LiftoffRepo = Repo{Owner: "garrettladley", Name: "liftoff"}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

func WithBaseURL(url string) Option {
	return func(client *Client) { client.baseURL = url }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: xhttp.NewHTTPClient(xhttp.WithTimeout(defaultTimeout)),
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Release struct {
	TagName     string    `json:"tag_name"`
	HTMLURL     string    `json:"html_url"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

func (c *Client) LatestRelease(ctx context.Context, repo Repo) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, repo.Owner, repo.Name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNoRelease
	default:
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var release Release
	if err := go_json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &release, nil
}

// CheckForUpdate reports the latest release and whether it is newer than
// current. Development builds are never considered outdated.
func (c *Client) CheckForUpdate(ctx context.Context, repo Repo, current string) (*Release, bool, error) {
	release, err := c.LatestRelease(ctx, repo)
	if err != nil {
		return nil, false, err
	}
	if release.Prerelease {
		return release, false, nil
	}
	return release, version.IsNewer(current, release.TagName), nil
}
