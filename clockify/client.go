package clockify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"clockdump/timedata"
)

const apiKeyHeader = "X-Api-Key"

// Client defines the Clockify API operations used by the fetcher.
type Client interface {
	CurrentUser(ctx context.Context) (timedata.User, error)
	ListProjects(ctx context.Context, workspaceID string, page Page) ([]timedata.Project, error)
	ListTasks(ctx context.Context, workspaceID, projectID string, page Page) ([]timedata.Task, error)
	ListTimeEntries(ctx context.Context, workspaceID, userID string, page Page) ([]timedata.TimeEntry, error)
}

// Page selects one 1-based page of a listing endpoint.
type Page struct {
	Number int
	Size   int
}

func (p Page) query() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(p.Number))
	values.Set("page-size", strconv.Itoa(p.Size))
	return values
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient httpDoer
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient httpDoer
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request %s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (timedata.User, error) {
	var out timedata.User
	if err := c.getJSON(ctx, "/user", nil, &out); err != nil {
		return timedata.User{}, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return timedata.User{}, errors.New("decode response GET /user: missing user id")
	}
	return out, nil
}

func (c *HTTPClient) ListProjects(ctx context.Context, workspaceID string, page Page) ([]timedata.Project, error) {
	path := fmt.Sprintf("/workspaces/%s/projects", url.PathEscape(workspaceID))
	var out []timedata.Project
	if err := c.getJSON(ctx, path, page.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context, workspaceID, projectID string, page Page) ([]timedata.Task, error) {
	path := fmt.Sprintf("/workspaces/%s/projects/%s/tasks", url.PathEscape(workspaceID), url.PathEscape(projectID))
	var out []timedata.Task
	if err := c.getJSON(ctx, path, page.query(), &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].ProjectID == "" {
			out[i].ProjectID = projectID
		}
	}
	return out, nil
}

func (c *HTTPClient) ListTimeEntries(ctx context.Context, workspaceID, userID string, page Page) ([]timedata.TimeEntry, error) {
	path := fmt.Sprintf("/workspaces/%s/user/%s/time-entries", url.PathEscape(workspaceID), url.PathEscape(userID))
	var out []timedata.TimeEntry
	if err := c.getJSON(ctx, path, page.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpointPath string, query url.Values, out any) error {
	target := c.baseURL + endpointPath
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request GET %s: %w", endpointPath, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request GET %s failed: %w", endpointPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			Method:     http.MethodGet,
			Path:       endpointPath,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(responseBody)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response GET %s: %w", endpointPath, err)
	}
	return nil
}
