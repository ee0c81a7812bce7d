// Package client is the data layer consumed by SudharNayak frontends: a
// single HTTP client for the REST API plus the external helpers (reverse
// geocoding, image upload) the views need before submitting a report.
//
// The session is explicit: callers construct a Client with (or attach) a
// Session instead of the client reading ambient storage. When a session is
// present its bearer token is attached to every outgoing request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sudharnayak-be/models"
)

// Session is the persisted login state: the bearer token and the profile
// it was issued for.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Config configures a Client. BaseURL points at the API root, e.g.
// "https://sudharnayak.example.com/api".
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *Session
}

// Client is the SudharNayak API client.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// Generous timeout for slow server wake-up on free-tier hosting.
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		session: cfg.Session,
	}
}

// WithSession returns a copy of the client authenticated as the given session.
func (c *Client) WithSession(s *Session) *Client {
	clone := *c
	clone.session = s
	return &clone
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Register creates a new account and returns the created profile.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and returns the session to hand to WithSession.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Me fetches the authenticated profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateIssueInput mirrors the POST /issues body.
type CreateIssueInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	Category    string           `json:"category,omitempty"`
	Location    *models.Location `json:"location,omitempty"`
}

func (c *Client) CreateIssue(ctx context.Context, input CreateIssueInput) (*models.Issue, error) {
	var issue models.Issue
	if err := c.do(ctx, http.MethodPost, "/issues", input, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// IssueFilter narrows ListIssues; empty fields impose no constraint.
type IssueFilter struct {
	Category string
	Status   string
}

func (c *Client) ListIssues(ctx context.Context, filter IssueFilter) ([]models.Issue, error) {
	path := "/issues"
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var issues []models.Issue
	if err := c.do(ctx, http.MethodGet, path, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *Client) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	var issue models.Issue
	if err := c.do(ctx, http.MethodGet, "/issues/"+url.PathEscape(id), nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) MyIssues(ctx context.Context) ([]models.Issue, error) {
	var issues []models.Issue
	if err := c.do(ctx, http.MethodGet, "/issues/my-issues", nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

type updateStatusRequest struct {
	Status models.IssueStatus `json:"status"`
}

func (c *Client) UpdateIssueStatus(ctx context.Context, id string, status models.IssueStatus) (*models.Issue, error) {
	var issue models.Issue
	if err := c.do(ctx, http.MethodPut, "/issues/"+url.PathEscape(id), updateStatusRequest{Status: status}, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) DeleteIssue(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/issues/"+url.PathEscape(id), nil, nil)
}

type addCommentRequest struct {
	Text string `json:"text"`
}

func (c *Client) AddComment(ctx context.Context, issueID, text string) (*models.Comment, error) {
	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, "/comments/"+url.PathEscape(issueID), addCommentRequest{Text: text}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) ListComments(ctx context.Context, issueID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.do(ctx, http.MethodGet, "/comments/"+url.PathEscape(issueID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// do performs one request/response round trip. No retries: a failure
// surfaces immediately to the caller.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
			if apiErr.Error != "" {
				message = apiErr.Error
			} else if apiErr.Message != "" {
				message = apiErr.Message
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
