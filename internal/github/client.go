// Package github is a minimal client for the two GitHub REST endpoints this
// service needs: issue search and issue creation.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
)

const apiVersion = "2022-11-28"

// APIError carries the status and raw body of a failed GitHub API call.
type APIError struct {
	Status int
	Body   string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error: %d - %s", e.Status, e.Body)
}

// Client calls the GitHub REST API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a GitHub client. baseURL is normally
// https://api.github.com; tests point it at a local fake.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SearchIssues runs an issue search with the given query string.
func (c *Client) SearchIssues(ctx context.Context, query string) (*models.IssueSearchResult, error) {
	endpoint := fmt.Sprintf("%s/search/issues?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var result models.IssueSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return &result, nil
}

// CreateIssue creates an issue in the given "owner/name" repository. A
// non-201 response is returned as an *APIError carrying the raw error body.
func (c *Client) CreateIssue(ctx context.Context, repo string, in models.CreateIssueRequest) (*models.CreatedIssue, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/issues", c.baseURL, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var issue models.CreatedIssue
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, fmt.Errorf("failed to parse issue response: %w", err)
	}

	return &issue, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
}
