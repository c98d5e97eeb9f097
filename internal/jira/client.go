// Package jira calls the Jira Cloud REST API for the comment and transition
// operations this service performs around issue creation.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/logger"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
)

// gatewayBase is the scoped token gateway for restricted-scope credentials.
// API calls route through it when a cloud ID is configured.
const gatewayBase = "https://api.atlassian.com/ex/jira"

// transitionTargets is the ordered list of name fragments tried when moving
// a ticket to an in-progress state. Earlier fragments win; matching is
// case-insensitive substring. Installations name this state differently,
// which is why the list is this long.
var transitionTargets = []string{
	"in progress",
	"start progress",
	"begin",
	"start work",
	"working",
}

// Client calls the Jira REST API with service-account basic auth.
type Client struct {
	apiBase    string
	browseBase string
	authHeader string
	http       *http.Client
	log        *logger.Logger
}

// NewClient creates a Jira client. baseURL is the site URL used for browse
// links; when cloudID is non-empty API calls go through the scoped token
// gateway instead of the site itself.
func NewClient(baseURL, cloudID, email, apiToken string, log *logger.Logger) *Client {
	base := strings.TrimRight(baseURL, "/")

	apiBase := base + "/rest/api/3"
	if cloudID != "" {
		apiBase = fmt.Sprintf("%s/%s/rest/api/3", gatewayBase, cloudID)
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(email + ":" + apiToken))

	return &Client{
		apiBase:    apiBase,
		browseBase: base,
		authHeader: "Basic " + encoded,
		http:       &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// BrowseURL returns the human-facing link for an issue key.
func (c *Client) BrowseURL(key string) string {
	return fmt.Sprintf("%s/browse/%s", c.browseBase, key)
}

// FetchComments returns the comment thread for an issue. Callers treat any
// error as "no comments available".
func (c *Client) FetchComments(ctx context.Context, key string) ([]models.JiraComment, error) {
	endpoint := fmt.Sprintf("%s/issue/%s/comment", c.apiBase, url.PathEscape(key))

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("comment fetch returned %d: %s", status, body)
	}

	var page models.JiraCommentPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse comment page: %w", err)
	}

	return page.Comments, nil
}

// TransitionToInProgress looks up the available transitions for an issue,
// picks the first one matching the ordered target fragments, and applies it.
// The result is always advisory: failures are reported in the returned
// value, never as an error.
func (c *Client) TransitionToInProgress(ctx context.Context, key string) models.TransitionResult {
	endpoint := fmt.Sprintf("%s/issue/%s/transitions", c.apiBase, url.PathEscape(key))

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.TransitionResult{Success: false, Error: "transition_lookup_failed", Details: err.Error()}
	}
	if status < 200 || status >= 300 {
		return models.TransitionResult{Success: false, Error: "transition_lookup_failed", Status: status, Details: string(body)}
	}

	var list models.JiraTransitionList
	if err := json.Unmarshal(body, &list); err != nil {
		return models.TransitionResult{Success: false, Error: "transition_lookup_failed", Details: err.Error()}
	}

	match, ok := pickTransition(list.Transitions)
	if !ok {
		available := make([]string, 0, len(list.Transitions))
		for _, t := range list.Transitions {
			available = append(available, t.Name)
		}
		return models.TransitionResult{Success: false, Error: "transition_not_found", Available: available}
	}

	payload, _ := json.Marshal(map[string]any{"transition": map[string]string{"id": match.ID}})

	body, status, err = c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return models.TransitionResult{Success: false, Error: "transition_failed", Transition: match.Name, Details: err.Error()}
	}
	if status < 200 || status >= 300 {
		return models.TransitionResult{Success: false, Error: "transition_failed", Transition: match.Name, Status: status, Details: string(body)}
	}

	return models.TransitionResult{Success: true, Transition: match.Name}
}

// pickTransition applies the ordered fragment policy: the first fragment
// that matches any transition name decides, not the closest overall match.
func pickTransition(transitions []models.JiraTransition) (models.JiraTransition, bool) {
	for _, target := range transitionTargets {
		for _, t := range transitions {
			if strings.Contains(strings.ToLower(t.Name), target) {
				return t, true
			}
		}
	}
	return models.JiraTransition{}, false
}

// PostComment adds a plain-text comment to an issue, wrapped in the ADF
// document structure Jira Cloud requires.
func (c *Client) PostComment(ctx context.Context, key, text string) error {
	endpoint := fmt.Sprintf("%s/issue/%s/comment", c.apiBase, url.PathEscape(key))

	payload, err := json.Marshal(map[string]any{"body": models.TextDoc(text)})
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	body, status, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("comment post returned %d: %s", status, body)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	c.log.Debugf("jira %s %s -> %d", method, endpoint, resp.StatusCode)
	return body, resp.StatusCode, nil
}
