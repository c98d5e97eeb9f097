package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/logger"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "", "bot@example.com", "jira-token", testLogger()), srv
}

func TestGatewayRouting(t *testing.T) {
	direct := NewClient("https://example.atlassian.net/", "", "e", "t", testLogger())
	if direct.apiBase != "https://example.atlassian.net/rest/api/3" {
		t.Errorf("direct apiBase = %q", direct.apiBase)
	}

	scoped := NewClient("https://example.atlassian.net", "cloud-123", "e", "t", testLogger())
	if scoped.apiBase != "https://api.atlassian.com/ex/jira/cloud-123/rest/api/3" {
		t.Errorf("scoped apiBase = %q", scoped.apiBase)
	}
	if scoped.BrowseURL("ABC-1") != "https://example.atlassian.net/browse/ABC-1" {
		t.Errorf("BrowseURL = %q, want site link even when scoped", scoped.BrowseURL("ABC-1"))
	}
}

func TestFetchComments(t *testing.T) {
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("bot@example.com:jira-token"))

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/issue/ABC-123/comment" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != wantAuth {
			t.Errorf("authorization = %q, want %q", got, wantAuth)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"comments": []map[string]any{
				{"author": map[string]string{"displayName": "Dana"}, "created": "2026-08-12T09:30:00.000+0000", "body": "hello"},
			},
		})
	}))

	comments, err := c.FetchComments(context.Background(), "ABC-123")
	if err != nil {
		t.Fatalf("FetchComments returned error: %v", err)
	}
	if len(comments) != 1 || comments[0].Author.DisplayName != "Dana" {
		t.Errorf("unexpected comments: %+v", comments)
	}
}

func TestFetchCommentsFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	if _, err := c.FetchComments(context.Background(), "ABC-123"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestTransitionFragmentPriority(t *testing.T) {
	var appliedID string

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(models.JiraTransitionList{Transitions: []models.JiraTransition{
				{ID: "11", Name: "Begin Work"},
				{ID: "21", Name: "Start Progress"},
			}})
			return
		}
		var req struct {
			Transition struct {
				ID string `json:"id"`
			} `json:"transition"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		appliedID = req.Transition.ID
		w.WriteHeader(http.StatusNoContent)
	}))

	result := c.TransitionToInProgress(context.Background(), "ABC-123")

	if !result.Success {
		t.Fatalf("transition failed: %+v", result)
	}
	// "start progress" precedes "begin" in the target list, so Start
	// Progress must win even though Begin Work is listed first.
	if result.Transition != "Start Progress" {
		t.Errorf("transition = %q, want Start Progress", result.Transition)
	}
	if appliedID != "21" {
		t.Errorf("applied id = %q, want 21", appliedID)
	}
}

func TestTransitionCaseInsensitive(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(models.JiraTransitionList{Transitions: []models.JiraTransition{
				{ID: "31", Name: "IN PROGRESS"},
			}})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	result := c.TransitionToInProgress(context.Background(), "ABC-123")
	if !result.Success || result.Transition != "IN PROGRESS" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestTransitionNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Error("transition apply attempted without a match")
		}
		json.NewEncoder(w).Encode(models.JiraTransitionList{Transitions: []models.JiraTransition{
			{ID: "41", Name: "Done"},
			{ID: "51", Name: "Blocked"},
		}})
	}))

	result := c.TransitionToInProgress(context.Background(), "ABC-123")

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "transition_not_found" {
		t.Errorf("error = %q", result.Error)
	}
	if len(result.Available) != 2 || result.Available[0] != "Done" {
		t.Errorf("available = %v", result.Available)
	}
}

func TestTransitionApplyFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(models.JiraTransitionList{Transitions: []models.JiraTransition{
				{ID: "11", Name: "In Progress"},
			}})
			return
		}
		http.Error(w, `{"errorMessages":["not allowed"]}`, http.StatusBadRequest)
	}))

	result := c.TransitionToInProgress(context.Background(), "ABC-123")

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error != "transition_failed" {
		t.Errorf("error = %q", result.Error)
	}
	if result.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", result.Status)
	}
}

func TestPostComment(t *testing.T) {
	var gotBody struct {
		Body models.ADFDoc `json:"body"`
	}

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/issue/ABC-123/comment" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))

	if err := c.PostComment(context.Background(), "ABC-123", "agent started"); err != nil {
		t.Fatalf("PostComment returned error: %v", err)
	}

	doc := gotBody.Body
	if doc.Type != "doc" || doc.Version != 1 {
		t.Errorf("doc envelope = %+v", doc)
	}
	if len(doc.Content) != 1 || doc.Content[0].Type != "paragraph" {
		t.Fatalf("doc content = %+v", doc.Content)
	}
	if doc.Content[0].Content[0].Text != "agent started" {
		t.Errorf("text = %q", doc.Content[0].Content[0].Text)
	}
}

func TestPostCommentFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))

	if err := c.PostComment(context.Background(), "ABC-123", "text"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
