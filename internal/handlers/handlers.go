package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/errors"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/github"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/jira"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/logger"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/metrics"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/validation"
)

// secretHeader is the optional shared-secret header on inbound webhooks.
const secretHeader = "X-Webhook-Secret"

// flow describes how the two webhook endpoints diverge. Everything else in
// the pipeline is shared.
type flow struct {
	name         string   // metric label and response action
	labels       []string // labels on the created GitHub issue
	searchExtra  string   // appended to the dedup search query
	titleTag     string   // prepended to the summary inside the title
	transition   bool     // whether to move the Jira ticket to in-progress
	instructions string   // extra trailing section in the issue body
	directive    func(p *models.WebhookPayload) string
	notifyText   func(issueURL string) string
}

var implementFlow = flow{
	name:        "implement",
	labels:      []string{"from-jira", "ai-task"},
	searchExtra: "",
	titleTag:    "",
	transition:  true,
	directive: func(p *models.WebhookPayload) string {
		return fmt.Sprintf("@agent implement this ticket on branch '%s'.", p.Ref)
	},
	notifyText: func(issueURL string) string {
		return "An automated agent has started work on this ticket. GitHub issue: " + issueURL
	},
}

var researchFlow = flow{
	name:        "research",
	labels:      []string{"from-jira", "ai-research"},
	searchExtra: " label:ai-research state:open",
	titleTag:    "[AI Research]",
	transition:  false,
	instructions: "When research is complete, post the findings back to this Jira ticket as a comment, " +
		"move the ticket to \"To Do\", and unassign it. A separate workflow picks the ticket up from there.",
	directive: func(p *models.WebhookPayload) string {
		return "@agent research this ticket and write up findings."
	},
	notifyText: func(issueURL string) string {
		return "An automated research agent has picked up this ticket. GitHub issue: " + issueURL
	},
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	gh        *github.Client
	jira      *jira.Client
	validator *validation.Validator
	log       *logger.Logger
	secret    string
}

// New creates a new handler instance. secret may be empty, which disables
// the shared-secret check.
func New(gh *github.Client, jiraClient *jira.Client, secret string, log *logger.Logger) *Handler {
	return &Handler{
		gh:        gh,
		jira:      jiraClient,
		validator: validation.New(),
		log:       log,
		secret:    secret,
	}
}

// ImplementWebhook handles the implementation-request webhook: it creates a
// GitHub issue for the ticket and moves the ticket to an in-progress state.
func (h *Handler) ImplementWebhook(w http.ResponseWriter, r *http.Request) {
	h.handleFlow(w, r, implementFlow)
}

// ResearchWebhook handles the research-request webhook. It tracks research
// issues independently of implementation issues (extra label and open-state
// filter on dedup) and never transitions the ticket.
func (h *Handler) ResearchWebhook(w http.ResponseWriter, r *http.Request) {
	h.handleFlow(w, r, researchFlow)
}

// handleFlow runs the shared pipeline: validate, dedup, aggregate comments,
// create the GitHub issue, then best-effort transition and notification.
// Only issue creation is fatal; every Jira step degrades gracefully.
//
// Dedup is a read-then-act check with no coordination, so two concurrent
// duplicate webhooks can both create an issue.
func (h *Handler) handleFlow(w http.ResponseWriter, r *http.Request, f flow) {
	if r.Method != http.MethodPost {
		metrics.WebhooksTotal.WithLabelValues(f.name, "rejected").Inc()
		h.writeAppError(w, errors.MethodNotAllowed())
		return
	}

	if appErr := h.checkSecret(r); appErr != nil {
		metrics.WebhooksTotal.WithLabelValues(f.name, "rejected").Inc()
		h.writeAppError(w, appErr)
		return
	}

	var payload models.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		metrics.WebhooksTotal.WithLabelValues(f.name, "rejected").Inc()
		h.writeAppError(w, errors.InvalidRequest("invalid JSON body: "+err.Error()))
		return
	}

	if appErr := h.validator.ValidateWebhookPayload(&payload); appErr != nil {
		metrics.WebhooksTotal.WithLabelValues(f.name, "rejected").Inc()
		h.writeAppError(w, appErr)
		return
	}

	if payload.Ref == "" {
		payload.Ref = "main"
	}

	ctx := r.Context()
	log := h.log.With("flow", f.name).With("issue_key", payload.IssueKey)

	// Dedup against existing issues. Best effort: a failed search never
	// blocks creation.
	query := fmt.Sprintf("%q repo:%s type:issue%s", payload.IssueKey, payload.Repo, f.searchExtra)
	search, err := h.gh.SearchIssues(ctx, query)
	if err != nil {
		metrics.AdvisoryFailuresTotal.WithLabelValues("dedup").Inc()
		log.Warnf("dedup search failed, proceeding: %v", err)
	} else if search.TotalCount > 0 && len(search.Items) > 0 {
		// Both checks: search responses can report a positive total_count
		// with an empty items page, which is "no usable match".
		existing := search.Items[0]
		log.Infof("issue already exists (#%d), skipping", existing.Number)
		metrics.WebhooksTotal.WithLabelValues(f.name, "skipped").Inc()
		h.writeJSON(w, models.WebhookResponse{
			OK:          true,
			Skipped:     true,
			Reason:      "issue_already_exists",
			IssueNumber: existing.Number,
		}, http.StatusOK)
		return
	}

	commentsText := noComments
	if comments, err := h.jira.FetchComments(ctx, payload.IssueKey); err != nil {
		metrics.AdvisoryFailuresTotal.WithLabelValues("comments").Inc()
		log.Warnf("comment fetch failed, using placeholder: %v", err)
	} else if rendered := jira.RenderComments(comments); rendered != "" {
		commentsText = rendered
	}

	title := composeTitle(payload.IssueKey, f.titleTag, payload.Summary)
	body := composeBody(f, &payload, commentsText, h.jira.BrowseURL(payload.IssueKey))

	issue, err := h.gh.CreateIssue(ctx, payload.Repo, models.CreateIssueRequest{
		Title:  title,
		Body:   body,
		Labels: f.labels,
	})
	if err != nil {
		log.Error("issue creation failed", err)
		metrics.WebhooksTotal.WithLabelValues(f.name, "failed").Inc()
		h.writeAppError(w, errors.GitHubRequestFailed(githubErrorDetails(err)))
		return
	}

	log.Infof("created issue #%d", issue.Number)
	metrics.IssuesCreatedTotal.WithLabelValues(f.name).Inc()

	resp := models.WebhookResponse{
		OK:          true,
		Action:      f.name,
		IssueNumber: issue.Number,
		IssueURL:    issue.HTMLURL,
	}

	if f.transition {
		result := h.jira.TransitionToInProgress(ctx, payload.IssueKey)
		if !result.Success {
			metrics.AdvisoryFailuresTotal.WithLabelValues("transition").Inc()
			log.Warnf("transition did not apply: %s", result.Error)
		}
		resp.JiraTransition = &result
	}

	if err := h.jira.PostComment(ctx, payload.IssueKey, f.notifyText(issue.HTMLURL)); err != nil {
		metrics.AdvisoryFailuresTotal.WithLabelValues("notify").Inc()
		log.Warnf("ticket notification failed: %v", err)
	}

	metrics.WebhooksTotal.WithLabelValues(f.name, "created").Inc()
	h.writeJSON(w, resp, http.StatusOK)
}

// checkSecret enforces the shared-secret header. The header is optional: a
// request without it passes even when a secret is configured. Only a present
// non-matching value is rejected.
func (h *Handler) checkSecret(r *http.Request) *errors.AppError {
	if h.secret == "" {
		return nil
	}

	provided := r.Header.Get(secretHeader)
	if provided == "" {
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		return errors.InvalidSecret()
	}

	return nil
}

// githubErrorDetails extracts the raw upstream error body when available.
func githubErrorDetails(err error) string {
	if apiErr, ok := err.(*github.APIError); ok {
		return apiErr.Body
	}
	return err.Error()
}
