package validation

import (
	"regexp"
	"strings"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/errors"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
)

// RequiredFields is the full set of required webhook payload fields, in the
// order they are reported back to callers.
var RequiredFields = []string{"issueKey", "summary", "repo"}

// repoPattern matches "owner/name" repository identifiers.
var repoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Validator provides validation methods
type Validator struct{}

// New creates a new validator instance
func New() *Validator {
	return &Validator{}
}

// ValidateWebhookPayload checks the inbound payload against the webhook
// contract. Any missing required field yields the missing_fields error with
// the complete required set.
func (v *Validator) ValidateWebhookPayload(p *models.WebhookPayload) *errors.AppError {
	if p == nil {
		return errors.MissingFields(RequiredFields)
	}

	if strings.TrimSpace(p.IssueKey) == "" ||
		strings.TrimSpace(p.Summary) == "" ||
		strings.TrimSpace(p.Repo) == "" {
		return errors.MissingFields(RequiredFields)
	}

	if !repoPattern.MatchString(p.Repo) {
		return errors.InvalidRequest("repo must be in owner/name format")
	}

	return nil
}
