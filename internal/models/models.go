package models

// WebhookPayload is the inbound request body sent by Jira automation rules.
type WebhookPayload struct {
	IssueKey    string `json:"issueKey"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Repo        string `json:"repo"` // "owner/name"
	Ref         string `json:"ref,omitempty"`
}

// WebhookResponse is the success response for both webhook endpoints.
type WebhookResponse struct {
	OK             bool              `json:"ok"`
	Skipped        bool              `json:"skipped,omitempty"`
	Reason         string            `json:"reason,omitempty"`
	Action         string            `json:"action,omitempty"`
	IssueNumber    int               `json:"issue_number,omitempty"`
	IssueURL       string            `json:"issue_url,omitempty"`
	JiraTransition *TransitionResult `json:"jira_transition,omitempty"`
}

// TransitionResult reports the advisory outcome of the Jira status
// transition. It never affects the overall response status.
type TransitionResult struct {
	Success    bool     `json:"success"`
	Transition string   `json:"transition,omitempty"`
	Error      string   `json:"error,omitempty"`
	Status     int      `json:"status,omitempty"`
	Details    string   `json:"details,omitempty"`
	Available  []string `json:"available,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Details  string   `json:"details,omitempty"`
	Required []string `json:"required,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}
