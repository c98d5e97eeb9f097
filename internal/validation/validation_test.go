package validation

import (
	"testing"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/errors"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
)

func TestValidateWebhookPayload(t *testing.T) {
	v := New()

	valid := models.WebhookPayload{
		IssueKey: "ABC-123",
		Summary:  "Fix the widget",
		Repo:     "acme/widgets",
	}

	tests := []struct {
		name     string
		mutate   func(*models.WebhookPayload)
		wantCode errors.ErrorCode
	}{
		{"valid", func(p *models.WebhookPayload) {}, ""},
		{"missing issueKey", func(p *models.WebhookPayload) { p.IssueKey = "" }, errors.ErrCodeMissingFields},
		{"missing summary", func(p *models.WebhookPayload) { p.Summary = "  " }, errors.ErrCodeMissingFields},
		{"missing repo", func(p *models.WebhookPayload) { p.Repo = "" }, errors.ErrCodeMissingFields},
		{"repo without owner", func(p *models.WebhookPayload) { p.Repo = "widgets" }, errors.ErrCodeInvalidRequest},
		{"repo with extra slash", func(p *models.WebhookPayload) { p.Repo = "a/b/c" }, errors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := v.ValidateWebhookPayload(&p)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", err.Code, tt.wantCode)
			}
		})
	}
}

func TestMissingFieldsNamesFullContract(t *testing.T) {
	v := New()

	err := v.ValidateWebhookPayload(&models.WebhookPayload{Summary: "only summary"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	want := []string{"issueKey", "summary", "repo"}
	if len(err.Required) != len(want) {
		t.Fatalf("required = %v, want %v", err.Required, want)
	}
	for i, f := range want {
		if err.Required[i] != f {
			t.Errorf("required[%d] = %q, want %q", i, err.Required[i], f)
		}
	}
}
