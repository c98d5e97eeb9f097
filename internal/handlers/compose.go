package handlers

import (
	"strings"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
)

const (
	noDescription = "(no description)"
	noComments    = "(no comments)"
)

// composeTitle builds "{issueKey}: {summary}", with the flow's tag (if any)
// prepended to the summary inside the title.
func composeTitle(issueKey, tag, summary string) string {
	if tag != "" {
		summary = tag + " " + summary
	}
	return issueKey + ": " + summary
}

// SplitTitle is the inverse of composeTitle: it recovers the issue key and
// summary by splitting on the first ": ".
func SplitTitle(title string) (issueKey, summary string) {
	if idx := strings.Index(title, ": "); idx != -1 {
		return title[:idx], title[idx+2:]
	}
	return title, ""
}

// composeBody builds the GitHub issue body from fixed sections: the agent
// directive, the ticket description, the aggregated Jira comments, a source
// link, and (research only) follow-up instructions.
func composeBody(f flow, p *models.WebhookPayload, commentsText, sourceURL string) string {
	description := p.Description
	if strings.TrimSpace(description) == "" {
		description = noDescription
	}

	var sb strings.Builder
	sb.WriteString(f.directive(p))
	sb.WriteString("\n\n## Description\n\n")
	sb.WriteString(description)
	sb.WriteString("\n\n## Jira Comments\n\n")
	sb.WriteString(commentsText)
	sb.WriteString("\n\n## Source\n\n")
	sb.WriteString(sourceURL)

	if f.instructions != "" {
		sb.WriteString("\n\n## Instructions\n\n")
		sb.WriteString(f.instructions)
	}

	sb.WriteString("\n")
	return sb.String()
}
