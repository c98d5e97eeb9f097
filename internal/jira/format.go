package jira

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
)

const (
	// maxPreviewLen caps how much of a single comment body is carried into
	// the issue description.
	maxPreviewLen = 1000

	fallbackAuthor = "Unknown"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// RenderComments formats a comment thread as a bullet list, one entry per
// comment, separated by blank lines. Returns "" for an empty thread.
func RenderComments(comments []models.JiraComment) string {
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		lines = append(lines, renderComment(c))
	}
	return strings.Join(lines, "\n\n")
}

func renderComment(c models.JiraComment) string {
	author := c.Author.DisplayName
	if author == "" {
		author = fallbackAuthor
	}

	// Day granularity is enough; Jira timestamps start with YYYY-MM-DD.
	date := c.Created
	if len(date) > 10 {
		date = date[:10]
	}

	preview := truncate(stripTags(CommentText(c.Body)), maxPreviewLen)

	return fmt.Sprintf("- %s (%s):\n  %s", author, date, preview)
}

// CommentText extracts plain text from a raw comment body. Jira Cloud
// returns an ADF tree; Server/DC returns a string. Anything else renders
// empty.
func CommentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var doc models.ADFNode
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}

	var sb strings.Builder
	flattenADF(&sb, doc)
	return strings.TrimSpace(sb.String())
}

func flattenADF(sb *strings.Builder, node models.ADFNode) {
	if node.Text != "" {
		sb.WriteString(node.Text)
	}
	for _, child := range node.Content {
		flattenADF(sb, child)
	}
	// Block nodes end a line of text.
	switch node.Type {
	case "paragraph", "heading", "listItem", "codeBlock", "blockquote":
		sb.WriteString("\n")
	}
}

// stripTags removes HTML tags with a single regexp pass. Comment bodies are
// previews, not rendered output, so this does not need a real parser.
func stripTags(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// truncate caps a string at max characters, not bytes, so multi-byte
// text is never cut mid-rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
