package models

import "encoding/json"

// JiraCommentPage is the response of the issue comment listing endpoint.
type JiraCommentPage struct {
	Comments []JiraComment `json:"comments"`
}

// JiraComment is a single comment on a Jira issue. Body is kept raw because
// Jira Cloud returns an Atlassian Document Format tree while Server/DC
// returns a plain string; both are handled when extracting text.
type JiraComment struct {
	Author  JiraUser        `json:"author"`
	Created string          `json:"created"`
	Body    json.RawMessage `json:"body"`
}

// JiraUser identifies a comment author.
type JiraUser struct {
	DisplayName string `json:"displayName"`
}

// JiraTransitionList is the response of the transition listing endpoint.
type JiraTransitionList struct {
	Transitions []JiraTransition `json:"transitions"`
}

// JiraTransition is a named state change available on an issue.
type JiraTransition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ADFDoc is a minimal Atlassian Document Format document, used when posting
// comments back to Jira Cloud.
type ADFDoc struct {
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Content []ADFNode `json:"content"`
}

// ADFNode is a node in an ADF tree. Only the fields this service reads or
// writes are represented.
type ADFNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []ADFNode `json:"content,omitempty"`
}

// TextDoc builds a one-paragraph ADF document around plain text.
func TextDoc(text string) ADFDoc {
	return ADFDoc{
		Type:    "doc",
		Version: 1,
		Content: []ADFNode{
			{
				Type: "paragraph",
				Content: []ADFNode{
					{Type: "text", Text: text},
				},
			},
		},
	}
}
