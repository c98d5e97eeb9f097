package models

// IssueSearchResult is the GitHub issue search response.
type IssueSearchResult struct {
	TotalCount int           `json:"total_count"`
	Items      []SearchIssue `json:"items"`
}

// SearchIssue is a single match from the issue search API.
type SearchIssue struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	State   string `json:"state"`
}

// CreateIssueRequest is the GitHub issue creation request body.
type CreateIssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// CreatedIssue is the relevant subset of the issue creation response.
type CreatedIssue struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}
