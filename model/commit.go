// Package model contains the data model shared by every stage of the
// changelog pipeline.
package model

// Commit represents one revision in output form.
type Commit struct {
	ID           string        `json:"commit"`
	FirstLine    string        `json:"first_line"`
	Body         string        `json:"body,omitempty"`
	Trailers     []Trailer     `json:"trailers,omitempty"`
	LinkedIssues []LinkedIssue `json:"linked_issues,omitempty"`
	Author       string        `json:"author"`
	AuthorEmail  string        `json:"author_email"`
	Timestamp    int64         `json:"timestamp"`
	// Contributors is populated by the contributor resolver after the core
	// pipeline has run. The pipeline itself never reads or writes it.
	Contributors []Contributor `json:"contributors,omitempty"`
}

func (c *Commit) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

// LinkedIssue is a reference from a commit message to an issue tracker entry,
// inferred from closing keywords. Owner and Repo are empty for same-project
// references.
type LinkedIssue struct {
	Number uint64 `json:"number"`
	Owner  string `json:"owner,omitempty"`
	Repo   string `json:"repo,omitempty"`
}

// Tag is a semantic-version tag resolved to its target commit. Tags are
// recomputed from the live tag set on every run, never persisted.
type Tag struct {
	Name      string `json:"name"`
	Commit    string `json:"commit"`
	Timestamp int64  `json:"timestamp"`
}

func (t Tag) ShortCommit() string {
	if len(t.Commit) < 8 {
		return t.Commit
	}
	return t.Commit[:8]
}

// Contributor is a hosted-platform account associated with a commit.
type Contributor struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bot       bool   `json:"is_bot,omitempty"`
	AI        bool   `json:"is_ai,omitempty"`
}
