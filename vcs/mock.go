package vcs

import (
	"context"
	"strings"
	"time"

	"github.com/jeffrom/relnote/model"
)

// MockCommit is a scripted commit for Mock. Parents controls the DAG shape:
// nil means "previous commit in the scripted list" (linear history), an empty
// non-nil slice marks a root commit.
type MockCommit struct {
	ID          string
	Message     string
	Author      string
	AuthorEmail string
	Timestamp   int64
	Parents     []string
	// Paths holds the files changed against the first parent, or the full
	// tree listing for a root commit.
	Paths []string
}

// Mock replays a scripted commit list. Commits are scripted newest first,
// standing in for topological+time order.
type Mock struct {
	t       time.Time
	commits []MockCommit
	tags    []model.Tag
	head    string
	prefix  string
	origin  string
}

func NewMock() *Mock {
	return &Mock{t: time.Now()}
}

func (m *Mock) SetCommits(commits ...MockCommit) *Mock {
	final := make([]MockCommit, len(commits))
	for i, c := range commits {
		if c.Timestamp == 0 {
			c.Timestamp = m.t.Unix()
			m.t = m.t.Add(-time.Minute)
		}
		final[i] = c
	}
	m.commits = final
	if m.head == "" && len(final) > 0 {
		m.head = final[0].ID
	}
	return m
}

// Tag records a tag pointing at a scripted commit. Call after SetCommits.
func (m *Mock) Tag(name, commit string) *Mock {
	ts := int64(0)
	if c := m.find(commit); c != nil {
		ts = c.Timestamp
	}
	m.tags = append(m.tags, model.Tag{Name: name, Commit: commit, Timestamp: ts})
	return m
}

func (m *Mock) SetHead(commit string) *Mock {
	m.head = commit
	return m
}

func (m *Mock) SetPathPrefix(prefix string) *Mock {
	m.prefix = prefix
	return m
}

func (m *Mock) SetOriginURL(url string) *Mock {
	m.origin = url
	return m
}

func (m *Mock) find(id string) *MockCommit {
	for i := range m.commits {
		if m.commits[i].ID == id {
			return &m.commits[i]
		}
	}
	return nil
}

func (m *Mock) parents(id string) []string {
	for i := range m.commits {
		if m.commits[i].ID != id {
			continue
		}
		if m.commits[i].Parents != nil {
			return m.commits[i].Parents
		}
		if i+1 < len(m.commits) {
			return []string{m.commits[i+1].ID}
		}
		return nil
	}
	return nil
}

func (m *Mock) reachable(id string) map[string]bool {
	seen := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		stack = append(stack, m.parents(cur)...)
	}
	return seen
}

func (m *Mock) ResolveCommit(ctx context.Context, ref string) (string, error) {
	if ref == "HEAD" && m.head != "" {
		return m.head, nil
	}
	for _, t := range m.tags {
		if t.Name == ref {
			return t.Commit, nil
		}
	}
	if c := m.find(ref); c != nil {
		return c.ID, nil
	}
	var match string
	for _, c := range m.commits {
		if strings.HasPrefix(c.ID, ref) {
			if match != "" {
				return "", NotFoundError{Ref: ref}
			}
			match = c.ID
		}
	}
	if match != "" {
		return match, nil
	}
	return "", NotFoundError{Ref: ref}
}

func (m *Mock) CurrentCommit(ctx context.Context) (string, error) {
	if m.head == "" {
		return "", NotFoundError{Ref: "HEAD"}
	}
	return m.head, nil
}

func (m *Mock) ReadTags(ctx context.Context) ([]model.Tag, error) {
	return m.tags, nil
}

func (m *Mock) WalkCommits(ctx context.Context, from, exclude string, fn func(RawCommit) error) error {
	if m.find(from) == nil {
		return NotFoundError{Ref: from}
	}
	include := m.reachable(from)
	var hidden map[string]bool
	if exclude != "" {
		hidden = m.reachable(exclude)
	}
	for _, c := range m.commits {
		if !include[c.ID] || hidden[c.ID] {
			continue
		}
		err := fn(RawCommit{
			ID:          c.ID,
			Message:     c.Message,
			Author:      c.Author,
			AuthorEmail: c.AuthorEmail,
			Timestamp:   c.Timestamp,
		})
		if err == ErrStopWalk {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Mock) CommitTouchesPath(ctx context.Context, commit, path string) (bool, error) {
	c := m.find(commit)
	if c == nil {
		return false, NotFoundError{Ref: commit}
	}
	for _, p := range c.Paths {
		if p == path || strings.HasPrefix(p, path+"/") {
			return true, nil
		}
	}
	return false, nil
}

func (m *Mock) ReadPathPrefix(ctx context.Context) (string, error) {
	return m.prefix, nil
}

func (m *Mock) ReadOriginURL(ctx context.Context, upstream string) (string, error) {
	return m.origin, nil
}
