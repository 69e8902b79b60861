// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeffrom/relnote/model"
)

// NotFoundError indicates a user-supplied reference could not be resolved to
// a commit.
type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

// ErrStopWalk can be returned from a WalkCommits callback to end traversal
// early without an error.
var ErrStopWalk = errors.New("vcs: stop walk")

// RawCommit is one revision as read from the repository, before any message
// parsing has happened.
type RawCommit struct {
	ID          string
	Message     string
	Author      string
	AuthorEmail string
	Timestamp   int64
}

// Interface is the read-only capability surface the changelog pipeline
// depends on. Implementations never mutate repository state.
type Interface interface {
	// ResolveCommit resolves a reference (hash, tag, branch, relative ref)
	// to a full commit id, returning NotFoundError when it doesn't exist.
	ResolveCommit(ctx context.Context, ref string) (string, error)
	// CurrentCommit returns the commit id of the repository head.
	CurrentCommit(ctx context.Context) (string, error)
	// ReadTags lists all tags with their peeled target commit and that
	// commit's author timestamp. Tags that cannot be dereferenced to a
	// commit are omitted.
	ReadTags(ctx context.Context) ([]model.Tag, error)
	// WalkCommits traverses ancestors of from in topological order with a
	// time tie-break, newest first, excluding everything reachable from
	// exclude when non-empty. fn may return ErrStopWalk to end the walk.
	WalkCommits(ctx context.Context, from, exclude string, fn func(RawCommit) error) error
	// CommitTouchesPath reports whether a commit is relevant to path: for a
	// root commit, whether path exists in its tree; otherwise whether the
	// diff against its first parent touches path.
	CommitTouchesPath(ctx context.Context, commit, path string) (bool, error)
	// ReadPathPrefix returns the working directory's path relative to the
	// repository root, without a trailing slash. Empty at the root.
	ReadPathPrefix(ctx context.Context) (string, error)
	// ReadOriginURL returns the URL of the named remote, or "" when the
	// repository has none.
	ReadOriginURL(ctx context.Context, upstream string) (string, error)
}
