package commit

import (
	"context"

	"github.com/jeffrom/relnote/model"
	"github.com/jeffrom/relnote/vcs"
)

// ReadHistory walks the resolved range newest first, parsing each commit's
// message as it is discovered. When pathScope is non-empty, commits whose
// first-parent diff doesn't touch the scoped path are dropped entirely.
// Traversal errors are fatal; there is no partial result.
func (a *Analyzer) ReadHistory(ctx context.Context, rng Range, pathScope string) ([]*model.Commit, error) {
	var commits []*model.Commit
	err := a.vcs.WalkCommits(ctx, rng.From, rng.To, func(rc vcs.RawCommit) error {
		if pathScope != "" {
			ok, err := a.vcs.CommitTouchesPath(ctx, rc.ID, pathScope)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		commits = append(commits, NewCommit(rc))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// NewCommit converts one raw revision into the output model, parsing its
// message into first line, body, trailers and linked issues.
func NewCommit(rc vcs.RawCommit) *model.Commit {
	msg := ParseMessage(rc.Message)
	return &model.Commit{
		ID:           rc.ID,
		FirstLine:    msg.FirstLine,
		Body:         msg.Body,
		Trailers:     msg.Trailers,
		LinkedIssues: msg.LinkedIssues,
		Author:       rc.Author,
		AuthorEmail:  rc.AuthorEmail,
		Timestamp:    rc.Timestamp,
	}
}
