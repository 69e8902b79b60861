// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeffrom/relnote/config"
	"github.com/jeffrom/relnote/model"
	"github.com/jeffrom/relnote/vcs"
)

// Git implements vcs.Interface using the git commandline tool. All
// operations are read-only.
type Git struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

func (g *Git) ResolveCommit(ctx context.Context, ref string) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "--verify", "--quiet", ref + "^{commit}"})
	if err != nil {
		return "", vcs.NotFoundError{Ref: ref}
	}
	id := string(bytes.TrimSpace(b))
	if id == "" {
		return "", vcs.NotFoundError{Ref: ref}
	}
	return id, nil
}

func (g *Git) CurrentCommit(ctx context.Context) (string, error) {
	return g.ResolveCommit(ctx, "HEAD")
}

// tagFormat peels annotated tags to their target commit and reads the
// target's author timestamp; lightweight tag refs point at the commit
// directly so the unpeeled fields apply.
const tagFormat = "--format=" +
	"%(refname:short)%00" +
	"%(if)%(*objectname)%(then)%(*objectname)%(else)%(objectname)%(end)%00" +
	"%(if)%(*authordate:unix)%(then)%(*authordate:unix)%(else)%(authordate:unix)%(end)"

func (g *Git) ReadTags(ctx context.Context) ([]model.Tag, error) {
	b, err := g.call(ctx, []string{"for-each-ref", "refs/tags", tagFormat})
	if err != nil {
		return nil, err
	}

	var tags []model.Tag
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	for scanner.Scan() {
		tag, ok := parseTagLine(scanner.Text())
		if !ok {
			g.cfg.Debugf("skipping tag that doesn't peel to a commit: %q", scanner.Text())
			continue
		}
		tags = append(tags, tag)
	}
	return tags, scanner.Err()
}

func parseTagLine(s string) (model.Tag, bool) {
	parts := strings.Split(s, "\x00")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return model.Tag{}, false
	}
	ts, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return model.Tag{}, false
	}
	return model.Tag{Name: parts[0], Commit: parts[1], Timestamp: ts}, true
}

const expectedLogParts = 5

func (g *Git) WalkCommits(ctx context.Context, from, exclude string, fn func(vcs.RawCommit) error) error {
	args := []string{
		"log", "--topo-order",
		"--pretty=tformat:_START_%H_SEP_%aN_SEP_%ae_SEP_%at_SEP_%B_END_",
		from,
	}
	if exclude != "" {
		args = append(args, "^"+exclude)
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return err
	}

	commits, err := parseLog(b)
	if err != nil {
		return err
	}
	for _, commit := range commits {
		if err := fn(commit); err != nil {
			if err == vcs.ErrStopWalk {
				return nil
			}
			return err
		}
	}
	return nil
}

func parseLog(b []byte) ([]vcs.RawCommit, error) {
	var commits []vcs.RawCommit
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s := scanner.Text()
		parts := strings.SplitN(s, "_SEP_", expectedLogParts)
		if len(parts) != expectedLogParts {
			return nil, fmt.Errorf("gitcli: expected %d parts from git log, got %d", expectedLogParts, len(parts))
		}

		commitID := parts[0]
		if !strings.HasPrefix(commitID, "_START_") {
			return nil, fmt.Errorf("gitcli: unexpected git log line: %q", s)
		}
		commitID = strings.TrimPrefix(commitID, "_START_")

		// the message can span multiple lines.
		var message string
		msgpart := parts[len(parts)-1]
		if strings.HasSuffix(msgpart, "_END_") {
			message = strings.TrimSuffix(msgpart, "_END_")
		} else {
			var msgb strings.Builder
			msgb.WriteString(msgpart)
			for scanner.Scan() {
				msgline := scanner.Text()
				if strings.HasSuffix(msgline, "_END_") {
					if trimmed := strings.TrimSuffix(msgline, "_END_"); trimmed != "" {
						msgb.WriteString("\n")
						msgb.WriteString(trimmed)
					}
					break
				}
				msgb.WriteString("\n")
				msgb.WriteString(msgline)
			}
			message = msgb.String()
		}

		ts, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("gitcli: bad author timestamp %q: %w", parts[3], err)
		}

		commits = append(commits, vcs.RawCommit{
			ID:          commitID,
			Message:     strings.TrimRight(message, "\n"),
			Author:      parts[1],
			AuthorEmail: parts[2],
			Timestamp:   ts,
		})
	}
	return commits, scanner.Err()
}

func (g *Git) CommitTouchesPath(ctx context.Context, commit, path string) (bool, error) {
	b, err := g.call(ctx, []string{"rev-list", "--parents", "-n", "1", commit})
	if err != nil {
		return false, err
	}
	fields := strings.Fields(string(b))
	if len(fields) == 0 {
		return false, fmt.Errorf("gitcli: no rev-list output for %q", commit)
	}

	if len(fields) == 1 {
		// root commit: relevant if the path exists anywhere in its tree
		out, err := g.call(ctx, []string{"ls-tree", "--name-only", commit, "--", path})
		if err != nil {
			return false, err
		}
		return len(bytes.TrimSpace(out)) > 0, nil
	}

	out, err := g.call(ctx, []string{
		"diff-tree", "--no-commit-id", "--name-only", "-r", fields[1], commit, "--", path,
	})
	if err != nil {
		return false, err
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}

func (g *Git) ReadPathPrefix(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "--show-prefix"})
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(bytes.TrimSpace(b)), "/"), nil
}

func (g *Git) ReadOriginURL(ctx context.Context, upstream string) (string, error) {
	if upstream == "" {
		upstream = "origin"
	}
	b, err := g.call(ctx, []string{"remote", "get-url", upstream})
	if err != nil {
		// no remote configured isn't an error for a local-only repository
		return "", nil
	}
	return string(bytes.TrimSpace(b)), nil
}
