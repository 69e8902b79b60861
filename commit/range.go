package commit

import (
	"context"
	"fmt"

	"github.com/jeffrom/relnote/config"
	"github.com/jeffrom/relnote/model"
	"github.com/jeffrom/relnote/vcs"
)

// Analyzer resolves release ranges and turns the commits they contain into
// classified output. It holds no state across runs.
type Analyzer struct {
	cfg config.Config
	vcs vcs.Interface
}

func NewAnalyzer(cfg config.Config, vc vcs.Interface) *Analyzer {
	return &Analyzer{
		cfg: cfg,
		vcs: vc,
	}
}

// Range is a resolved span of history: everything reachable from From,
// excluding everything reachable from To. To may be empty, in which case the
// walk covers history back to the root.
type Range struct {
	From string
	To   string
}

// ResolveRange translates optional from/to references into concrete commit
// ids, inferring a monorepo tag namespace from a prefixed from reference.
// When to is absent it falls back to, in order: the release immediately
// preceding from in the catalog, the newest release when from is the current
// head, and the nearest ancestor tag.
func (a *Analyzer) ResolveRange(ctx context.Context, from, to string) (Range, *Catalog, error) {
	prefix := ""
	if from != "" {
		if prefix = InferPrefix(from); prefix != "" {
			a.cfg.Debugf("using tag namespace %q", prefix)
		}
	}

	cat, err := LoadCatalog(ctx, a.vcs, prefix)
	if err != nil {
		return Range{}, nil, err
	}

	var fromID, fromLabel string
	if from == "" {
		id, err := a.vcs.CurrentCommit(ctx)
		if err != nil {
			return Range{}, nil, err
		}
		fromID = id
		fromLabel = fmt.Sprintf("HEAD (%s)", shortID(id))
	} else {
		id, err := a.vcs.ResolveCommit(ctx, from)
		if err != nil {
			return Range{}, nil, err
		}
		fromID = id
		fromLabel = annotate(cat, id)
	}

	var toID, toLabel string
	if to != "" {
		id, err := a.vcs.ResolveCommit(ctx, to)
		if err != nil {
			return Range{}, nil, err
		}
		toID = id
		toLabel = annotate(cat, id)
	} else if i, ok := cat.Position(fromID); ok {
		if i+1 < cat.Len() {
			prev := cat.At(i + 1)
			toID = prev.Commit
			toLabel = fmt.Sprintf("%s (%s)", prev.Name, prev.ShortCommit())
		}
		// from is the oldest release in the catalog: cover full history
	} else if !cat.Empty() {
		head, err := a.vcs.CurrentCommit(ctx)
		if err != nil {
			return Range{}, nil, err
		}
		if fromID == head {
			newest := cat.At(0)
			toID = newest.Commit
			toLabel = fmt.Sprintf("%s (%s)", newest.Name, newest.ShortCommit())
		} else {
			tag, found, err := a.closestTag(ctx, fromID, cat)
			if err != nil {
				return Range{}, nil, err
			}
			if found {
				toID = tag.Commit
				toLabel = fmt.Sprintf("%s (%s)", tag.Name, tag.ShortCommit())
			} else {
				a.cfg.Debugf("no ancestor release found, scanning full history")
			}
		}
	}

	if toLabel != "" {
		a.cfg.Printf("scanning from %s to %s", fromLabel, toLabel)
	} else {
		a.cfg.Printf("scanning from %s", fromLabel)
	}
	return Range{From: fromID, To: toID}, cat, nil
}

// closestTag walks ancestry from id and returns the first commit that is
// also a catalog tag target.
func (a *Analyzer) closestTag(ctx context.Context, id string, cat *Catalog) (model.Tag, bool, error) {
	var found model.Tag
	ok := false
	err := a.vcs.WalkCommits(ctx, id, "", func(rc vcs.RawCommit) error {
		if i, present := cat.Position(rc.ID); present {
			found = cat.At(i)
			ok = true
			return vcs.ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return model.Tag{}, false, err
	}
	return found, ok, nil
}

func annotate(cat *Catalog, id string) string {
	if name := cat.NameFor(id); name != "" {
		return fmt.Sprintf("%s (%s)", name, shortID(id))
	}
	return shortID(id)
}

func shortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}
