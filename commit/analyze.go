package commit

import (
	"context"
	"regexp"
	"strings"

	"github.com/jeffrom/relnote/model"
)

var conventionalRE = regexp.MustCompile(`(?i)^([a-z]+)(?:\(([a-z0-9-]+)\))?(!)?:\s+.+`)

var typeCategories = map[string]model.CommitCategory{
	"feat":     model.CategoryFeature,
	"fix":      model.CategoryFix,
	"docs":     model.CategoryDocumentation,
	"ci":       model.CategoryCI,
	"test":     model.CategoryTest,
	"perf":     model.CategoryPerformance,
	"chore":    model.CategoryChore,
	"refactor": model.CategoryRefactor,
}

// ParseHeader parses a conventional-commit first line into its case-folded
// type and scope and whether the breaking marker is present.
func ParseHeader(firstLine string) (typ, scope string, breaking, ok bool) {
	m := conventionalRE.FindStringSubmatch(firstLine)
	if m == nil {
		return "", "", false, false
	}
	return strings.ToLower(m[1]), strings.ToLower(m[2]), m[3] == "!", true
}

var conventionalPrefixRE = regexp.MustCompile(`(?i)^[a-z]+(?:\([a-z0-9-]+\))?!?:\s+`)

// StripConventionalPrefix removes the type/scope prefix from a conventional
// first line, leaving the description. Non-conventional lines pass through
// unchanged.
func StripConventionalPrefix(firstLine string) string {
	return conventionalPrefixRE.ReplaceAllString(firstLine, "")
}

// Categorize maps a commit to exactly one category, from its first line and
// trailers alone. Breaking-change signals take precedence over the type
// table, and a "deps" scope wins over any type.
func Categorize(c *model.Commit) model.CommitCategory {
	if hasBreakingTrailer(c.Trailers) {
		return model.CategoryBreaking
	}
	typ, scope, breaking, ok := ParseHeader(c.FirstLine)
	if !ok {
		return model.CategoryOther
	}
	if breaking {
		return model.CategoryBreaking
	}
	if scope == "deps" {
		return model.CategoryDependencies
	}
	if cat, ok := typeCategories[typ]; ok {
		return cat
	}
	return model.CategoryOther
}

func hasBreakingTrailer(trailers []model.Trailer) bool {
	for _, t := range trailers {
		if t.Kind != model.TrailerOther {
			continue
		}
		key := strings.ToUpper(strings.ReplaceAll(t.Key, "-", " "))
		if key == "BREAKING CHANGE" || key == "BREAKING CHANGES" {
			return true
		}
	}
	return false
}

// Categorize partitions commits into category buckets, preserving walk order
// within each bucket.
func (a *Analyzer) Categorize(commits []*model.Commit) *model.CategorizedCommits {
	cc := model.NewCategorizedCommits()
	for _, c := range commits {
		cc.Add(Categorize(c), c)
	}

	for _, cat := range model.Categories() {
		if n := len(cc.Get(cat)); n > 0 {
			plural := "s"
			if n == 1 {
				plural = ""
			}
			a.cfg.Debugf("  * %s: %d commit%s", cat, n, plural)
		}
	}
	return cc
}

// Release names the range being rendered: the tag or reference the walk
// started from, and the author timestamp of its newest commit (zero when the
// range is empty).
type Release struct {
	Ref       string
	Timestamp int64
}

// Analyze runs the full pipeline: resolve the release range, walk its
// history (path-scoped when pathScope is non-empty), and classify every
// commit found.
func (a *Analyzer) Analyze(ctx context.Context, from, to, pathScope string) (*model.CategorizedCommits, Release, error) {
	rng, cat, err := a.ResolveRange(ctx, from, to)
	if err != nil {
		return nil, Release{}, err
	}
	commits, err := a.ReadHistory(ctx, rng, pathScope)
	if err != nil {
		return nil, Release{}, err
	}

	rel := Release{Ref: cat.NameFor(rng.From)}
	if rel.Ref == "" {
		rel.Ref = from
	}
	if rel.Ref == "" {
		rel.Ref = "HEAD"
	}
	if len(commits) > 0 {
		rel.Timestamp = commits[0].Timestamp
	}
	return a.Categorize(commits), rel, nil
}
