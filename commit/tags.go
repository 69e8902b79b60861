package commit

import (
	"context"
	"sort"

	"github.com/jeffrom/relnote/model"
	"github.com/jeffrom/relnote/vcs"
)

// Catalog is the set of release tags in one namespace, ordered newest first
// by the author timestamp of the commit each tag points at.
type Catalog struct {
	Tags  []model.Tag
	index map[string]int
}

// LoadCatalog reads all tags and keeps the ones that belong to the namespace
// prefix and whose version portion parses as a semantic version. An empty
// catalog is valid and means no releases exist yet.
func LoadCatalog(ctx context.Context, vc vcs.Interface, prefix string) (*Catalog, error) {
	all, err := vc.ReadTags(ctx)
	if err != nil {
		return nil, err
	}

	var tags []model.Tag
	for _, t := range all {
		if !matchesPrefix(t.Name, prefix) {
			continue
		}
		if !IsSemver(tagSuffix(t.Name)) {
			continue
		}
		tags = append(tags, t)
	}

	// stable keeps listing order for equal timestamps
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Timestamp > tags[j].Timestamp
	})

	c := &Catalog{Tags: tags, index: make(map[string]int, len(tags))}
	for i, t := range tags {
		if _, ok := c.index[t.Commit]; !ok {
			c.index[t.Commit] = i
		}
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.Tags) }

func (c *Catalog) Empty() bool { return len(c.Tags) == 0 }

func (c *Catalog) At(i int) model.Tag { return c.Tags[i] }

// Position returns the sorted position of the tag pointing at commit.
func (c *Catalog) Position(commit string) (int, bool) {
	i, ok := c.index[commit]
	return i, ok
}

// NameFor returns the tag name pointing at commit, or "".
func (c *Catalog) NameFor(commit string) string {
	if i, ok := c.index[commit]; ok {
		return c.Tags[i].Name
	}
	return ""
}
