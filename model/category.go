package model

// CommitCategory is the closed classification taxonomy. Every commit lands in
// exactly one category; Breaking pre-empts all others.
type CommitCategory int

const (
	CategoryBreaking CommitCategory = iota
	CategoryFeature
	CategoryFix
	CategoryDependencies
	CategoryDocumentation
	CategoryCI
	CategoryTest
	CategoryPerformance
	CategoryChore
	CategoryRefactor
	CategoryOther
)

func (c CommitCategory) String() string {
	switch c {
	case CategoryBreaking:
		return "breaking"
	case CategoryFeature:
		return "feature"
	case CategoryFix:
		return "fix"
	case CategoryDependencies:
		return "dependencies"
	case CategoryDocumentation:
		return "documentation"
	case CategoryCI:
		return "ci"
	case CategoryTest:
		return "test"
	case CategoryPerformance:
		return "performance"
	case CategoryChore:
		return "chore"
	case CategoryRefactor:
		return "refactor"
	case CategoryOther:
		return "other"
	default:
		return "<unknown>"
	}
}

func (c CommitCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Categories returns every category in stable presentation order.
func Categories() []CommitCategory {
	return []CommitCategory{
		CategoryBreaking,
		CategoryFeature,
		CategoryFix,
		CategoryDependencies,
		CategoryDocumentation,
		CategoryCI,
		CategoryTest,
		CategoryPerformance,
		CategoryChore,
		CategoryRefactor,
		CategoryOther,
	}
}

// CategorizedCommits partitions commits by category. A key is only present
// when at least one commit occupies it, and list order within each bucket
// preserves discovery order from the history walk.
type CategorizedCommits struct {
	ByCategory map[CommitCategory][]*Commit `json:"by_category"`
}

func NewCategorizedCommits() *CategorizedCommits {
	return &CategorizedCommits{ByCategory: make(map[CommitCategory][]*Commit)}
}

func (cc *CategorizedCommits) Add(cat CommitCategory, c *Commit) {
	cc.ByCategory[cat] = append(cc.ByCategory[cat], c)
}

// Get returns the bucket for cat, which may be nil.
func (cc *CategorizedCommits) Get(cat CommitCategory) []*Commit {
	return cc.ByCategory[cat]
}

// Total returns the number of commits across all buckets.
func (cc *CategorizedCommits) Total() int {
	n := 0
	for _, commits := range cc.ByCategory {
		n += len(commits)
	}
	return n
}

// All returns every commit in presentation order of its bucket, preserving
// bucket-internal order.
func (cc *CategorizedCommits) All() []*Commit {
	var out []*Commit
	for _, cat := range Categories() {
		out = append(out, cc.ByCategory[cat]...)
	}
	return out
}
