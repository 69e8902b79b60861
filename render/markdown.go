// Package render produces the markdown changelog document from classified
// commits.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/jeffrom/relnote/commit"
	"github.com/jeffrom/relnote/config"
	"github.com/jeffrom/relnote/model"
	"github.com/jeffrom/relnote/platform"
)

const DefaultTemplate = `{{ if .Ref }}## {{ .Ref }}{{ if .Date }} - {{ .Date }}{{ end }}

{{ end }}{{ if .Summary }}{{ .Summary }}

{{ end }}{{ if .Breaking }}## Breaking Changes
{{ range .Breaking }}- {{ commitlink . }} {{ stripprefix .FirstLine }}
{{ end }}
{{ end }}{{ if .Features }}## New Features
{{ range .Features }}- {{ commitlink . }} {{ stripprefix .FirstLine }}
{{ end }}
{{ end }}{{ if .Fixes }}## Bug Fixes
{{ range .Fixes }}- {{ commitlink . }} {{ stripprefix .FirstLine }}
{{ end }}
{{ end }}{{ if .Dependencies }}## Dependency Updates
{{ range .Dependencies }}- {{ commitlink . }} {{ stripprefix .FirstLine }}
{{ end }}
{{ end }}{{ if .Contributors }}## Contributors
{{ range .Contributors }}- @{{ .Username }} ({{ .Count }} commit{{ if ne .Count 1 }}s{{ end }})
{{ end }}
{{ end }}*Generated with [relnote](https://github.com/jeffrom/relnote)*
`

// Data is the context handed to changelog templates. Every category bucket
// is exposed so custom templates can render more than the default does.
type Data struct {
	// Ref is the tag or reference the range starts from; Date is its newest
	// commit's author date, preformatted. Summary is the linked stats line.
	Ref     string
	Date    string
	Summary string

	Breaking     []*model.Commit
	Features     []*model.Commit
	Fixes        []*model.Commit
	Dependencies []*model.Commit
	Docs         []*model.Commit
	CI           []*model.Commit
	Tests        []*model.Commit
	Performance  []*model.Commit
	Chores       []*model.Commit
	Refactors    []*model.Commit
	Others       []*model.Commit
	Contributors []ContributorStat
}

// ContributorStat aggregates one non-bot contributor across the release.
type ContributorStat struct {
	Username  string
	AvatarURL string
	Count     int
}

// BuildData flattens categorized commits into template context, aggregating
// contributor counts in order of first appearance.
func BuildData(cc *model.CategorizedCommits, rel commit.Release) Data {
	d := Data{
		Ref:          rel.Ref,
		Breaking:     cc.Get(model.CategoryBreaking),
		Features:     cc.Get(model.CategoryFeature),
		Fixes:        cc.Get(model.CategoryFix),
		Dependencies: cc.Get(model.CategoryDependencies),
		Docs:         cc.Get(model.CategoryDocumentation),
		CI:           cc.Get(model.CategoryCI),
		Tests:        cc.Get(model.CategoryTest),
		Performance:  cc.Get(model.CategoryPerformance),
		Chores:       cc.Get(model.CategoryChore),
		Refactors:    cc.Get(model.CategoryRefactor),
		Others:       cc.Get(model.CategoryOther),
	}

	pos := make(map[string]int)
	for _, c := range cc.All() {
		for _, contrib := range c.Contributors {
			if contrib.Bot {
				continue
			}
			if i, ok := pos[contrib.Username]; ok {
				d.Contributors[i].Count++
				continue
			}
			pos[contrib.Username] = len(d.Contributors)
			d.Contributors = append(d.Contributors, ContributorStat{
				Username:  contrib.Username,
				AvatarURL: contrib.AvatarURL,
				Count:     1,
			})
		}
	}

	if rel.Timestamp != 0 {
		d.Date = time.Unix(rel.Timestamp, 0).UTC().Format("January 2, 2006")
	}
	d.Summary = summaryLine(d)
	return d
}

// summaryLine builds the linked stats line under the release heading, e.g.
// "[**`2`**](#new-features) new features".
func summaryLine(d Data) string {
	var parts []string
	add := func(n int, anchor, singular, plural string) {
		if n == 0 {
			return
		}
		label := plural
		if n == 1 {
			label = singular
		}
		parts = append(parts, fmt.Sprintf("[**`%d`**](#%s) %s", n, anchor, label))
	}
	add(len(d.Breaking), "breaking-changes", "breaking change", "breaking changes")
	add(len(d.Features), "new-features", "new feature", "new features")
	add(len(d.Fixes), "bug-fixes", "bug fixed", "bug fixes")
	return strings.Join(parts, " • ")
}

// Renderer executes a changelog template against classified commits.
type Renderer struct {
	cfg config.Config
	t   *template.Template
}

func New(cfg config.Config, p platform.Platform, tmpl string) (*Renderer, error) {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	funcs := template.FuncMap{
		"stripprefix": commit.StripConventionalPrefix,
		"short": func(c *model.Commit) string {
			return c.ShortID()
		},
		"commitlink": func(c *model.Commit) string {
			if url := p.CommitURL(c.ID); url != "" {
				return fmt.Sprintf("[%s](%s)", c.ShortID(), url)
			}
			return c.ShortID()
		},
		"commiturl": p.CommitURL,
	}
	t, err := template.New("changelog").Funcs(funcs).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("render: invalid template: %w", err)
	}
	return &Renderer{cfg: cfg, t: t}, nil
}

func (r *Renderer) Execute(w io.Writer, cc *model.CategorizedCommits, rel commit.Release) error {
	return r.t.Execute(w, BuildData(cc, rel))
}

func (r *Renderer) ExecuteString(cc *model.CategorizedCommits, rel commit.Release) (string, error) {
	b := &bytes.Buffer{}
	if err := r.Execute(b, cc, rel); err != nil {
		return "", err
	}
	return b.String(), nil
}
