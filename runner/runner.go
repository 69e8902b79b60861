// Package runner manages command-line execution
package runner

import (
	"context"

	"github.com/jeffrom/relnote/commit"
	"github.com/jeffrom/relnote/config"
	"github.com/jeffrom/relnote/contributor"
	"github.com/jeffrom/relnote/platform"
	"github.com/jeffrom/relnote/render"
	"github.com/jeffrom/relnote/vcs"
)

type Runner struct {
	cfg      config.Config
	vcs      vcs.Interface
	analyzer *commit.Analyzer
}

func New(cfg config.Config, vcs vcs.Interface) *Runner {
	return &Runner{
		cfg:      cfg,
		vcs:      vcs,
		analyzer: commit.NewAnalyzer(cfg, vcs),
	}
}

// Run produces the changelog document for the range described by from and to,
// either of which may be empty. The working directory's path inside the
// repository scopes which commits are included.
func (r *Runner) Run(ctx context.Context, from, to string) (string, error) {
	pathScope, err := r.vcs.ReadPathPrefix(ctx)
	if err != nil {
		return "", err
	}
	if pathScope != "" {
		r.cfg.Debugf("scoping history to path %q", pathScope)
	}

	cc, rel, err := r.analyzer.Analyze(ctx, from, to, pathScope)
	if err != nil {
		return "", err
	}

	originURL, err := r.vcs.ReadOriginURL(ctx, "origin")
	if err != nil {
		return "", err
	}
	p := platform.Detect(r.cfg, originURL)
	r.cfg.Debugf("detected platform: %s", p.Kind)

	if !r.cfg.NoContributors {
		if resolver := contributor.NewResolver(r.cfg, p); resolver != nil {
			resolver.ResolveAll(ctx, cc.All())
		}
	}

	tmpl, err := render.ResolveTemplate(r.cfg, r.cfg.Path)
	if err != nil {
		return "", err
	}
	rend, err := render.New(r.cfg, p, tmpl)
	if err != nil {
		return "", err
	}
	return rend.ExecuteString(cc, rel)
}
