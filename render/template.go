package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeffrom/relnote/config"
)

var templateCandidates = []string{
	"relnote.tmpl",
	filepath.Join(".github", "relnote.tmpl"),
	filepath.Join(".gitlab", "relnote.tmpl"),
}

// ResolveTemplate finds the changelog template to use: the configured path
// when set, otherwise the first project-level candidate file, otherwise the
// built-in default. A configured path that can't be read is fatal; missing
// candidates are not.
func ResolveTemplate(cfg config.Config, wd string) (string, error) {
	if cfg.Template != "" {
		b, err := os.ReadFile(cfg.Template)
		if err != nil {
			return "", fmt.Errorf("render: failed to read template: %w", err)
		}
		return string(b), nil
	}

	for _, cand := range templateCandidates {
		p := filepath.Join(wd, cand)
		b, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("render: failed to read template: %w", err)
		}
		cfg.Debugf("using custom template: %s", p)
		return string(b), nil
	}
	return DefaultTemplate, nil
}
