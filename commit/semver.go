// Package commit contains code for reading and processing commits.
package commit

import (
	"strings"

	"github.com/blang/semver/v4"
)

// IsSemver reports whether s, with an optional leading "v" stripped, parses
// as a full semantic version.
func IsSemver(s string) bool {
	s = strings.TrimPrefix(s, "v")
	_, err := semver.Parse(s)
	return err == nil
}

// InferPrefix extracts a monorepo tag namespace from a reference like
// "search/v1.2.3": when the segment after the last slash is a semantic
// version, everything before that slash is the namespace. Otherwise the
// global namespace ("") applies.
func InferPrefix(ref string) string {
	i := strings.LastIndex(ref, "/")
	if i <= 0 {
		return ""
	}
	if !IsSemver(ref[i+1:]) {
		return ""
	}
	return ref[:i]
}

// matchesPrefix reports whether a tag name belongs to a namespace: with no
// prefix, names containing a slash are excluded; with a prefix, the name must
// be exactly prefix/suffix with a single non-empty suffix segment.
func matchesPrefix(name, prefix string) bool {
	if prefix == "" {
		return !strings.Contains(name, "/")
	}
	rest := strings.TrimPrefix(name, prefix+"/")
	if rest == name || rest == "" {
		return false
	}
	return !strings.Contains(rest, "/")
}

// tagSuffix returns the would-be version portion of a tag name, the part
// after the last slash.
func tagSuffix(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
