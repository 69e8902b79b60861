package commit

import (
	"context"
	"testing"

	"github.com/jeffrom/relnote/vcs"
)

func newRangeMock() *vcs.Mock {
	return vcs.NewMock().SetCommits(
		vcs.MockCommit{ID: "cccc1111", Message: "feat: add pagination"},
		vcs.MockCommit{ID: "bbbb2222", Message: "fix: off-by-one in pager"},
		vcs.MockCommit{ID: "aaaa3333", Message: "feat: initial release", Parents: []string{}},
	).
		Tag("v1.0.0", "aaaa3333").
		Tag("v2.0.0", "cccc1111")
}

func historyIDs(t *testing.T, a *Analyzer, rng Range, pathScope string) []string {
	t.Helper()
	commits, err := a.ReadHistory(context.Background(), rng, pathScope)
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]string, len(commits))
	for i, c := range commits {
		ids[i] = c.ID
	}
	return ids
}

func checkIDs(t *testing.T, got, expect []string) {
	t.Helper()
	if len(got) != len(expect) {
		t.Fatalf("expected commits %v, got %v", expect, got)
	}
	for i := range expect {
		if got[i] != expect[i] {
			t.Fatalf("expected commits %v, got %v", expect, got)
		}
	}
}

func TestResolveRangeFromTag(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	a := NewAnalyzer(newTestConfig(nil, &tio), newRangeMock())

	rng, _, err := a.ResolveRange(context.Background(), "v2.0.0", "")
	if err != nil {
		t.Fatal(err)
	}
	if rng.From != "cccc1111" || rng.To != "aaaa3333" {
		t.Fatalf("unexpected range: %+v", rng)
	}
	checkIDs(t, historyIDs(t, a, rng, ""), []string{"cccc1111", "bbbb2222"})
}

func TestResolveRangeOldestTagCoversFullHistory(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	a := NewAnalyzer(newTestConfig(nil, &tio), newRangeMock())

	rng, _, err := a.ResolveRange(context.Background(), "v1.0.0", "")
	if err != nil {
		t.Fatal(err)
	}
	if rng.From != "aaaa3333" || rng.To != "" {
		t.Fatalf("unexpected range: %+v", rng)
	}
	checkIDs(t, historyIDs(t, a, rng, ""), []string{"aaaa3333"})
}

func TestResolveRangeHeadFallsBackToNewestTag(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	m := vcs.NewMock().SetCommits(
		vcs.MockCommit{ID: "cccc1111", Message: "feat: add pagination"},
		vcs.MockCommit{ID: "bbbb2222", Message: "fix: off-by-one in pager"},
		vcs.MockCommit{ID: "aaaa3333", Message: "feat: initial release", Parents: []string{}},
	).Tag("v1.0.0", "aaaa3333")
	a := NewAnalyzer(newTestConfig(nil, &tio), m)

	rng, _, err := a.ResolveRange(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if rng.From != "cccc1111" || rng.To != "aaaa3333" {
		t.Fatalf("unexpected range: %+v", rng)
	}
	checkIDs(t, historyIDs(t, a, rng, ""), []string{"cccc1111", "bbbb2222"})
}

func TestResolveRangeClosestAncestorTag(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	m := vcs.NewMock().SetCommits(
		vcs.MockCommit{ID: "dddd0000", Message: "feat: newest"},
		vcs.MockCommit{ID: "cccc1111", Message: "feat: add pagination"},
		vcs.MockCommit{ID: "bbbb2222", Message: "fix: off-by-one in pager"},
		vcs.MockCommit{ID: "aaaa3333", Message: "feat: initial release", Parents: []string{}},
	).Tag("v1.0.0", "aaaa3333")
	a := NewAnalyzer(newTestConfig(nil, &tio), m)

	rng, _, err := a.ResolveRange(context.Background(), "bbbb2222", "")
	if err != nil {
		t.Fatal(err)
	}
	if rng.From != "bbbb2222" || rng.To != "aaaa3333" {
		t.Fatalf("unexpected range: %+v", rng)
	}
	checkIDs(t, historyIDs(t, a, rng, ""), []string{"bbbb2222"})
}

func TestResolveRangeExplicitTo(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	a := NewAnalyzer(newTestConfig(nil, &tio), newRangeMock())

	rng, _, err := a.ResolveRange(context.Background(), "cccc1111", "bbbb2222")
	if err != nil {
		t.Fatal(err)
	}
	checkIDs(t, historyIDs(t, a, rng, ""), []string{"cccc1111"})
}

func TestResolveRangeFromEqualsTo(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	a := NewAnalyzer(newTestConfig(nil, &tio), newRangeMock())

	rng, _, err := a.ResolveRange(context.Background(), "v2.0.0", "v2.0.0")
	if err != nil {
		t.Fatal(err)
	}
	checkIDs(t, historyIDs(t, a, rng, ""), nil)
}

func TestResolveRangeUnknownRef(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	a := NewAnalyzer(newTestConfig(nil, &tio), newRangeMock())

	if _, _, err := a.ResolveRange(context.Background(), "v9.9.9", ""); err == nil {
		t.Fatal("expected not found error")
	}
}

// Namespaced tags resolve against their own release line, even when other
// namespaces share the same root.
func TestResolveRangeMonorepoNamespaces(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	m := vcs.NewMock().SetCommits(
		vcs.MockCommit{ID: "uuuu2222", Message: "feat: ui polish", Parents: []string{"uuuu1111"}},
		vcs.MockCommit{ID: "ssss2222", Message: "feat: search ranking", Parents: []string{"ssss1111"}},
		vcs.MockCommit{ID: "uuuu1111", Message: "feat: ui scaffolding", Parents: []string{"r0000000"}},
		vcs.MockCommit{ID: "ssss1111", Message: "feat: search scaffolding", Parents: []string{"r0000000"}},
		vcs.MockCommit{ID: "r0000000", Message: "chore: repo setup", Parents: []string{}},
	).
		Tag("search/v0.1.0", "ssss1111").
		Tag("search/v1.0.0", "ssss2222").
		Tag("ui/v0.1.0", "uuuu1111").
		Tag("ui/v1.0.0", "uuuu2222")
	a := NewAnalyzer(newTestConfig(nil, &tio), m)

	rng, cat, err := a.ResolveRange(context.Background(), "search/v1.0.0", "")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 2 {
		t.Fatalf("expected 2 search tags, got %d", cat.Len())
	}
	checkIDs(t, historyIDs(t, a, rng, ""), []string{"ssss2222"})

	rng, _, err = a.ResolveRange(context.Background(), "ui/v1.0.0", "")
	if err != nil {
		t.Fatal(err)
	}
	checkIDs(t, historyIDs(t, a, rng, ""), []string{"uuuu2222"})
}

func TestReadHistoryPathScope(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	m := vcs.NewMock().SetCommits(
		vcs.MockCommit{ID: "cccc1111", Message: "feat: add pagination", Paths: []string{"main.go"}},
		vcs.MockCommit{ID: "bbbb2222", Message: "docs: pager usage", Paths: []string{"docs/readme.md"}},
		vcs.MockCommit{ID: "aaaa3333", Message: "feat: initial release", Parents: []string{}, Paths: []string{"docs", "main.go"}},
	)
	a := NewAnalyzer(newTestConfig(nil, &tio), m)

	got := historyIDs(t, a, Range{From: "cccc1111"}, "docs")
	checkIDs(t, got, []string{"bbbb2222", "aaaa3333"})

	feats := historyIDs(t, a, Range{From: "cccc1111"}, "")
	checkIDs(t, feats, []string{"cccc1111", "bbbb2222", "aaaa3333"})

	if _, err := a.ReadHistory(context.Background(), Range{From: "nope"}, ""); err == nil {
		t.Fatal("expected error for unknown range start")
	}
}
