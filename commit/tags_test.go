package commit

import (
	"context"
	"testing"

	"github.com/jeffrom/relnote/vcs"
)

func newTagMock() *vcs.Mock {
	return vcs.NewMock().SetCommits(
		vcs.MockCommit{ID: "cccc1111", Message: "feat: newest"},
		vcs.MockCommit{ID: "bbbb2222", Message: "feat: middle"},
		vcs.MockCommit{ID: "aaaa3333", Message: "feat: oldest", Parents: []string{}},
	).
		Tag("v0.1.0", "aaaa3333").
		Tag("v1.0.0", "bbbb2222").
		Tag("latest", "cccc1111").
		Tag("search/v0.2.0", "cccc1111")
}

func TestLoadCatalog(t *testing.T) {
	cat, err := LoadCatalog(context.Background(), newTagMock(), "")
	if err != nil {
		t.Fatal(err)
	}

	// newest first, non-semver and namespaced tags excluded
	expect := []string{"v1.0.0", "v0.1.0"}
	if cat.Len() != len(expect) {
		t.Fatalf("expected %d tags, got %d", len(expect), cat.Len())
	}
	for i, name := range expect {
		if got := cat.At(i).Name; got != name {
			t.Errorf("tag %d: expected %s, got %s", i, name, got)
		}
	}

	if i, ok := cat.Position("bbbb2222"); !ok || i != 0 {
		t.Errorf("expected bbbb2222 at position 0, got %d (%v)", i, ok)
	}
	if _, ok := cat.Position("cccc1111"); ok {
		t.Error("cccc1111 should not be in the global catalog")
	}
	if name := cat.NameFor("aaaa3333"); name != "v0.1.0" {
		t.Errorf("expected v0.1.0 for aaaa3333, got %q", name)
	}
}

func TestLoadCatalogPrefix(t *testing.T) {
	cat, err := LoadCatalog(context.Background(), newTagMock(), "search")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 1 {
		t.Fatalf("expected 1 tag, got %d", cat.Len())
	}
	if got := cat.At(0).Name; got != "search/v0.2.0" {
		t.Errorf("expected search/v0.2.0, got %s", got)
	}
}

func TestLoadCatalogEmpty(t *testing.T) {
	m := vcs.NewMock().SetCommits(
		vcs.MockCommit{ID: "aaaa3333", Message: "feat: only", Parents: []string{}},
	)
	cat, err := LoadCatalog(context.Background(), m, "")
	if err != nil {
		t.Fatal(err)
	}
	if !cat.Empty() {
		t.Fatalf("expected empty catalog, got %d tags", cat.Len())
	}
}
