package gitcli

import (
	"strings"
	"testing"
)

func TestParseTagLine(t *testing.T) {
	tcs := []struct {
		name   string
		in     string
		expect bool
		tag    string
		commit string
		ts     int64
	}{
		{
			name:   "lightweight",
			in:     "v1.0.0\x00deadbeefdeadbeefdeadbeefdeadbeefdeadbeef\x001700000000",
			expect: true,
			tag:    "v1.0.0",
			commit: "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
			ts:     1700000000,
		},
		{
			name:   "namespaced",
			in:     "search/v0.2.0\x00deadbeefdeadbeefdeadbeefdeadbeefdeadbeef\x001700000001",
			expect: true,
			tag:    "search/v0.2.0",
			commit: "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
			ts:     1700000001,
		},
		{name: "missing commit", in: "v1.0.0\x00\x001700000000"},
		{name: "bad timestamp", in: "v1.0.0\x00deadbeef\x00notanumber"},
		{name: "missing timestamp", in: "v1.0.0\x00deadbeef"},
		{name: "empty", in: ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			tag, ok := parseTagLine(tc.in)
			if ok != tc.expect {
				t.Fatalf("expected ok=%v, got %v", tc.expect, ok)
			}
			if !ok {
				return
			}
			if tag.Name != tc.tag || tag.Commit != tc.commit || tag.Timestamp != tc.ts {
				t.Errorf("unexpected tag: %+v", tag)
			}
		})
	}
}

func TestParseLog(t *testing.T) {
	input := strings.Join([]string{
		"_START_aaaa1111_SEP_Alice_SEP_alice@example.com_SEP_1700000100_SEP_feat: add pagination",
		"",
		"body text",
		"_END_",
		"_START_bbbb2222_SEP_Bob_SEP_bob@example.com_SEP_1700000000_SEP_fix: pager_END_",
	}, "\n")

	commits, err := parseLog([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}

	first := commits[0]
	if first.ID != "aaaa1111" {
		t.Errorf("unexpected id: %s", first.ID)
	}
	if first.Author != "Alice" || first.AuthorEmail != "alice@example.com" {
		t.Errorf("unexpected author: %s <%s>", first.Author, first.AuthorEmail)
	}
	if first.Timestamp != 1700000100 {
		t.Errorf("unexpected timestamp: %d", first.Timestamp)
	}
	if expect := "feat: add pagination\n\nbody text"; first.Message != expect {
		t.Errorf("unexpected message: %q", first.Message)
	}

	second := commits[1]
	if second.ID != "bbbb2222" || second.Message != "fix: pager" {
		t.Errorf("unexpected commit: %+v", second)
	}
}

func TestParseLogEmpty(t *testing.T) {
	commits, err := parseLog(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 0 {
		t.Fatalf("expected no commits, got %d", len(commits))
	}
}

func TestParseLogMalformed(t *testing.T) {
	tcs := []struct {
		name string
		in   string
	}{
		{"missing start marker", "aaaa1111_SEP_Alice_SEP_a@x_SEP_1700000000_SEP_feat: x_END_"},
		{"too few parts", "_START_aaaa1111_SEP_Alice_SEP_feat: x_END_"},
		{"bad timestamp", "_START_aaaa1111_SEP_Alice_SEP_a@x_SEP_soon_SEP_feat: x_END_"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseLog([]byte(tc.in)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}
