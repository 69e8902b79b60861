package commit

import (
	"reflect"
	"testing"

	"github.com/jeffrom/relnote/model"
)

func TestParseMessage(t *testing.T) {
	tcs := []struct {
		name   string
		raw    string
		expect Message
	}{
		{
			name:   "first line only",
			raw:    "feat: add pagination",
			expect: Message{FirstLine: "feat: add pagination"},
		},
		{
			name:   "empty",
			raw:    "",
			expect: Message{FirstLine: ""},
		},
		{
			name: "trailer block boundary",
			raw:  "feat: x\n\nbody line\n\nSigned-off-by: A <a@x.com>",
			expect: Message{
				FirstLine: "feat: x",
				Body:      "body line",
				Trailers: []model.Trailer{
					{Kind: model.TrailerSignedOffBy, Key: "Signed-off-by", Name: "A", Email: "a@x.com"},
				},
			},
		},
		{
			name: "key-value line mid-body stays in body",
			raw:  "feat: x\n\nNote: this is prose\n\nmore body\n\nReviewed-by: B <b@x.com>",
			expect: Message{
				FirstLine: "feat: x",
				Body:      "Note: this is prose\n\nmore body",
				Trailers: []model.Trailer{
					{Kind: model.TrailerReviewedBy, Key: "Reviewed-by", Name: "B", Email: "b@x.com"},
				},
			},
		},
		{
			name: "collapse three or more blank lines",
			raw:  "fix: y\n\npara one\n\n\n\n\npara two",
			expect: Message{
				FirstLine: "fix: y",
				Body:      "para one\n\npara two",
			},
		},
		{
			name: "one or two blank lines preserved",
			raw:  "fix: y\n\na\n\n\nb",
			expect: Message{
				FirstLine: "fix: y",
				Body:      "a\n\n\nb",
			},
		},
		{
			name: "linked issues claimed, deduped and sorted",
			raw:  "fix: z\n\nFixes #42\ncloses acme/widgets#7\nResolves: #42",
			expect: Message{
				FirstLine: "fix: z",
				LinkedIssues: []model.LinkedIssue{
					{Number: 42},
					{Number: 7, Owner: "acme", Repo: "widgets"},
				},
			},
		},
		{
			name: "issue line after trailers keeps block intact",
			raw:  "feat: w\n\nSigned-off-by: A <a@x.com>\nFixes #8",
			expect: Message{
				FirstLine: "feat: w",
				Trailers: []model.Trailer{
					{Kind: model.TrailerSignedOffBy, Key: "Signed-off-by", Name: "A", Email: "a@x.com"},
				},
				LinkedIssues: []model.LinkedIssue{{Number: 8}},
			},
		},
		{
			name: "almost-issue lines are body",
			raw:  "fix: q\n\nfixes#42\nfixes #",
			expect: Message{
				FirstLine: "fix: q",
				Body:      "fixes#42\nfixes #",
			},
		},
		{
			name: "multiple trailers keep order",
			raw:  "feat: m\n\nCo-authored-by: A <a@x.com>\nReviewed-by: B <b@x.com>\nTicket: ABC-123",
			expect: Message{
				FirstLine: "feat: m",
				Trailers: []model.Trailer{
					{Kind: model.TrailerCoAuthoredBy, Key: "Co-authored-by", Name: "A", Email: "a@x.com"},
					{Kind: model.TrailerReviewedBy, Key: "Reviewed-by", Name: "B", Email: "b@x.com"},
					{Kind: model.TrailerOther, Key: "Ticket", Value: "ABC-123"},
				},
			},
		},
		{
			name: "trailing blank run stripped",
			raw:  "fix: r\n\nbody here\n\n\n",
			expect: Message{
				FirstLine: "fix: r",
				Body:      "body here",
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseMessage(tc.raw)
			if !reflect.DeepEqual(got, tc.expect) {
				t.Errorf("parse mismatch:\n got: %+v\nwant: %+v", got, tc.expect)
			}
		})
	}
}
