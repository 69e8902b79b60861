package commit

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jeffrom/relnote/model"
)

// Message is the structured form of one raw commit message. Parsing is a
// total function: any input string produces a best-effort result, never an
// error.
type Message struct {
	FirstLine    string
	Body         string
	Trailers     []model.Trailer
	LinkedIssues []model.LinkedIssue
}

var issueRE = regexp.MustCompile(
	`(?i)^(?:closes|closed|fixes|fixed|fix|resolves|resolved|resolve)(?::\s|\s)\s*(?:([A-Za-z0-9][\w.-]*)/([\w.-]+))?#(\d+)$`)

var trailerRE = regexp.MustCompile(`^([A-Za-z][\w-]*):\s+(.+?)\s*$`)

// ParseMessage splits a raw commit message into its first line, free-text
// body, trailer block, and linked-issue references.
//
// Linked-issue lines are claimed first and belong to neither the body nor
// the trailer block. The trailer block is the maximal trailing run of blank
// or "Key: value" lines, found by scanning backward until the first line
// that is neither. Whatever remains is the body, with leading/trailing blank
// runs stripped and runs of three or more blank lines collapsed to one.
func ParseMessage(raw string) Message {
	lines := strings.Split(raw, "\n")
	msg := Message{FirstLine: lines[0]}
	rest := lines[1:]
	if len(rest) == 0 {
		return msg
	}

	claimed := make([]bool, len(rest))
	for i, line := range rest {
		m := issueRE.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		num, err := strconv.ParseUint(m[3], 10, 64)
		if err != nil {
			continue
		}
		msg.LinkedIssues = append(msg.LinkedIssues, model.LinkedIssue{
			Number: num,
			Owner:  m[1],
			Repo:   m[2],
		})
		claimed[i] = true
	}

	// trailer block boundary: scan backward while lines are blank, claimed,
	// or trailer-shaped
	boundary := len(rest)
	for i := len(rest) - 1; i >= 0; i-- {
		if claimed[i] || blank(rest[i]) || trailerRE.MatchString(rest[i]) {
			boundary = i
			continue
		}
		break
	}

	for i := boundary; i < len(rest); i++ {
		if claimed[i] || blank(rest[i]) {
			continue
		}
		m := trailerRE.FindStringSubmatch(rest[i])
		msg.Trailers = append(msg.Trailers, model.NewTrailer(m[1], m[2]))
	}

	var body []string
	for i := 0; i < boundary; i++ {
		if claimed[i] {
			continue
		}
		body = append(body, rest[i])
	}
	msg.Body = normalizeBody(body)
	msg.LinkedIssues = dedupeIssues(msg.LinkedIssues)
	return msg
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// normalizeBody strips the leading and trailing blank runs and collapses
// runs of 3+ blank lines down to a single paragraph break.
func normalizeBody(lines []string) string {
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	var out []string
	run := 0
	for _, line := range lines {
		if blank(line) {
			run++
			continue
		}
		if run >= 3 {
			out = append(out, "")
		} else {
			for ; run > 0; run-- {
				out = append(out, "")
			}
		}
		run = 0
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func dedupeIssues(issues []model.LinkedIssue) []model.LinkedIssue {
	if len(issues) == 0 {
		return nil
	}
	seen := make(map[model.LinkedIssue]bool, len(issues))
	uniq := issues[:0]
	for _, is := range issues {
		if seen[is] {
			continue
		}
		seen[is] = true
		uniq = append(uniq, is)
	}
	sort.Slice(uniq, func(i, j int) bool {
		a, b := uniq[i], uniq[j]
		if a.Owner != b.Owner {
			return a.Owner < b.Owner
		}
		if a.Repo != b.Repo {
			return a.Repo < b.Repo
		}
		return a.Number < b.Number
	})
	return uniq
}
