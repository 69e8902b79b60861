package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeffrom/relnote/commit"
)

type Stats struct {
	Commits int64
	Counts  map[string][]*statCount
}

func (s *Stats) Add(bucket, name string, n int64) {
	counts := s.Counts[bucket]
	count, found := s.findCount(name, counts)
	if !found {
		counts = append(counts, count)
	}
	count.Add(n)

	s.Counts[bucket] = counts
}

func (s *Stats) findCount(name string, counts []*statCount) (*statCount, bool) {
	for _, c := range counts {
		if c.label == name {
			return c, true
		}
	}
	return &statCount{label: name}, false
}

func (s *Stats) sortedBuckets() []string {
	buckets := make([]string, len(s.Counts))
	i := 0
	for name := range s.Counts {
		buckets[i] = name
		i++
	}
	sort.Strings(buckets)
	return buckets
}

type statCount struct {
	label string
	n     int64
}

func (c *statCount) Add(n int64) {
	c.n += n
}

func (s *Stats) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fmt.Sprintf("%d commits\n\n", s.Commits))

	buckets := s.sortedBuckets()
	for _, name := range buckets {
		counts := s.Counts[name]
		sort.SliceStable(counts, func(i, j int) bool {
			return counts[i].n > counts[j].n
		})
		bw.WriteString(fmt.Sprintf("%s:\n", toTitle(name)))
		for _, count := range counts {
			label := count.label
			if label == "" {
				label = "n/a"
			}
			bw.WriteString(fmt.Sprintf("  %20s\t\t%d\n", label, count.n))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Stats classifies the commits in the range and tallies them by category,
// conventional type and scope.
func (r *Runner) Stats(ctx context.Context, from, to string) (*Stats, error) {
	pathScope, err := r.vcs.ReadPathPrefix(ctx)
	if err != nil {
		return nil, err
	}
	cc, _, err := r.analyzer.Analyze(ctx, from, to, pathScope)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Commits: int64(cc.Total()),
		Counts:  make(map[string][]*statCount),
	}
	for _, c := range cc.All() {
		stats.Add("category", commit.Categorize(c).String(), 1)
		typ, scope, _, ok := commit.ParseHeader(c.FirstLine)
		if !ok {
			typ = ""
		}
		stats.Add("commit_type", typ, 1)
		stats.Add("scope", scope, 1)
	}
	return stats, nil
}

var nonAlphaRE = regexp.MustCompile(`[^A-Za-z]`)

var titleCaser = cases.Title(language.English)

func toTitle(s string) string {
	s = nonAlphaRE.ReplaceAllLiteralString(s, " ")
	return titleCaser.String(s)
}
