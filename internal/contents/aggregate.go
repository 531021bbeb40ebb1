// Package contents parses Debian Contents indices and ranks packages by the
// number of files they install.
package contents

import (
	"io"
	"sort"
	"strings"
)

// Entry is one row of a ranking: a package identifier and the number of files
// attributed to it.
type Entry struct {
	Package string `json:"package"`
	Count   int    `json:"count"`
}

// Counter accumulates per-package file counts over a single pass of a
// Contents index. Ties in the final ranking are broken by the order in which
// packages first appeared in the stream, so results are deterministic across
// runs.
type Counter struct {
	counts map[string]int
	seen   []string
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// AddLine records one Contents line. Lines with fewer than two
// whitespace-separated fields are skipped. The second field is split on
// commas and every token increments its package's count, one increment per
// occurrence, with no deduplication within the line. An empty token, as
// produced by a doubled or trailing comma, counts as a literal empty-string
// package.
func (c *Counter) AddLine(line string) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return
	}
	c.addPackages(parts[1])
}

func (c *Counter) addPackages(list string) {
	for _, pkg := range strings.Split(list, ",") {
		if _, found := c.counts[pkg]; !found {
			c.seen = append(c.seen, pkg)
		}
		c.counts[pkg]++
	}
}

// Consume reads r line by line until EOF, feeding every line to AddLine. The
// only possible failure is a read error, which is returned unchanged.
func (c *Counter) Consume(r io.Reader) error {
	return c.consume(r, nil)
}

// Distinct returns the number of distinct packages seen so far.
func (c *Counter) Distinct() int {
	return len(c.seen)
}

// Top returns the n packages with the highest counts, descending. Packages
// with equal counts are ordered by first appearance in the stream. The result
// has length min(n, distinct packages).
func (c *Counter) Top(n int) []Entry {
	ranked := make([]Entry, 0, len(c.seen))
	for _, pkg := range c.seen {
		ranked = append(ranked, Entry{Package: pkg, Count: c.counts[pkg]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n < 0 {
		n = 0
	}
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
