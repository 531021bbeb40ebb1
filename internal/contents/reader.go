package contents

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Contents lines are normally short, but a file installed by many packages
// can produce a very long package list.
const maxLineBytes = 1024 * 1024

// ConsumeMatching is Consume restricted to lines whose file path matches the
// doublestar glob pattern. A pattern names either the files directly or a
// directory subtree, so "usr/bin" and "usr/bin/**" behave the same way.
func (c *Counter) ConsumeMatching(r io.Reader, pattern string) error {
	if _, err := doublestar.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid match pattern %q: %w", pattern, err)
	}
	return c.consume(r, func(path string) bool {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
		ok, _ := doublestar.Match(pattern+"/**", path)
		return ok
	})
}

func (c *Counter) consume(r io.Reader, keep func(path string) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		if keep != nil && !keep(parts[0]) {
			continue
		}
		c.addPackages(parts[1])
	}
	return scanner.Err()
}
