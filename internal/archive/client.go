// Package archive retrieves Contents indices from a Debian archive mirror.
package archive

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/pkgstat/pkgstat/internal"
)

// Client addresses one area of one distribution on a Debian mirror, e.g.
// stable/main on ftp.uk.debian.org.
type Client struct {
	Mirror       *url.URL
	Distribution string
	Area         string

	// ScratchDir receives downloaded index files. Defaults to the system
	// temp directory.
	ScratchDir string
}

func NewClient(mirror, distribution, area string) (*Client, error) {
	u, err := url.Parse(mirror)
	if err != nil {
		return nil, fmt.Errorf("invalid mirror URL %q: %w", mirror, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid mirror URL %q: missing scheme or host", mirror)
	}
	return &Client{
		Mirror:       u,
		Distribution: distribution,
		Area:         area,
		ScratchDir:   os.TempDir(),
	}, nil
}

func (c *Client) listingURL() *url.URL {
	return internal.URLWithPath(c.Mirror, "dists", c.Distribution, c.Area)
}

// Architectures scrapes the mirror's directory listing for binary-<arch>
// subdirectories and returns the architecture names, sorted. The "all"
// pseudo-architecture is excluded since it has no Contents index of its own
// in the per-architecture sense.
func (c *Client) Architectures() ([]string, error) {
	u := c.listingURL().String() + "/"
	resp, err := http.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("could not download %s: HTTP %s", u, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not parse listing at %s: %w", u, err)
	}

	var archs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				name, found := strings.CutPrefix(attr.Val, "binary-")
				if !found {
					continue
				}
				arch := strings.TrimSuffix(name, "/")
				if arch != "all" {
					archs = append(archs, arch)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	sort.Strings(archs)
	return archs, nil
}

// ValidateArchitecture checks arch against the mirror's directory listing.
// The error for an unknown architecture enumerates the supported ones.
func (c *Client) ValidateArchitecture(arch string) error {
	archs, err := c.Architectures()
	if err != nil {
		return err
	}
	for _, a := range archs {
		if a == arch {
			return nil
		}
	}
	return fmt.Errorf("%q is not a supported architecture: choose from %s",
		arch, strings.Join(archs, ", "))
}
