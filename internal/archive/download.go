package archive

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/juju/fslock"

	"github.com/pkgstat/pkgstat/internal"
)

const (
	lockTimeout      = 10 * time.Second
	progressInterval = time.Second
)

// FetchContents downloads the compressed Contents index for arch into the
// scratch directory. It returns the local path and a cleanup function that
// removes the file; callers that want to keep the download simply skip the
// cleanup. The scratch directory is locked for the duration of the download
// so that concurrent invocations don't clobber each other's partial files.
func (c *Client) FetchContents(arch string) (string, func(), error) {
	if err := os.MkdirAll(c.ScratchDir, 0755); err != nil {
		return "", nil, err
	}
	lock := fslock.New(filepath.Join(c.ScratchDir, "pkgstat.lock"))
	if err := lock.LockWithTimeout(lockTimeout); err != nil {
		return "", nil, fmt.Errorf("another download is in progress in %s: %w", c.ScratchDir, err)
	}
	defer lock.Unlock()

	name := "Contents-" + arch + ".gz"
	u := internal.URLWithPath(c.Mirror, "dists", c.Distribution, c.Area, name)
	dest := filepath.Join(c.ScratchDir, name)

	log.Printf("Downloading %s", u)
	resp, err := http.Get(u.String())
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", nil, fmt.Errorf("could not download %s: HTTP %s", u, resp.Status)
	}

	file, err := os.Create(dest)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	progress := &progressWriter{total: resp.ContentLength}
	if _, err := io.Copy(file, io.TeeReader(resp.Body, progress)); err != nil {
		os.Remove(dest)
		return "", nil, fmt.Errorf("could not download %s: %w", u, err)
	}
	progress.finish()

	cleanup := func() {
		if err := os.Remove(dest); err != nil {
			log.Printf("Could not remove %s: %v", dest, err)
		} else {
			log.Printf("Removed %s", dest)
		}
	}
	return dest, cleanup, nil
}

// progressWriter counts bytes passing through it and logs progress at most
// once per interval.
type progressWriter struct {
	total   int64
	written int64
	last    time.Time
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if time.Since(p.last) >= progressInterval {
		p.last = time.Now()
		if p.total > 0 {
			log.Printf("Downloaded %s of %s",
				humanize.Bytes(uint64(p.written)), humanize.Bytes(uint64(p.total)))
		} else {
			log.Printf("Downloaded %s", humanize.Bytes(uint64(p.written)))
		}
	}
	return len(b), nil
}

func (p *progressWriter) finish() {
	log.Printf("Download complete (%s)", humanize.Bytes(uint64(p.written)))
}
