package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgstat/pkgstat/internal/contents"
)

const testListing = `<html><body>
<a href="binary-all/">binary-all/</a>
<a href="binary-amd64/">binary-amd64/</a>
<a href="binary-arm64/">binary-arm64/</a>
</body></html>`

const testContents = `usr/bin/vim   editors/vim
usr/share/doc/vim/README   editors/vim
usr/bin/emacs   editors/emacs
bin/d
usr/bin/sudo   admin/sudo
usr/share/man/man8/sudo.8.gz   admin/sudo
etc/sudoers   admin/sudo
`

func newTestMirror(t *testing.T) *httptest.Server {
	t.Helper()

	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write([]byte(testContents))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	mux := http.NewServeMux()
	mux.HandleFunc("/debian/dists/stable/main/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testListing)
	})
	mux.HandleFunc("/debian/dists/stable/main/Contents-amd64.gz",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write(compressed.Bytes())
		})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "pkgstat.toml")
}

func TestRunPrintsRanking(t *testing.T) {
	srv := newTestMirror(t)

	out, _, err := execute(t,
		"--mirror", srv.URL+"/debian", "--config", missingConfig(t), "amd64")
	require.NoError(t, err)

	assert.Contains(t, out, "admin/sudo")
	assert.Contains(t, out, "editors/vim")
	assert.Contains(t, out, "editors/emacs")
	// admin/sudo owns the most files and must come first.
	assert.Less(t,
		bytes.Index([]byte(out), []byte("admin/sudo")),
		bytes.Index([]byte(out), []byte("editors/vim")))
}

func TestRunJSONOutput(t *testing.T) {
	srv := newTestMirror(t)

	out, _, err := execute(t,
		"--mirror", srv.URL+"/debian", "--config", missingConfig(t),
		"--json", "-n", "2", "amd64")
	require.NoError(t, err)

	var ranked []contents.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	want := []contents.Entry{
		{Package: "admin/sudo", Count: 3},
		{Package: "editors/vim", Count: 2},
	}
	assert.Equal(t, want, ranked)
}

func TestRunMatchFilter(t *testing.T) {
	srv := newTestMirror(t)

	out, _, err := execute(t,
		"--mirror", srv.URL+"/debian", "--config", missingConfig(t),
		"--json", "--match", "usr/bin/*", "amd64")
	require.NoError(t, err)

	var ranked []contents.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	want := []contents.Entry{
		{Package: "editors/vim", Count: 1},
		{Package: "editors/emacs", Count: 1},
		{Package: "admin/sudo", Count: 1},
	}
	assert.Equal(t, want, ranked)
}

func TestRunRejectsUnknownArchitecture(t *testing.T) {
	srv := newTestMirror(t)

	_, errOut, err := execute(t,
		"--mirror", srv.URL+"/debian", "--config", missingConfig(t), "riscv64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a supported architecture")
	assert.Contains(t, errOut, "amd64, arm64")
}

func TestRunRequiresArchitectureArgument(t *testing.T) {
	_, _, err := execute(t, "--config", missingConfig(t))
	require.Error(t, err)
}
