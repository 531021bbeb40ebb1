// Package report renders ranked package counts for display.
package report

import (
	"encoding/json"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pkgstat/pkgstat/internal/contents"
)

var header = color.New(color.Bold)

// Render formats the ranking as a text table with 1-based indices.
func Render(entries []contents.Entry) string {
	var b strings.Builder
	b.WriteString(header.Sprintf("Top %d packages by file count", len(entries)))
	b.WriteByte('\n')

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Package", "Files"})
	for i, e := range entries {
		t.AppendRow(table.Row{i + 1, e.Package, humanize.Comma(int64(e.Count))})
	}
	b.WriteString(t.Render())
	b.WriteByte('\n')
	return b.String()
}

// RenderJSON emits the ranking as a JSON array, one object per package. An
// empty ranking renders as [], not null.
func RenderJSON(entries []contents.Entry) (string, error) {
	if entries == nil {
		entries = []contents.Entry{}
	}
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
