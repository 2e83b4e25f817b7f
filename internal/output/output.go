// Package output renders CLI results in either human text or JSON.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
)

// Format selects how results are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Writer renders values to stdout in the configured format.
type Writer struct {
	format Format
	out    io.Writer
}

// New creates a Writer for the given format writing to stdout.
func New(format Format) *Writer {
	return &Writer{format: format, out: os.Stdout}
}

// IsJSON reports whether the writer emits JSON.
func (w *Writer) IsJSON() bool {
	return w.format == FormatJSON
}

// JSON writes v as indented JSON. No-op in text mode.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Line prints a formatted line in text mode.
func (w *Writer) Line(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Table prints a tab-aligned table in text mode.
func (w *Writer) Table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}
