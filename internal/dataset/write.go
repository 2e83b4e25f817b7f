package dataset

import (
	"encoding/csv"
	"os"
)

// Write serializes the table to path in the same delimited format it was
// loaded with: header row first, same column order, no index column.
// Failures are KindIO.
func Write(t *Table, path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return ioErr(path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = opts.delimiter()
	if err := w.WriteAll(t.Records()); err != nil {
		_ = f.Close()
		return ioErr(path, err)
	}
	if err := f.Close(); err != nil {
		return ioErr(path, err)
	}
	return nil
}
