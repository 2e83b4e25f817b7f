package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Options controls the delimited format used for both loading and writing.
type Options struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
	// TrimLeadingSpace strips leading whitespace in fields while reading.
	TrimLeadingSpace bool
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// Load reads a delimited file with a header row into a Table.
//
// Failure kinds: KindNotFound when the path does not exist, KindParse for
// malformed input (ragged rows, duplicate or empty header, bare quotes),
// KindIO for anything else.
func Load(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundErr(path, err)
		}
		return nil, ioErr(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = opts.delimiter()
	r.TrimLeadingSpace = opts.TrimLeadingSpace
	// FieldsPerRecord defaults to the header width, so ragged rows surface
	// as csv.ErrFieldCount.

	records, err := r.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, parseErr(path, err)
		}
		return nil, ioErr(path, err)
	}
	if len(records) == 0 {
		return nil, parseErr(path, fmt.Errorf("missing header row"))
	}

	tbl, err := New(records[0], records[1:])
	if err != nil {
		return nil, parseErr(path, err)
	}
	return tbl, nil
}
