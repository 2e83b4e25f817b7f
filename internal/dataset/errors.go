package dataset

import (
	"errors"
	"fmt"
)

// Kind classifies dataset errors so callers can distinguish failures that
// abort the whole run (missing file, malformed input, write faults) from
// failures scoped to a single column.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound means the input path does not exist.
	KindNotFound
	// KindParse means the input exists but is not a valid delimited table.
	KindParse
	// KindIO covers generic read/write faults.
	KindIO
	// KindColumn means a named column could not be processed.
	KindColumn
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindParse:
		return "parse_failure"
	case KindIO:
		return "io_failure"
	case KindColumn:
		return "column_failure"
	default:
		return "unknown"
	}
}

// Error is a dataset error tagged with a Kind and the path or column name
// it relates to.
type Error struct {
	Kind Kind
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from err, or KindUnknown if err is not a
// dataset error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

func notFoundErr(path string, err error) error {
	return &Error{Kind: KindNotFound, Name: path, Err: err}
}

func parseErr(path string, err error) error {
	return &Error{Kind: KindParse, Name: path, Err: err}
}

func ioErr(path string, err error) error {
	return &Error{Kind: KindIO, Name: path, Err: err}
}

func columnErr(name string, err error) error {
	return &Error{Kind: KindColumn, Name: name, Err: err}
}
