package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrContentFileNotFound = errors.New("content file not found")
	ErrRegionNotFound      = errors.New("region not found")
)

// ReferenceError locates a documentation reference that cannot be resolved.
type ReferenceError struct {
	Doc    string
	Line   int
	Path   string
	Region string
	Err    error
}

func (e *ReferenceError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("%s:%d: %v: '%s' in %s", e.Doc, e.Line, e.Err, e.Region, e.Path)
	}
	return fmt.Sprintf("%s:%d: %v: %s", e.Doc, e.Line, e.Err, e.Path)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}
