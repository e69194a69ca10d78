package content

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRegionName     = errors.New("empty region name")
	ErrDuplicateRegionName = errors.New("duplicate region name")
	ErrUnterminatedRegion  = errors.New("region is opened but never closed")
)

// RegionError locates a region defect inside a content file.
type RegionError struct {
	Path string
	Line int // 1-based
	Name string
	Err  error
}

func (e *RegionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: region '%s': %v", e.Path, e.Line, e.Name, e.Err)
}

func (e *RegionError) Unwrap() error {
	return e.Err
}
