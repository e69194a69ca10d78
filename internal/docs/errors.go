package docs

import (
	"errors"
	"fmt"
)

// Attribute errors.
var (
	ErrNotAnAttribute   = errors.New("not an attribute")
	ErrUnmatchedBracket = errors.New("unmatched bracket")
	ErrEmptyAttribute   = errors.New("empty attribute")
	ErrInvalidCharacter = errors.New("invalid character in attribute")
)

// Tag and code block errors.
var (
	ErrUnclosedComment         = errors.New("marker comment is not closed with '-->'")
	ErrTagRemainder            = errors.New("unexpected text after tag")
	ErrInvalidPath             = errors.New("invalid path attribute")
	ErrInvalidSnippet          = errors.New("invalid snippet attribute")
	ErrUnmatchedNestedBrackets = errors.New("unmatched nested brackets")
	ErrMissingCodeBlock        = errors.New("no code block directly after tag; remove the tag or the blank lines between tag and code block")
	ErrInvalidFence            = errors.New("code fence needs at least three backticks or tildes")
	ErrFenceRemainder          = errors.New("unexpected text after code fence")
	ErrInvalidLanguage         = errors.New("invalid language specifier")
	ErrFenceMismatch           = errors.New("closing fence does not match opening fence")
	ErrUnterminatedCodeBlock   = errors.New("code block is never closed")
)

// AttributeError reports a malformed bracketed attribute.
type AttributeError struct {
	Attribute string
	Err       error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute '%s': %v", e.Attribute, e.Err)
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}

// TagError locates a failure in a documentation file.
type TagError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("%s:%d: '%s': %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *TagError) Unwrap() error {
	return e.Err
}
