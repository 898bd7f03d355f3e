package store

import (
	"errors"
	"fmt"
)

// ErrSuperseded is returned when a load finishes after a newer load has
// already started; its result is discarded to keep collections in order.
var ErrSuperseded = errors.New("load superseded by a newer request")

// LoadError reports a failed fetch: a transport error or a non-success
// status from the data source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load payload from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a payload whose top-level shape matched none of the
// supported document forms. The store degrades to empty collections.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse payload: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
