package domain

import (
	"errors"
	"fmt"
)

// Structural parse failures. Either one signals likely upstream format drift
// and is propagated to the caller, unlike per-row issues which drop the row.
var (
	ErrSectionNotFound = errors.New("section not found")
	ErrColumnNotFound  = errors.New("column not found")
)

// ParseError names the report element a parser could not locate.
type ParseError struct {
	Report  string // "reservoir" or "schedule"
	Element string // the missing element, e.g. `"NFD" column header`
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s report: %s: %v", e.Report, e.Element, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FetchError classifies a transport failure or non-success status from a
// report source. Status is zero when the request never got a response.
type FetchError struct {
	Source string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s report from %s: %v", e.Source, e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s report from %s: status %d", e.Source, e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }
