package models

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies why a fetch failed.
type FetchErrorKind string

const (
	FetchTimeout   FetchErrorKind = "timeout"
	FetchTransport FetchErrorKind = "transport"
	FetchStatus    FetchErrorKind = "status"
	FetchDecode    FetchErrorKind = "decode"
)

// FetchError is returned when either endpoint could not be read. Both
// payloads are discarded in that case.
type FetchError struct {
	Endpoint string
	Kind     FetchErrorKind
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Endpoint, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrNoSubdivisions signals a successful fetch carrying an empty subdivision list.
var ErrNoSubdivisions = errors.New("subdivision list is empty")

// ErrSnapshotNotFound is returned before the first cycle has completed.
var ErrSnapshotNotFound = errors.New("snapshot not found")
