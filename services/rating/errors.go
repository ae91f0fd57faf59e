package rating

import (
	"errors"
	"fmt"
)

// ErrInvalidInput rejects an out-of-range rating or sample before any
// network call is made.
var ErrInvalidInput = errors.New("invalid input")

// ParseError reports one undecodable sample log entry. Decoding a
// whole log never fails on it; the entry is skipped and logged.
type ParseError struct {
	Entry  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse sample %q: %s", e.Entry, e.Reason)
}

// RemoteWriteFailure wraps a rejected store update. The optimistic
// in-memory aggregate already shown to the caller is not rolled back.
type RemoteWriteFailure struct {
	Op  string
	Err error
}

func (e *RemoteWriteFailure) Error() string {
	return fmt.Sprintf("remote write failed (%s): %v", e.Op, e.Err)
}

func (e *RemoteWriteFailure) Unwrap() error {
	return e.Err
}
