package timetable

import (
	"errors"
	"fmt"
)

// ErrUnknownSemester reports a semester name outside
// Spring/Summer/Fall/Winter. A caller-input error, never retried.
var ErrUnknownSemester = errors.New("unknown semester name")

// ErrInvalidRequest corresponds to the upstream "THERE IS AN ERROR WITH
// YOUR REQUEST" marker: the search parameters themselves were rejected.
var ErrInvalidRequest = errors.New("upstream flagged the search parameters as invalid")

// errNoSections is internal: the upstream "no sections found" page is a
// valid empty result, not a failure the caller should see.
var errNoSections = errors.New("no sections found for this inquiry")

// RejectedError is an upstream "problem with your request" page that is
// not the benign no-sections case. Message carries the text embedded in
// the response.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("upstream rejected the search: %s", e.Message)
}

// MalformedRowError is a result row that failed structural parsing.
// It aborts the whole query rather than silently dropping the row.
type MalformedRowError struct {
	Row   int
	Cause string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed section row %d: %s", e.Row, e.Cause)
}
