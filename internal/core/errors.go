// ABOUTME: Error taxonomy for the conversation memory service
// ABOUTME: Session errors are sentinels; validation failures carry the field
package core

import (
	"errors"
	"fmt"
)

// ErrUnknownSession is returned when an operation references a session id
// with no live or persisted record.
var ErrUnknownSession = errors.New("unknown session")

// ErrDuplicateSession is returned when StartNewSession is given an id that
// is already active.
var ErrDuplicateSession = errors.New("session already active")

// ValidationError reports an out-of-range score or an empty required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
