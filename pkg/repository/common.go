package repository

import "strings"

// permanentError stops repeater, the wrapped error is not worth another attempt
type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	if e.err == nil {
		return "permanent error"
	}
	return e.err.Error()
}

// Is matches any permanentError, a zero value is used as repeater's stop error
func (e *permanentError) Is(target error) bool {
	_, ok := target.(*permanentError)
	return ok
}

func (e *permanentError) Unwrap() error { return e.err }

// transientMarkers are error fragments of contended writes, sqlite busy/locked and postgres conflicts
var transientMarkers = []string{
	"SQLITE_BUSY",
	"database is locked",
	"database table is locked",
	"could not serialize access",
	"deadlock detected",
}

// isTransient reports whether a failed write may succeed on retry
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range transientMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
