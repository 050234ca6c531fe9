// Package cerr provides the core errors which carry an HTTP status code
// in addition to their wrapped error. The adapters layer reports them
// to end-users, while other errors are reported as internal errors.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDataSource is wrapped by all errors which are returned by the
// DataSource function. Use errors.Is in order to detect them.
var ErrDataSource = errors.New("data source failure")

type Error struct {
	Err            error
	HTTPStatusCode int

	// Message is the public message of this error. When it is empty,
	// the Err.Error() text is considered to be safe to be reported.
	Message string
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// PublicMessage returns the message which may be shown to end-users.
func (e *Error) PublicMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// DataSource wraps err as a failure of the data fetching step, such as
// a database error or a timeout. The err details are not reported to
// the end-users and a generic message is used instead.
func DataSource(err error) *Error {
	return &Error{
		Err:            fmt.Errorf("%w: %w", ErrDataSource, err),
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        "failed to search nearby vendors",
	}
}
