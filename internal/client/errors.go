package client

import (
	"fmt"

	"github.com/lonng/onyou/pkg/errutil"
	"github.com/pkg/errors"
)

// ResponseError is a request the API answered with a failure, either by
// HTTP status or by the status of the response envelope
type ResponseError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.URL, e.Status)
}

// ClientError is a 4xx failure
type ClientError ResponseError

func (e *ClientError) Error() string {
	return (*ResponseError)(e).Error()
}

// ServerError is a 5xx failure
type ServerError ResponseError

func (e *ServerError) Error() string {
	return (*ResponseError)(e).Error()
}

// authError is a rejected login. Its cause is errutil.ErrAuthFailed, the
// response error stays reachable through Unwrap.
type authError struct {
	err error
}

func (e *authError) Error() string {
	return errutil.ErrAuthFailed.Error() + ": " + e.err.Error()
}

func (e *authError) Cause() error {
	return errutil.ErrAuthFailed
}

func (e *authError) Unwrap() error {
	return e.err
}

func (e *authError) Is(target error) bool {
	return target == errutil.ErrAuthFailed
}

func classify(e *ResponseError) error {
	if e.Status >= 500 {
		return (*ServerError)(e)
	}
	return (*ClientError)(e)
}

// IsRemoteFailure reports whether err is a failure reported by the API, as
// opposed to a transport or local error
func IsRemoteFailure(err error) bool {
	return responseError(err) != nil
}

// Status returns the failure status of a remote failure, 0 otherwise
func Status(err error) int {
	if re := responseError(err); re != nil {
		return re.Status
	}
	return 0
}

func responseError(err error) *ResponseError {
	var (
		ce *ClientError
		se *ServerError
		re *ResponseError
	)
	switch {
	case errors.As(err, &ce):
		return (*ResponseError)(ce)
	case errors.As(err, &se):
		return (*ResponseError)(se)
	case errors.As(err, &re):
		return re
	}
	return nil
}
