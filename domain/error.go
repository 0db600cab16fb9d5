package domain

import (
	"errors"
	"fmt"
)

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// ErrorCode returns the sentinel code of err if err was built with WrapErrorf.
func ErrorCode(err error) error {
	var de *Error
	if errors.As(err, &de) {
		return de.Code()
	}
	return nil
}

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrInvalidInput will throw if the route request is rejected before any provider call
	ErrInvalidInput = errors.New("invalid route input")
	// ErrRouting will throw if every configured routing provider failed
	ErrRouting = errors.New("all routing providers failed")
	// ErrElevationService will throw if every elevation provider failed
	ErrElevationService = errors.New("all elevation providers failed")
	// ErrInsufficientData will throw if the elevation providers returned fewer than 2 usable samples
	ErrInsufficientData = errors.New("insufficient elevation data")
)

var MessageInternalServerError string = "internal server error"
