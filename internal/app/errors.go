package app

import "errors"

var (
	ErrChecksFailed  = errors.New("one or more bind checks failed")
	ErrNoAddresses   = errors.New("no addresses to check")
	ErrUnknownFormat = errors.New("unknown format")
)

type CodeError struct {
	Code int
	Err  error
}

func (e CodeError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e CodeError) Unwrap() error {
	return e.Err
}

func NewCodeError(code int, err error) error {
	return CodeError{Code: code, Err: err}
}
