package service

import "errors"

var ErrGatewayNotConfigured = errors.New("GATEWAY_NOT_CONFIGURED")

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
