package nvp

import (
	"context"
	"errors"
	"fmt"
	"net"
)

const (
	ErrCodeTimeout        = "TIMEOUT"
	ErrCodeTransportError = "TRANSPORT_ERROR"
	ErrCodeResponseError  = "RESPONSE_ERROR"
)

var (
	ErrTimeout   = errors.New(ErrCodeTimeout)
	ErrTransport = errors.New(ErrCodeTransportError)
	ErrResponse  = errors.New(ErrCodeResponseError)
)

type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureTransport
	FailureTimeout
	FailureResponse
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "transport"
	case FailureTimeout:
		return "timeout"
	case FailureResponse:
		return "response"
	default:
		return "unknown"
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func classifyPostError(err error) (FailureKind, error) {
	if isTimeout(err) {
		return FailureTimeout, fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return FailureTransport, fmt.Errorf("%w: %w", ErrTransport, err)
}

func classifyReadError(err error) (FailureKind, error) {
	if isTimeout(err) {
		return FailureTimeout, fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return FailureResponse, fmt.Errorf("%w: %w", ErrResponse, err)
}
