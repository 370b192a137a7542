package rpc

import (
	"errors"
	"fmt"
)

// ErrorType classifies why a call failed.
type ErrorType string

const (
	// ErrorTypeTransport covers DNS, connect, TLS and body read failures, and
	// non-2xx HTTP responses (StatusCode is set for those).
	ErrorTypeTransport ErrorType = "transport"

	// ErrorTypeDecode covers bodies that are not JSON, results whose shape
	// does not match the expected type, null results and missing fields.
	ErrorTypeDecode ErrorType = "decode"

	// ErrorTypeRPC means the node answered with a JSON-RPC error object.
	ErrorTypeRPC ErrorType = "rpc"

	// ErrorTypeNumericParse means a result could not be read as a number.
	ErrorTypeNumericParse ErrorType = "numeric_parse"
)

// Sentinels for errors.Is against a *CallError of the matching type.
var (
	ErrTransport    = errors.New("rpc: transport error")
	ErrDecode       = errors.New("rpc: decode error")
	ErrRPC          = errors.New("rpc: node returned an error")
	ErrNumericParse = errors.New("rpc: numeric parse error")

	// ErrNullResult is wrapped in a decode error when the node returns a
	// null or absent result, e.g. for an unknown transaction hash.
	ErrNullResult = errors.New("result is null")
)

// CallError is returned by every Client call that fails.
type CallError struct {
	Type       ErrorType
	Method     string
	StatusCode int // HTTP status for non-2xx transport errors, else 0
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s (HTTP %d): %v", e.Method, e.Type, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Type, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Type.
func (e *CallError) Is(target error) bool {
	switch e.Type {
	case ErrorTypeTransport:
		return target == ErrTransport
	case ErrorTypeDecode:
		return target == ErrDecode
	case ErrorTypeRPC:
		return target == ErrRPC
	case ErrorTypeNumericParse:
		return target == ErrNumericParse
	}
	return false
}

// TypeOf returns the ErrorType of err, or "" when err is not a CallError.
func TypeOf(err error) ErrorType {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ""
}

func transportError(method string, err error) *CallError {
	return &CallError{Type: ErrorTypeTransport, Method: method, Err: err}
}

func decodeError(method string, err error) *CallError {
	return &CallError{Type: ErrorTypeDecode, Method: method, Err: err}
}
