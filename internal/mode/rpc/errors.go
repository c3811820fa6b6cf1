// ABOUTME: JSON-RPC error codes and the constructors the server and handlers use
// ABOUTME: Standard codes for protocol failures plus one application code for disabled stats

package rpc

import "fmt"

// Standard JSON-RPC 2.0 error codes.
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidReq     = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
)

// ErrCodeNoStats is returned by stats methods when no counter is attached.
const ErrCodeNoStats = -32001

// NewParseError reports a request line that is not valid JSON.
func NewParseError(msg string) *Error {
	return &Error{Code: ErrCodeParse, Message: msg}
}

// NewRequestTooLargeError reports a request line over the size limit. The
// line is dropped unread, so the response carries no id.
func NewRequestTooLargeError(limit int) *Error {
	return &Error{Code: ErrCodeInvalidReq, Message: fmt.Sprintf("request exceeds %d bytes", limit)}
}

// NewMethodNotFoundError reports an unknown method name.
func NewMethodNotFoundError(method string) *Error {
	return &Error{Code: ErrCodeMethodNotFound, Message: "method not found: " + method}
}

// NewInvalidParamsError reports params that do not fit the method.
func NewInvalidParamsError(msg string) *Error {
	return &Error{Code: ErrCodeInvalidParams, Message: msg}
}

// NewInternalError reports a server-side failure, such as an unencodable result.
func NewInternalError(msg string) *Error {
	return &Error{Code: ErrCodeInternal, Message: msg}
}

// NewNoStatsError reports that reply statistics are not being kept.
func NewNoStatsError() *Error {
	return &Error{Code: ErrCodeNoStats, Message: "statistics are disabled"}
}
