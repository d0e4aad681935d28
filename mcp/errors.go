package mcp

import (
	"github.com/morikuni/failure/v2"
)

// ErrorCode defines error types for protocol handling
type ErrorCode string

const (
	// ErrParse represents a body that is not a JSON object
	ErrParse ErrorCode = "ParseError"
	// ErrInvalidRequest represents a JSON object that is not a valid request
	ErrInvalidRequest ErrorCode = "InvalidRequest"
	// ErrMethodNotFound represents an unknown method or tool
	ErrMethodNotFound ErrorCode = "MethodNotFound"
	// ErrInvalidParams represents missing or malformed parameters
	ErrInvalidParams ErrorCode = "InvalidParams"
	// ErrInternal represents an unexpected failure while handling a request
	ErrInternal ErrorCode = "InternalError"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// JSON-RPC 2.0 error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// rpcCode maps err to a JSON-RPC error code. Errors without a known code are internal.
func rpcCode(err error) int {
	switch {
	case failure.Is(err, ErrParse):
		return CodeParseError
	case failure.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case failure.Is(err, ErrMethodNotFound):
		return CodeMethodNotFound
	case failure.Is(err, ErrInvalidParams):
		return CodeInvalidParams
	default:
		return CodeInternalError
	}
}

// rpcMessage returns the user facing message attached to err
func rpcMessage(err error) string {
	if rpcCode(err) == CodeInternalError {
		return "Internal error"
	}
	if msg := failure.MessageOf(err); msg != "" {
		return msg.String()
	}
	return err.Error()
}
