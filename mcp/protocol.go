package mcp

import (
	"encoding/json"

	"github.com/ka2n/llamadocs/api"
	"github.com/morikuni/failure/v2"
)

const (
	// JSONRPCVersion is written on every response
	JSONRPCVersion = "2.0"
	// ProtocolVersion is the MCP revision announced by initialize
	ProtocolVersion = "2024-11-05"
	// ServerName is announced by initialize
	ServerName = "llamaindex-docs-server"
)

// Request is a single JSON-RPC request.
// ID is kept raw so that it is echoed back exactly as received.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response carries either Result or Error, never both
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the JSON-RPC error object
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewResult builds a success response for id
func NewResult(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Result: result}
}

// NewError builds an error response for id from err
func NewError(id json.RawMessage, err error) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &Error{
			Code:    rpcCode(err),
			Message: rpcMessage(err),
		},
	}
}

// DecodeRequest parses body into a Request.
// A body that is not a JSON object fails with ErrParse. A jsonrpc member other
// than "2.0", or a missing, non-string or empty method, fails with
// ErrInvalidRequest; the returned Request still carries the ID so the error can
// be correlated. An absent jsonrpc member is accepted.
func DecodeRequest(body []byte) (*Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, failure.New(ErrParse, failure.Message("Parse error: Invalid JSON"))
	}

	req := &Request{
		ID:     fields["id"],
		Params: fields["params"],
	}
	if v, ok := fields["jsonrpc"]; ok {
		if err := json.Unmarshal(v, &req.JSONRPC); err != nil || req.JSONRPC != JSONRPCVersion {
			return req, failure.New(ErrInvalidRequest, failure.Message(`Invalid Request: jsonrpc must be "2.0"`))
		}
	}

	method, ok := fields["method"]
	if !ok {
		return req, failure.New(ErrInvalidRequest, failure.Message("Invalid Request: missing method"))
	}
	if err := json.Unmarshal(method, &req.Method); err != nil || req.Method == "" {
		return req, failure.New(ErrInvalidRequest, failure.Message("Invalid Request: method must be a non-empty string"))
	}
	return req, nil
}

// InitializeResult is the result of the initialize method
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

// ServerCapabilities advertises what the server supports
type ServerCapabilities struct {
	Resources ResourcesCapability `json:"resources"`
	Tools     ToolsCapability     `json:"tools"`
}

type ResourcesCapability struct {
	Subscribe   bool `json:"subscribe"`
	ListChanged bool `json:"listChanged"`
}

type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ServerInfo identifies the server
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ListResourcesResult is the result of resources/list
type ListResourcesResult struct {
	Resources []api.Resource `json:"resources"`
}

// ReadResourceParams are the params of resources/read
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// CallToolParams are the params of tools/call
type CallToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}
