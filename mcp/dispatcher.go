package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ka2n/llamadocs/api"
	"github.com/ka2n/llamadocs/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// Dispatcher routes decoded requests to the library.
// It holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	lib   *api.Library
	tools []server.ServerTool
	read  server.ResourceHandlerFunc
}

// NewDispatcher creates a Dispatcher serving lib
func NewDispatcher(lib *api.Library) *Dispatcher {
	return &Dispatcher{
		lib:   lib,
		tools: InitTools(lib),
		read:  readResource(lib),
	}
}

// Handle answers req. It never returns nil and never panics: unexpected
// failures are reported as internal errors.
func (d *Dispatcher) Handle(ctx context.Context, req *Request) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic while handling request", "method", req.Method, "panic", r)
			resp = NewError(req.ID, failure.New(ErrInternal, failure.Message(fmt.Sprint(r))))
		}
	}()

	log.Debug("Handling request", "method", req.Method, "id", string(req.ID))

	result, err := d.dispatch(ctx, req)
	if err != nil {
		if rpcCode(err) == CodeInternalError {
			log.Error("Request failed", "method", req.Method, log.Err(err))
		} else {
			log.Warn("Request rejected", "method", req.Method, log.Err(err))
		}
		return NewError(req.ID, err)
	}
	return NewResult(req.ID, result)
}

func (d *Dispatcher) dispatch(ctx context.Context, req *Request) (any, error) {
	switch req.Method {
	case "initialize":
		return d.initialize(), nil
	case "resources/list":
		return ListResourcesResult{Resources: d.lib.Resources()}, nil
	case "resources/read":
		return d.readResource(ctx, req.Params)
	case "tools/list":
		return ListToolsResult{Tools: lo.Map(d.tools, func(t server.ServerTool, _ int) mcp.Tool {
			return t.Tool
		})}, nil
	case "tools/call":
		return d.callTool(ctx, req.Params)
	default:
		return nil, failure.New(ErrMethodNotFound,
			failure.Message("Method not found: "+req.Method),
			failure.Context{"method": req.Method})
	}
}

func (d *Dispatcher) initialize() InitializeResult {
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapabilities{
			Resources: ResourcesCapability{Subscribe: true, ListChanged: true},
			Tools:     ToolsCapability{ListChanged: true},
		},
		ServerInfo: ServerInfo{
			Name:    ServerName,
			Version: api.Version,
		},
	}
}

func (d *Dispatcher) readResource(ctx context.Context, raw json.RawMessage) (any, error) {
	var params ReadResourceParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	if params.URI == "" {
		return nil, failure.New(ErrInvalidParams,
			failure.Message("Invalid params: URI parameter is required"))
	}

	var req mcp.ReadResourceRequest
	req.Params.URI = params.URI
	contents, err := d.read(ctx, req)
	if err != nil {
		return nil, failure.Wrap(err)
	}
	return mcp.ReadResourceResult{Contents: contents}, nil
}

func (d *Dispatcher) callTool(ctx context.Context, raw json.RawMessage) (any, error) {
	var params CallToolParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	if params.Name == "" {
		return nil, failure.New(ErrInvalidParams,
			failure.Message("Invalid params: tool name is required"))
	}

	tool, ok := lo.Find(d.tools, func(t server.ServerTool) bool {
		return t.Tool.Name == params.Name
	})
	if !ok {
		return nil, failure.New(ErrMethodNotFound,
			failure.Message("Method not found: Unknown tool "+params.Name),
			failure.Context{"tool": params.Name})
	}

	var req mcp.CallToolRequest
	req.Params.Name = params.Name
	req.Params.Arguments = params.Arguments
	return tool.Handler(ctx, req)
}

// decodeParams unmarshals raw into out. Absent or null params leave out untouched.
func decodeParams(raw json.RawMessage, out any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidParams),
			failure.Message("Invalid params: "+err.Error()))
	}
	return nil
}

// ListToolsResult is the result of tools/list
type ListToolsResult struct {
	Tools []mcp.Tool `json:"tools"`
}
