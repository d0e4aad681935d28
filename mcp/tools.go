package mcp

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/ka2n/llamadocs/api"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/morikuni/failure/v2"
)

const (
	ToolSearchDocs   = "search_llamaindex_docs"
	ToolGetResource  = "get_llamaindex_resource"
	formatText       = "text"
	formatMarkdown   = "markdown"
	argumentsTagName = "json"
)

var validate = validator.New()

// InitTools returns the tools served for lib, in the order they are listed
func InitTools(lib *api.Library) []server.ServerTool {
	tools := []server.ServerTool{}

	tools = append(tools, newServerTool(SearchDocs(lib)))
	tools = append(tools, newServerTool(GetResource(lib)))

	return tools
}

func SearchDocs(lib *api.Library) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			ToolSearchDocs,
			mcp.WithDescription("Search through LlamaIndex documentation"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query for LlamaIndex documentation")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results to return"), mcp.DefaultNumber(api.DefaultSearchLimit)),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Query string `json:"query" validate:"required"`
				Limit int    `json:"limit" validate:"gte=0"`
			}
			args := ToolArguments{Limit: api.DefaultSearchLimit}
			if err := decodeArguments(ctx, req.Params.Arguments, &args); err != nil {
				return nil, err
			}

			results, err := lib.Search(ctx, args.Query, args.Limit)
			if failure.Is(err, api.ErrInvalidLimit) {
				return nil, failure.Wrap(err, failure.WithCode(ErrInvalidParams),
					failure.Message("Invalid params: limit must not be negative"))
			}
			if err != nil {
				return nil, failure.Wrap(err)
			}

			b, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return nil, failure.Wrap(err)
			}

			return mcp.NewToolResultText(string(b)), nil
		}
}

func GetResource(lib *api.Library) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			ToolGetResource,
			mcp.WithDescription("Get the full content of a specific LlamaIndex documentation resource"),
			mcp.WithString("uri", mcp.Required(), mcp.Description("URI of the documentation resource to fetch")),
			mcp.WithString("format", mcp.Description("Output format, plain text or Markdown"), mcp.Enum(formatText, formatMarkdown)),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				URI    string `json:"uri" validate:"required"`
				Format string `json:"format" validate:"omitempty,oneof=text markdown"`
			}
			var args ToolArguments
			if err := decodeArguments(ctx, req.Params.Arguments, &args); err != nil {
				return nil, err
			}

			if args.Format == formatMarkdown {
				return mcp.NewToolResultText(lib.ReadMarkdown(ctx, args.URI)), nil
			}
			return mcp.NewToolResultText(lib.Read(ctx, args.URI)), nil
		}
}

// decodeArguments fills out from the raw tool arguments and validates it.
// Fields absent from arguments keep the values already set in out.
func decodeArguments(ctx context.Context, arguments map[string]interface{}, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: argumentsTagName,
		Result:  out,
	})
	if err != nil {
		return failure.Wrap(err)
	}
	if err := decoder.Decode(arguments); err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidParams),
			failure.Message("Invalid params: "+err.Error()))
	}
	if err := validate.StructCtx(ctx, out); err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidParams),
			failure.Message("Invalid params: "+err.Error()))
	}
	return nil
}
