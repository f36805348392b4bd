// Package tool adapts application workflows to MCP tools and registers them
// on a go-sdk server.
package tool

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
)

// Tool is a named MCP tool. Execute never returns nil and never panics on
// workflow failures; they are reported through the failure envelope.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Execute     func(ctx context.Context, args map[string]any) *mcp.CallToolResult
}

// NewServer builds an MCP server exposing tools.
func NewServer(name, version string, tools []Tool, logger logrus.FieldLogger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	Register(server, tools, logger)
	return server
}

// Register adds every tool to server through the low-level handler API.
// Arguments are decoded into a generic map; malformed JSON is answered with
// an INVALID_PARAMS envelope instead of a protocol error.
func Register(server *mcp.Server, tools []Tool, logger logrus.FieldLogger) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	for _, t := range tools {
		t := t
		server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := decodeArguments(req)
			if err != nil {
				logger.WithError(err).WithField("tool", t.Name).Debug("rejecting malformed tool arguments")
				return ErrorResult(err), nil
			}
			res := t.Execute(ctx, args)
			if res == nil {
				return ErrorResult(nil), nil
			}
			return res, nil
		})
	}
}

func decodeArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	args := map[string]any{}
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, apperror.Validation("Invalid tool arguments: expected a JSON object")
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
