package tool

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
)

// ErrorBody is the payload carried by a failure envelope.
type ErrorBody struct {
	Code       apperror.Code `json:"code"`
	Message    string        `json:"message"`
	StatusCode int           `json:"statusCode"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// SuccessResult wraps data as a single JSON text content.
func SuccessResult(data any) *mcp.CallToolResult {
	b, err := json.Marshal(data)
	if err != nil {
		return ErrorResult(apperror.Internal("Failed to encode tool result", err))
	}
	return textResult(string(b))
}

// ErrorResult wraps err as a failure envelope. Errors that are not
// *apperror.Error are reported as internal errors without their cause.
func ErrorResult(err error) *mcp.CallToolResult {
	ae := apperror.From(err, "")
	if ae == nil {
		ae = apperror.Internal("", nil)
	}
	b, mErr := json.Marshal(errorEnvelope{Error: ErrorBody{
		Code:       ae.Code,
		Message:    ae.Message,
		StatusCode: ae.StatusCode,
	}})
	if mErr != nil {
		b = []byte(`{"error":{"code":-32603,"message":"Internal server error","statusCode":500}}`)
	}
	return textResult(string(b))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}
