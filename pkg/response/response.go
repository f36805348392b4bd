// Package response writes HTTP bodies for the transport layer. Errors raised
// outside the MCP handler use the JSON-RPC 2.0 error envelope so clients can
// parse them like protocol errors.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
)

const jsonRPCVersion = "2.0"

type RPCErrorBody struct {
	Code    apperror.Code `json:"code"`
	Message string        `json:"message"`
}

// RPCErrorResponse is a JSON-RPC error with a null id.
type RPCErrorResponse struct {
	JSONRPC string       `json:"jsonrpc"`
	Error   RPCErrorBody `json:"error"`
	ID      any          `json:"id"`
}

func NewRPCError(code apperror.Code, message string) RPCErrorResponse {
	return RPCErrorResponse{
		JSONRPC: jsonRPCVersion,
		Error:   RPCErrorBody{Code: code, Message: message},
	}
}

// Error aborts the request with a JSON-RPC error envelope.
func Error(ctx *gin.Context, status int, code apperror.Code, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if rid := ctx.GetString("request_id"); rid != "" {
		ctx.Header("X-Request-ID", rid)
	}
	ctx.AbortWithStatusJSON(status, NewRPCError(code, message))
}

// Success writes data as JSON with the given status (200 when zero).
func Success[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}
