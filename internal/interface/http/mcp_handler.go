package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// MCPHandler serves the Streamable HTTP transport for a single MCP server.
type MCPHandler struct {
	Server  *mcp.Server
	Logger  logrus.FieldLogger
	handler http.Handler
}

// NewMCPHandler wraps server in the go-sdk streamable handler. In stateless
// mode every request is served by a fresh session and no Mcp-Session-Id is issued.
func NewMCPHandler(server *mcp.Server, stateless bool, logger logrus.FieldLogger) *MCPHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	h := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{Stateless: stateless})
	return &MCPHandler{Server: server, Logger: logger, handler: h}
}

func (h *MCPHandler) Handle(c *gin.Context) {
	h.Logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"session":    c.GetHeader("Mcp-Session-Id"),
	}).Debug("mcp request")
	h.handler.ServeHTTP(c.Writer, c.Request)
}
