package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
	"github.com/oksasatya/go-mcp-user-server/pkg/response"
)

// Recovery turns a panic into a JSON-RPC internal error with status 500.
func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		}).Error("recovered from panic")
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Internal server error")
	})
}
