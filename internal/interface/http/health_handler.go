package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-mcp-user-server/pkg/response"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type HealthHandler struct {
	Name    string
	Version string
}

func NewHealthHandler(name, version string) *HealthHandler {
	return &HealthHandler{Name: name, Version: version}
}

func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, HealthResponse{Status: "ok", Name: h.Name, Version: h.Version})
}
