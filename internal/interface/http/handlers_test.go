package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-mcp-user-server/internal/application"
	"github.com/oksasatya/go-mcp-user-server/internal/infrastructure/memory"
	"github.com/oksasatya/go-mcp-user-server/internal/interface/tool"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestServer(t *testing.T, stateless bool) *httptest.Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	repo := memory.NewUserRepository()
	tools := tool.NewUserTools(
		application.NewUsersGetWorkflow(repo, logger),
		application.NewUserCreateWorkflow(repo, nil, nil, logger),
		logger,
	)
	h := NewMCPHandler(tool.NewServer("mcp-template", "1.0.0", tools, logger), stateless, logger)

	r := gin.New()
	r.Any("/mcp", h.Handle)
	r.GET("/healthz", NewHealthHandler("mcp-template", "1.0.0").Health)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body HealthResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, HealthResponse{Status: "ok", Name: "mcp-template", Version: "1.0.0"}, body)
}

func TestMCPOverStreamableHTTP(t *testing.T) {
	for _, stateless := range []bool{false, true} {
		srv := newTestServer(t, stateless)
		ctx := context.Background()

		client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
		session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: srv.URL + "/mcp"}, nil)
		require.NoError(t, err)

		assert.Equal(t, "mcp-template", session.InitializeResult().ServerInfo.Name)

		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, tools.Tools, 2)

		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      tool.CreateUserName,
			Arguments: map[string]any{"name": "Alice", "age": 30},
		})
		require.NoError(t, err)
		var created application.UserSummary
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(*mcp.TextContent).Text), &created))
		assert.Equal(t, "Alice", created.Name)

		res, err = session.CallTool(ctx, &mcp.CallToolParams{Name: tool.GetUsersName})
		require.NoError(t, err)
		assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, created.ID)

		_ = session.Close()
	}
}
