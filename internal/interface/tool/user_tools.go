package tool

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mcp-user-server/internal/application"
	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
)

const (
	GetUsersName   = "get-users"
	CreateUserName = "create-user"
)

// NewUserTools exposes the user workflows as the get-users and create-user tools.
func NewUserTools(get *application.UsersGetWorkflow, create *application.UserCreateWorkflow, logger logrus.FieldLogger) []Tool {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return []Tool{
		{
			Name:        GetUsersName,
			Description: "Get all users",
			InputSchema: &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}},
			Execute: func(ctx context.Context, _ map[string]any) *mcp.CallToolResult {
				res, err := get.Execute(ctx)
				if err != nil {
					logFailure(logger, GetUsersName, err)
					return ErrorResult(err)
				}
				return SuccessResult(res)
			},
		},
		{
			Name:        CreateUserName,
			Description: "Create a new user",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"name": {Type: "string", Description: "User name"},
					"age":  {Type: "number", Description: "User age"},
				},
				Required: []string{"name", "age"},
			},
			Execute: func(ctx context.Context, args map[string]any) *mcp.CallToolResult {
				res, err := create.Execute(ctx, args)
				if err != nil {
					logFailure(logger, CreateUserName, err)
					return ErrorResult(err)
				}
				return SuccessResult(res)
			},
		},
	}
}

func logFailure(logger logrus.FieldLogger, tool string, err error) {
	entry := logger.WithField("tool", tool).WithError(err)
	if apperror.IsKind(err, apperror.KindValidation) {
		entry.Debug("tool rejected input")
		return
	}
	entry.Error("tool failed")
}
