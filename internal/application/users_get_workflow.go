package application

import (
	"context"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-mcp-user-server/internal/domain/repository"
)

type UsersGetResult struct {
	Users []UserSummary `json:"users"`
}

// UsersGetWorkflow lists every user, most recent first.
type UsersGetWorkflow struct {
	Repo   repo.UserRepository
	Logger logrus.FieldLogger
}

func NewUsersGetWorkflow(r repo.UserRepository, logger logrus.FieldLogger) *UsersGetWorkflow {
	return &UsersGetWorkflow{Repo: r, Logger: loggerOrStandard(logger)}
}

// Execute returns repository failures unchanged.
func (w *UsersGetWorkflow) Execute(ctx context.Context) (UsersGetResult, error) {
	users, err := w.Repo.FindAll(ctx)
	if err != nil {
		return UsersGetResult{}, err
	}
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, summarize(u))
	}
	w.Logger.WithField("count", len(out)).Debug("users listed")
	return UsersGetResult{Users: out}, nil
}
