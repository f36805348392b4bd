package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mcp-user-server/internal/domain/entity"
)

// EventUserCreated is the event type published after a user is persisted.
const EventUserCreated = "user.created"

// UserIndexer mirrors users into a search index.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
}

// EventPublisher ships domain events to a message broker.
type EventPublisher interface {
	PublishJSON(ctx context.Context, eventType string, body any) error
}

// UserSummary is the public projection of a user; timestamps are not exposed.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func summarize(u *entity.User) UserSummary {
	return UserSummary{ID: u.ID().String(), Name: u.Name().String(), Age: u.Age().Int()}
}

func loggerOrStandard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}
