package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mcp-user-server/internal/domain/entity"
	repo "github.com/oksasatya/go-mcp-user-server/internal/domain/repository"
	vo "github.com/oksasatya/go-mcp-user-server/internal/domain/valueobject"
	"github.com/oksasatya/go-mcp-user-server/pkg/helpers"
)

type UserCreateResult = UserSummary

type userCreateCommand struct {
	name vo.UserName
	age  vo.UserAge
}

// UserCreateWorkflow validates raw parameters, creates the user and persists it.
// Indexer and Publisher are optional and only run after a successful save.
type UserCreateWorkflow struct {
	Repo      repo.UserRepository
	Indexer   UserIndexer
	Publisher EventPublisher
	Logger    logrus.FieldLogger
}

func NewUserCreateWorkflow(r repo.UserRepository, indexer UserIndexer, publisher EventPublisher, logger logrus.FieldLogger) *UserCreateWorkflow {
	return &UserCreateWorkflow{Repo: r, Indexer: indexer, Publisher: publisher, Logger: loggerOrStandard(logger)}
}

// newUserCreateCommand validates name before age; age is not looked at when
// the name is invalid.
func newUserCreateCommand(params map[string]any) (userCreateCommand, error) {
	name, err := vo.NewUserName(vo.Field(params, "name"))
	if err != nil {
		return userCreateCommand{}, err
	}
	age, err := vo.NewUserAge(vo.Field(params, "age"))
	if err != nil {
		return userCreateCommand{}, err
	}
	return userCreateCommand{name: name, age: age}, nil
}

func (w *UserCreateWorkflow) Execute(ctx context.Context, params map[string]any) (UserCreateResult, error) {
	cmd, err := newUserCreateCommand(params)
	if err != nil {
		return UserCreateResult{}, err
	}

	u := entity.NewUser(cmd.name, cmd.age)
	if err := w.Repo.Save(ctx, u); err != nil {
		return UserCreateResult{}, err
	}
	w.Logger.WithField("user_id", u.ID()).Info("user created")

	w.afterCreate(ctx, u)
	return summarize(u), nil
}

// afterCreate runs the best-effort side effects; failures are only logged.
func (w *UserCreateWorkflow) afterCreate(ctx context.Context, u *entity.User) {
	if w.Indexer != nil {
		if err := w.Indexer.IndexUser(ctx, u); err != nil {
			w.Logger.WithError(err).WithField("user_id", u.ID()).Warn("es index failed")
		}
	}
	if w.Publisher != nil {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		event := map[string]any{
			"id":         u.ID().String(),
			"name":       u.Name().String(),
			"age":        u.Age().Int(),
			"created_at": helpers.FormatISO(u.CreatedAt()),
		}
		if err := w.Publisher.PublishJSON(pctx, EventUserCreated, event); err != nil {
			w.Logger.WithError(err).WithField("user_id", u.ID()).Warn("publish user event failed")
		}
	}
}
