// Package container is the composition root: it builds every component from
// Config exactly once per process and owns their shutdown.
package container

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mcp-user-server/config"
	"github.com/oksasatya/go-mcp-user-server/internal/application"
	"github.com/oksasatya/go-mcp-user-server/internal/domain/repository"
	"github.com/oksasatya/go-mcp-user-server/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-mcp-user-server/internal/infrastructure/postgres"
	"github.com/oksasatya/go-mcp-user-server/internal/infrastructure/search"
	sqliteinfra "github.com/oksasatya/go-mcp-user-server/internal/infrastructure/sqlite"
	"github.com/oksasatya/go-mcp-user-server/internal/interface/tool"
	"github.com/oksasatya/go-mcp-user-server/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users      repository.UserRepository
	UsersGet   *application.UsersGetWorkflow
	UserCreate *application.UserCreateWorkflow
	Tools      []tool.Tool
	MCPServer  *mcp.Server

	// Optional integrations; nil when not configured or unreachable.
	Redis  *redis.Client
	Rabbit *helpers.RabbitPublisher
	ES     *elasticsearch.Client

	closers []func()
}

// New builds the container. A storage failure is fatal; optional
// integrations that cannot be reached are logged and left disabled.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	c := &Container{Config: cfg, Logger: logger}

	users, err := c.openUserRepository(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Users = users
	c.connectOptional(ctx)

	var indexer application.UserIndexer
	if c.ES != nil {
		indexer = search.NewUserIndexer(c.ES, cfg.ESUsersIndex)
	}
	var publisher application.EventPublisher
	if c.Rabbit != nil {
		publisher = c.Rabbit
	}

	c.UsersGet = application.NewUsersGetWorkflow(c.Users, logger)
	c.UserCreate = application.NewUserCreateWorkflow(c.Users, indexer, publisher, logger)
	c.Tools = tool.NewUserTools(c.UsersGet, c.UserCreate, logger)
	c.MCPServer = tool.NewServer(cfg.ServerName, cfg.ServerVersion, c.Tools, logger)
	return c, nil
}

func (c *Container) openUserRepository(ctx context.Context) (repository.UserRepository, error) {
	cfg := c.Config
	switch cfg.DBDriver {
	case config.DriverMemory:
		helpers.LogInfo(c.Logger, "using in-memory user store", nil)
		return memory.NewUserRepository(), nil
	case config.DriverPostgres:
		if err := pginfra.Migrate(cfg.PostgresDSN(), c.Logger); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		helpers.LogInfo(c.Logger, "connected to postgres", logrus.Fields{"host": cfg.DBHost, "db": cfg.DBName})
		return pginfra.NewUserRepository(pool, c.Logger), nil
	case config.DriverSQLite, "":
		db, err := sqliteinfra.Open(ctx, cfg.SQLitePath, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		c.closers = append(c.closers, func() { _ = db.Close() })
		helpers.LogInfo(c.Logger, "opened sqlite database", logrus.Fields{"path": cfg.SQLitePath})
		return sqliteinfra.NewUserRepository(db, c.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func (c *Container) connectOptional(ctx context.Context) {
	cfg := c.Config

	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		helpers.LogError(c.Logger, "redis unavailable, rate limiting disabled", err, logrus.Fields{"addr": cfg.RedisAddr})
	} else if rdb != nil {
		c.Redis = rdb
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQUserEventsQueue)
	if err != nil {
		helpers.LogError(c.Logger, "rabbitmq unavailable, user events disabled", err, nil)
	} else if pub != nil {
		c.Rabbit = pub
		c.closers = append(c.closers, pub.Close)
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		helpers.LogError(c.Logger, "elasticsearch unavailable, user indexing disabled", err, nil)
	} else if es != nil {
		c.ES = es
	}
}

// Close releases resources in reverse order of acquisition. It is safe to
// call more than once.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
