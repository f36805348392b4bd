package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-mcp-user-server/config"
	"github.com/oksasatya/go-mcp-user-server/internal/container"
	"github.com/oksasatya/go-mcp-user-server/pkg/helpers"
)

var demoUsers = []map[string]any{
	{"name": "Alice", "age": 30},
	{"name": "Bob", "age": 42},
	{"name": "Carol", "age": 27},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.DBDriver == config.DriverMemory || (cfg.DBDriver == config.DriverSQLite && cfg.SQLitePath == ":memory:") {
		log.Fatalf("seeding needs persistent storage; set SQLITE_PATH or DB_DRIVER=postgres")
	}
	logger := helpers.NewLogger(cfg.ServerName+"-seed", cfg.Env, cfg.LogLevel, os.Stderr)

	ctx := context.Background()
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer c.Close()

	for _, params := range demoUsers {
		u, err := c.UserCreate.Execute(ctx, params)
		if err != nil {
			helpers.LogError(logger, "failed to seed user", err, nil)
			continue
		}
		fmt.Printf("seeded user: id=%s name=%s age=%d\n", u.ID, u.Name, u.Age)
	}
}
