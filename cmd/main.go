package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mcp-user-server/config"
	"github.com/oksasatya/go-mcp-user-server/internal/container"
	"github.com/oksasatya/go-mcp-user-server/internal/interface/middleware"
	"github.com/oksasatya/go-mcp-user-server/internal/router"
	"github.com/oksasatya/go-mcp-user-server/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()

	// stdout carries the protocol in stdio mode
	var logOut io.Writer = os.Stdout
	if cfg.Transport == config.TransportStdio {
		logOut = os.Stderr
	}
	logger := helpers.NewLogger(cfg.ServerName, cfg.Env, cfg.LogLevel, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer c.Close()

	switch cfg.Transport {
	case config.TransportStdio:
		err = runStdio(ctx, c)
	case config.TransportHTTP:
		err = runHTTP(ctx, c)
	default:
		err = errors.New("unsupported MCP_TRANSPORT " + cfg.Transport)
	}
	if err != nil {
		helpers.LogError(logger, "server stopped with error", err, nil)
		c.Close()
		os.Exit(1)
	}
	logger.Info("server exited properly")
}

func runStdio(ctx context.Context, c *container.Container) error {
	helpers.LogInfo(c.Logger, "serving MCP over stdio", logrus.Fields{"name": c.Config.ServerName, "version": c.Config.ServerVersion})
	err := c.MCPServer.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runHTTP(ctx context.Context, c *container.Container) error {
	cfg := c.Config
	gin.SetMode(cfg.GinMode)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.Recovery(c.Logger))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	reg.Use(middleware.RealIP())
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		helpers.LogInfo(c.Logger, "server starting", logrus.Fields{
			"port":      cfg.Port,
			"endpoint":  "/mcp",
			"stateless": cfg.MCPStateless,
			"driver":    cfg.DBDriver,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	c.Logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctxShutdown)
}
