package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/seabattle-go/internal/api"
	"github.com/mcoot/seabattle-go/internal/config"
	"github.com/mcoot/seabattle-go/internal/factory"
	"github.com/mcoot/seabattle-go/internal/services/directory"
	redisstorage "github.com/mcoot/seabattle-go/internal/storage/redis"
	"github.com/mcoot/seabattle-go/internal/ws"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:   "seabattle",
		Short: "Sea battle game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("SEABATTLE_CONFIG"), "YAML config file (env: SEABATTLE_CONFIG)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Set up logging with JSON output
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		DirectoryConfig: directory.Config{BcryptCost: cfg.BcryptCost},
		WSConfig: ws.Config{
			SendBuffer: cfg.SendBuffer,
			QueueSize:  cfg.QueueSize,
		},
		Logger:      logger,
		StorageType: cfg.Storage.Type,
	}

	// Configure Redis if storage type is redis
	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close error", slog.String("error", err.Error()))
		}
	}()

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcherDone := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(dispatcherDone)
	}()

	if err := app.Seed(ctx, cfg.SeedPlayers); err != nil {
		return fmt.Errorf("seed players: %w", err)
	}

	httpRouter := api.NewRouter(api.RouterConfig{
		Logger:     logger.With(slog.String("component", "http")),
		Runner:     app.Dispatcher,
		Matchmaker: app.Matchmaker,
		Directory:  app.Directory,
		Conns:      app.Hub,
		WSHandler:  app.WSServer,
		StaticDir:  cfg.StaticDir,
	})
	wsRouter := api.NewWSRouter(logger.With(slog.String("component", "ws_listener")), app.WSServer)

	// Create servers
	httpConfig := api.DefaultServerConfig()
	httpConfig.Port = cfg.HTTPPort
	httpServer := api.NewServer(httpRouter, httpConfig, logger)

	wsConfig := api.DefaultServerConfig()
	wsConfig.Port = cfg.WSPort
	wsServer := api.NewServer(wsRouter, wsConfig, logger)

	servers := []*api.Server{httpServer, wsServer}
	for _, s := range servers {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	// Start servers in goroutines
	errCh := make(chan error, len(servers))
	for _, s := range servers {
		s := s
		go func() {
			errCh <- s.Start()
		}()
	}

	logger.Info("server started",
		slog.String("http_addr", httpServer.Addr()),
		slog.String("ws_addr", wsServer.Addr()),
		slog.String("storage", cfg.Storage.Type),
	)

	// Wait for shutdown or error
	var runErr error
	select {
	case runErr = <-errCh:
		if runErr != nil {
			logger.Error("server error", slog.String("error", runErr.Error()))
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	for _, s := range servers {
		if err := s.Shutdown(context.Background()); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	// Game connections are hijacked, so the HTTP shutdown leaves them open
	app.Hub.Close()
	cancel()
	<-dispatcherDone

	logger.Info("server stopped")
	return runErr
}
