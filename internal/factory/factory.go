package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/seabattle-go/internal/dependencies/clock"
	"github.com/mcoot/seabattle-go/internal/dependencies/idgen"
	"github.com/mcoot/seabattle-go/internal/dependencies/random"
	"github.com/mcoot/seabattle-go/internal/services/directory"
	"github.com/mcoot/seabattle-go/internal/services/fleet"
	"github.com/mcoot/seabattle-go/internal/services/game"
	"github.com/mcoot/seabattle-go/internal/services/matchmaker"
	"github.com/mcoot/seabattle-go/internal/storage"
	"github.com/mcoot/seabattle-go/internal/storage/memory"
	redisstorage "github.com/mcoot/seabattle-go/internal/storage/redis"
	"github.com/mcoot/seabattle-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	IDs    idgen.Generator

	// Services
	Directory      *directory.Service
	Validator      *fleet.Validator
	GameController *game.Controller
	Matchmaker     *matchmaker.Controller

	// Transport
	Hub        *ws.Hub
	Notifier   *ws.Notifier
	Dispatcher *ws.Dispatcher
	Router     *ws.Router
	WSServer   *ws.Server

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// DirectoryConfig holds password hashing settings (optional)
	// If zero value, defaults to directory.DefaultConfig()
	DirectoryConfig directory.Config
	// WSConfig holds transport settings (optional)
	WSConfig ws.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), idgen.New(), cfg.DirectoryConfig, cfg.WSConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	ids idgen.Generator,
	dirCfg directory.Config,
	wsCfg ws.Config,
	logger *slog.Logger,
) *App {
	if wsCfg.QueueSize <= 0 {
		wsCfg.QueueSize = ws.DefaultConfig().QueueSize
	}

	component := func(name string) *slog.Logger {
		return logger.With(slog.String("component", name))
	}

	players := directory.New(store, clk, ids, dirCfg, component("directory"))
	validator := fleet.NewValidator()
	games := game.NewController(store, validator, players, clk, rnd, ids, component("game"))
	rooms := matchmaker.NewController(store, games, clk, ids, component("matchmaker"))

	wsLogger := component("ws")
	hub := ws.NewHub(wsLogger)
	notifier := ws.NewNotifier(hub, wsLogger)
	dispatcher := ws.NewDispatcher(wsCfg.QueueSize, wsLogger)
	router := ws.NewRouter(hub, players, rooms, games, notifier, wsLogger)
	server := ws.NewServer(hub, dispatcher, router, wsCfg, wsLogger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		IDs:            ids,
		Directory:      players,
		Validator:      validator,
		GameController: games,
		Matchmaker:     rooms,
		Hub:            hub,
		Notifier:       notifier,
		Dispatcher:     dispatcher,
		Router:         router,
		WSServer:       server,
		logger:         logger,
	}
}

// Seed registers the given players through the dispatcher
func (a *App) Seed(ctx context.Context, creds []directory.Credentials) error {
	return a.Dispatcher.Do(ctx, func(ctx context.Context) error {
		return a.Directory.Seed(ctx, creds)
	})
}

// Run processes game requests until ctx is cancelled
func (a *App) Run(ctx context.Context) {
	a.Dispatcher.Run(ctx)
}

// Close disconnects every client and releases storage
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
