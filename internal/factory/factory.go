package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/brewduel/internal/dependencies/clock"
	"github.com/mcoot/brewduel/internal/dependencies/random"
	"github.com/mcoot/brewduel/internal/services/matchmaker"
	"github.com/mcoot/brewduel/internal/services/results"
	"github.com/mcoot/brewduel/internal/services/rooms"
	"github.com/mcoot/brewduel/internal/services/scoring"
	"github.com/mcoot/brewduel/internal/storage"
	"github.com/mcoot/brewduel/internal/storage/memory"
	redisstorage "github.com/mcoot/brewduel/internal/storage/redis"
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

	// Services
	ScoringService    *scoring.Service
	Matchmaker        *matchmaker.Controller
	ResultsController *results.Controller
	RoomService       *rooms.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// LockTimeout bounds how long a request waits for a room or matchmaking lock
	// If zero, defaults to storage.DefaultLockTimeout
	LockTimeout time.Duration
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
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}

	logger.Info("storage initialised", slog.String("type", storageType))

	return newWithDependencies(store, clock.New(), random.New(), logger, cfg.LockTimeout), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	lockTimeout time.Duration,
) *App {
	if lockTimeout <= 0 {
		lockTimeout = storage.DefaultLockTimeout
	}

	scoringService := scoring.New()

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		ScoringService:    scoringService,
		Matchmaker:        matchmaker.NewController(store, clk, rnd, logger, lockTimeout),
		ResultsController: results.NewController(store, scoringService, clk, logger, lockTimeout),
		RoomService:       rooms.New(store),
	}
}

// Close releases the storage backend's connections, if it holds any
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
