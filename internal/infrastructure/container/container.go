package container

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/roomly-app/roomly-backend/internal/config"
	httpdelivery "github.com/roomly-app/roomly-backend/internal/delivery/http"
	"github.com/roomly-app/roomly-backend/internal/delivery/http/handler"
	"github.com/roomly-app/roomly-backend/internal/infrastructure/cache"
	"github.com/roomly-app/roomly-backend/internal/infrastructure/database"
	"github.com/roomly-app/roomly-backend/internal/infrastructure/gemini"
	"github.com/roomly-app/roomly-backend/internal/infrastructure/server"
	"github.com/roomly-app/roomly-backend/internal/logger"
	"github.com/roomly-app/roomly-backend/internal/repository"
	"github.com/roomly-app/roomly-backend/internal/repository/memory"
	"github.com/roomly-app/roomly-backend/internal/repository/postgres"
	"github.com/roomly-app/roomly-backend/internal/usecase/directory"
	"github.com/roomly-app/roomly-backend/internal/usecase/engine"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Gemini *gemini.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	c := &Container{Config: cfg, Log: log}

	var (
		profileRepo  repository.ProfileRepository
		interestRepo repository.InterestRepository
		matchRepo    repository.MatchRepository
	)
	switch cfg.Storage.Type {
	case config.StorageTypePostgres:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.RunMigrations(context.Background(), db, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		c.DB = db
		profileRepo = postgres.NewProfileRepository(db)
		interestRepo = postgres.NewInterestRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
	case config.StorageTypeMemory:
		store := memory.NewStore()
		profileRepo = store.Profiles()
		interestRepo = store.Interests()
		matchRepo = store.Matches()
		log.Warn("using in-memory storage, data will not survive restarts")
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}

	// Redis is optional: without it profile lookups go straight to the store.
	var profileCache *cache.ProfileCache
	if cfg.Redis.Host != "" {
		redisClient, err := database.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = redisClient
		profileCache = cache.NewProfileCache(redisClient, cfg.App.ProfileCacheTTL)
	}

	// Gemini is optional: without a key the suggest-bio endpoint returns 503.
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Warn("failed to initialize gemini client, bio suggestions disabled", zap.Error(err))
		} else {
			c.Gemini = geminiClient
		}
	}

	directoryUseCase := directory.NewDirectoryUseCase(profileRepo, profileCache, c.Gemini, cfg.App, log)
	engineUseCase := engine.NewEngineUseCase(interestRepo, matchRepo, profileRepo, cfg.App.InterestMessageMaxLen, log)

	router := httpdelivery.NewRouter(
		handler.NewProfileHandler(directoryUseCase),
		handler.NewBrowseHandler(directoryUseCase),
		handler.NewInterestHandler(engineUseCase),
		handler.NewMatchHandler(engineUseCase),
		log,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup())
	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	_ = c.Log.Sync()
	return nil
}
