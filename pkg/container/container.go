package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/config"
	authorHandler "catalog-backend/internal/domains/author/handler"
	authorService "catalog-backend/internal/domains/author/service"
	bookHandler "catalog-backend/internal/domains/book/handler"
	bookService "catalog-backend/internal/domains/book/service"
	characterHandler "catalog-backend/internal/domains/character/handler"
	characterService "catalog-backend/internal/domains/character/service"
	generationHandler "catalog-backend/internal/domains/generation/handler"
	"catalog-backend/internal/domains/generation/job"
	generationRepo "catalog-backend/internal/domains/generation/repository"
	generationService "catalog-backend/internal/domains/generation/service"
	"catalog-backend/internal/infrastructure/artifact"
	infraCache "catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/infrastructure/generative"
	"catalog-backend/internal/infrastructure/metrics"
	"catalog-backend/internal/infrastructure/storage"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Thứ tự: Config → Infrastructure → Repositories → Services → Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config        *config.Config
	DB            *database.PostgresDB
	Redis         *infraCache.RedisClient // nil khi Redis không kết nối được
	Cache         cache.Cache
	Registry      *prometheus.Registry
	Metrics       *metrics.Metrics
	JWTManager    *jwt.Manager
	AsynqClient   *asynq.Client         // nil khi Redis không kết nối được
	ObjectStorage *storage.MinIOStorage // nil với ARTIFACT_BACKEND=fs
	Artifacts     artifact.Cache
	Generative    generative.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	Catalog generationRepo.CatalogInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService     authorService.ServiceInterface
	BookService       bookService.ServiceInterface
	CharacterService  characterService.ServiceInterface
	GenerationService generationService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler     *authorHandler.AuthorHandler
	BookHandler       *bookHandler.BookHandler
	CharacterHandler  *characterHandler.CharacterHandler
	GenerationHandler *generationHandler.GenerationHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph.
// Postgres is required; Redis and MinIO failures degrade instead of aborting.
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("✅ Config loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initDatabase(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}
	c.initCache(ctx)

	if err := c.initMetrics(); err != nil {
		c.Cleanup()
		return nil, err
	}

	if err := c.initArtifacts(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	provider, err := generative.New(generative.Config{
		ChatProvider:    cfg.Generation.ChatProvider,
		OpenAIAPIKey:    cfg.Generation.OpenAIAPIKey,
		OpenAIBaseURL:   cfg.Generation.OpenAIBaseURL,
		ChatModel:       cfg.Generation.ChatModel,
		ImageModel:      cfg.Generation.ImageModel,
		ImageSize:       cfg.Generation.ImageSize,
		AnthropicAPIKey: cfg.Generation.AnthropicAPIKey,
		AnthropicModel:  cfg.Generation.AnthropicModel,
		Timeout:         cfg.Generation.Timeout,
	}, c.Metrics)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init generative provider: %w", err)
	}
	c.Generative = provider

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// ========================================
	// STEP 3-5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	log.Info().Msg("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if c.Config.Database.AutoMigrate {
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	log.Info().Str("host", dbConfig.Host).Str("db", dbConfig.DBName).Msg("✅ Database connected")
	return nil
}

// initCache falls back to the in-process cache when Redis is down.
// Without Redis there is also no task queue.
func (c *Container) initCache(ctx context.Context) {
	log.Info().Msg("🔴 Connecting to Redis...")

	redisClient := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), using in-memory cache")
		_ = redisClient.Close()
		c.Cache = infraCache.NewMemoryCache(5*time.Minute, 10*time.Minute)
		return
	}

	c.Redis = redisClient
	c.Cache = infraCache.NewRedisCache(redisClient.Client)
	c.AsynqClient = asynq.NewClient(c.RedisOpt())
	log.Info().Msg("✅ Redis connected")
}

func (c *Container) initMetrics() error {
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m, err := metrics.New(c.Registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	c.Metrics = m
	return nil
}

func (c *Container) initArtifacts(ctx context.Context) error {
	switch c.Config.Artifact.Backend {
	case "minio":
		objects, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
		if err != nil {
			return fmt.Errorf("failed to init minio: %w", err)
		}
		c.ObjectStorage = objects
		c.Artifacts = artifact.NewObjectStore(objects, c.Metrics)
		log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("✅ Artifacts stored in MinIO")
	default:
		c.Artifacts = artifact.NewFileStore(c.Config.Artifact.Dir, c.Metrics)
		log.Info().Str("dir", c.Config.Artifact.Dir).Msg("✅ Artifacts stored on disk")
	}
	return nil
}

func (c *Container) initRepositories() {
	c.Catalog = generationRepo.NewPostgresCatalog(c.DB.Pool, c.Cache)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.Catalog.Authors(), c.Catalog.Books())
	c.BookService = bookService.NewBookService(c.Catalog.Books(), c.Catalog.Authors(), c.Catalog.Characters())
	c.CharacterService = characterService.NewCharacterService(c.Catalog.Characters())
	c.GenerationService = generationService.NewGenerationService(
		c.Generative,
		c.Catalog,
		c.Artifacts,
		c.Metrics,
		generationService.Options{Atomic: c.Config.Generation.AtomicCascade},
	)
}

func (c *Container) initHandlers() {
	var queue job.Enqueuer
	if c.AsynqClient != nil {
		queue = c.AsynqClient
	}

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.CharacterHandler = characterHandler.NewCharacterHandler(c.CharacterService)
	c.GenerationHandler = generationHandler.NewGenerationHandler(c.GenerationService, queue)
}

// RedisOpt is shared by the asynq client, server and scheduler.
func (c *Container) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close asynq client")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}

	log.Info().Msg("✅ Container cleanup completed")
}
