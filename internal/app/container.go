package app

import (
	"context"
	"fmt"

	"github.com/inkmatch/inkmatch-server/internal/classify"
	"github.com/inkmatch/inkmatch-server/internal/config"
	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/internal/prompt"
	"github.com/inkmatch/inkmatch-server/internal/server"
	"github.com/inkmatch/inkmatch-server/internal/service/ai"
	"github.com/inkmatch/inkmatch-server/internal/service/cache"
	"github.com/inkmatch/inkmatch-server/internal/service/database"
	"github.com/inkmatch/inkmatch-server/internal/service/geocode"
	"github.com/inkmatch/inkmatch-server/internal/service/storage"
	"go.uber.org/zap"
)

// Container bundles the assembled services behind the HTTP server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Server *server.Server

	closers []func()
}

// Close tears down infrastructure services in reverse build order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all infrastructure services. Heavy-weight initialization
// (DB/cache/AI clients) happens here so handlers stay focused on request
// orchestration.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Cache and database
	cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}
	closers = append(closers, func() {
		_ = cacheSvc.Close()
	})

	postgresSvc, err := database.NewPostgresService(database.PostgresConfig{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		Database:        cfg.Postgres.Database,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres service: %w", err)
	}
	closers = append(closers, func() {
		_ = postgresSvc.Close()
	})

	userRepo := database.NewUserRepository(postgresSvc, logger)
	artistRepo := database.NewArtistRepository(postgresSvc, logger)
	reviewRepo := database.NewReviewRepository(postgresSvc, logger)

	// Vision model boundary
	visionSvc, err := ai.NewVisionService(ctx, ai.VisionConfig{
		GeminiAPIKey:   cfg.Gemini.APIKey,
		OpenAIAPIKey:   cfg.OpenAI.APIKey,
		GeminiModel:    cfg.Gemini.Model,
		OpenAIModel:    cfg.OpenAI.Model,
		EnableFallback: cfg.OpenAI.EnableFallback,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision service: %w", err)
	}

	// Classification pipeline
	engine := classify.NewEngine(logger)
	prompts := prompt.NewBuilder()
	strategy, err := buildStrategy(cfg.Classifier, engine, visionSvc, prompts, logger)
	if err != nil {
		return nil, err
	}

	storageClient := storage.NewClient(
		cfg.Storage.BaseURL+"/"+cfg.Storage.Bucket,
		cfg.Storage.AuthToken,
		cfg.Storage.BaseURL+"/"+cfg.Storage.Bucket,
		logger,
	)
	geocodeClient := geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent, logger)

	srv := server.New(server.Deps{
		Config:   cfg,
		Logger:   logger,
		Strategy: strategy,
		Vision:   visionSvc,
		Cache:    cacheSvc,
		Users:    userRepo,
		Artists:  artistRepo,
		Reviews:  reviewRepo,
		Storage:  storageClient,
		Geocoder: geocodeClient,
	})

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Server:  srv,
		closers: closers,
	}, nil
}

func buildStrategy(cfg config.ClassifierConfig, engine *classify.Engine, vision *ai.VisionService, prompts *prompt.Builder, logger *zap.Logger) (classify.Strategy, error) {
	var strategy classify.Strategy
	switch cfg.Strategy {
	case "heuristic":
		strategy = classify.NewHeuristicStrategy(engine)
	case "model":
		strategy = classify.NewModelStrategy(vision, engine, prompts, logger)
	default:
		return nil, fmt.Errorf("unknown classifier strategy %q", cfg.Strategy)
	}

	if cfg.PreCheckStyle != "" {
		style := domain.StyleKey(cfg.PreCheckStyle)
		if !style.IsValid() {
			return nil, fmt.Errorf("unknown pre-check style %q", cfg.PreCheckStyle)
		}
		strategy = classify.NewPreCheckStrategy(vision, style, strategy, engine, prompts, logger)
	}

	return strategy, nil
}
