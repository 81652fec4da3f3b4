package cmd

import (
	"context"
	"fmt"

	"card-catalog/core/cache"
	"card-catalog/core/config"
	"card-catalog/core/database"
	"card-catalog/core/logger"
	"card-catalog/core/resilience"
	"card-catalog/core/storage"
	"card-catalog/feature/cards"
	"card-catalog/feature/cards/models"
	"card-catalog/feature/cards/providers"
	"card-catalog/feature/search"
	"card-catalog/feature/status"

	"go.uber.org/zap"
)

// application is the wired object graph shared by the server and the CLI commands.
type application struct {
	cfg    *config.Config
	logger *zap.Logger
	exec   *resilience.Executor
	index  *search.SQLIndex
	cards  *cards.Service
	status *status.Service
}

// loadApplication reads the configuration from the working directory and wires everything.
func loadApplication(ctx context.Context) (*application, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return newApplication(ctx, cfg, logg)
}

func newApplication(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*application, error) {
	exec := resilience.New(logg,
		resilience.WithRetryConfig(cfg.Resilience.Retry()),
		resilience.WithBreakerOptions(cfg.Resilience.Breaker()),
		resilience.WithClassifier(resilience.ServiceObjectStorage, storage.Classifier),
	)

	// Only the minio backend talks to object storage.
	var client storage.Client
	if cfg.Cache.Backend == "" || cfg.Cache.Backend == cache.BackendMinio {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
	}

	backend, err := cache.NewBackend(cfg.Cache, client, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}
	store := cache.NewStore[models.Card](backend, exec, logg, cfg.Cache.TTL)

	registry, err := providers.NewDefaultRegistry(cfg.Providers, exec, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to build providers: %w", err)
	}

	app := &application{cfg: cfg, logger: logg, exec: exec}

	var opts []cards.Option
	if cfg.Search.Enabled {
		app.index = openIndex(ctx, cfg.Database, exec, logg)
		if app.index != nil {
			opts = append(opts, cards.WithIndexer(app.index))
		}
	}

	app.cards = cards.NewService(registry, store, logg, opts...)
	app.status = status.NewService(status.Config{
		Client:  client,
		Bucket:  cfg.Storage.Bucket,
		Region:  cfg.Storage.Region,
		Prefix:  cfg.Cache.Prefix,
		Backend: backend.Name(),
		Engine:  app.engine(),
	}, exec, logg)

	return app, nil
}

// openIndex connects and migrates the search index. Failures are logged and leave the
// card service running without one.
func openIndex(ctx context.Context, cfg database.Config, exec *resilience.Executor, logg *zap.Logger) *search.SQLIndex {
	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional search index database connection failed", zap.Error(err))
		return nil
	}

	index := search.NewSQLIndex(db, exec, logg)
	if err := index.Migrate(ctx); err != nil {
		logg.Warn("Search index migration failed, index disabled", zap.Error(err))
		return nil
	}

	logg.Info("Search index ready", zap.String("driver", cfg.Driver))
	return index
}

// engine returns the search index as an Engine, or an untyped nil when it is disabled.
func (a *application) engine() search.Engine {
	if a.index == nil {
		return nil
	}
	return a.index
}
