package backend

import (
	"context"
	"fmt"
	"log/slog"

	"finled/internal/config"
	"finled/internal/events"
	"finled/internal/store/memory"
	"finled/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	client := f.connectEvents(config)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"events_enabled", client != nil)

	return &Result{
		Stores: Stores{
			Users:        repo,
			Transactions: repo,
			Budgets:      repo,
		},
		Events: client,
		Cleanup: func() error {
			if client != nil {
				if err := client.Close(); err != nil {
					f.logger.Warn("Failed to close event stream client", "error", err)
				}
			}
			return repo.Close()
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	store := memory.New()

	client := f.connectEvents(config)

	f.logger.Info("Initialized memory backend", "events_enabled", client != nil)

	result := &Result{
		Stores: Stores{
			Users:        store,
			Transactions: store,
			Budgets:      store,
		},
		Events: client,
	}
	if client != nil {
		result.Cleanup = client.Close
	}
	return result, nil
}

// connectEvents dials the event stream when a URL is configured. A failed
// connection downgrades to no eventing instead of failing startup.
func (f *DefaultFactory) connectEvents(config Config) *events.Client {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := events.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize event stream client, continuing without events", "error", err)
		return nil
	}
	f.logger.Info("Initialized event stream client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
