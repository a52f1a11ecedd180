// Package container provides dependency injection and lifecycle management
// for the onboarding workflow system following Clean Architecture principles.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/cocomgroup/hrms-onboarding/internal/application/dispatcher"
	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/application/workflow"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/event"
	"github.com/cocomgroup/hrms-onboarding/internal/infrastructure/document"
	"github.com/cocomgroup/hrms-onboarding/internal/infrastructure/persistence/repository"
	"github.com/cocomgroup/hrms-onboarding/internal/infrastructure/persistence/sqlite"
	"github.com/cocomgroup/hrms-onboarding/internal/infrastructure/storage"
	"github.com/cocomgroup/hrms-onboarding/internal/infrastructure/template"
	"go.uber.org/zap"
)

// summaryTimeout bounds a single summary generation run
const summaryTimeout = 30 * time.Second

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	DB *sqlite.DB
}

// StorageBundle holds document rendering and storage components.
type StorageBundle struct {
	Renderer      port.SummaryRenderer
	FileStorage   port.FileStorage
	FolderManager port.FolderManager
}

// ProvideDatabase opens the database connection and runs pending migrations.
// Returns DatabaseBundle containing the transaction-aware wrapper.
func ProvideDatabase(cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := sqlite.Open(sqlite.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run database migrations if migrations directory is configured
	if cfg.MigrationsDir != "" {
		migrator := sqlite.NewMigrator(db, logger)
		if err := migrator.RunMigrations(cfg.MigrationsDir); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &DatabaseBundle{DB: db}, nil
}

// ProvideRepositories creates all repositories from a database connection.
// Returns RepositoryBundle containing all repository implementations.
func ProvideRepositories(db *sqlite.DB, logger *zap.Logger) (*RepositoryBundle, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RepositoryBundle{
		Workflows:  repository.NewWorkflowRepository(db, logger),
		Steps:      repository.NewStepRepository(db, logger),
		Exceptions: repository.NewExceptionRepository(db, logger),
		Documents:  repository.NewDocumentRepository(db, logger),
	}, nil
}

// ProvideTemplates loads the onboarding template catalog.
// Returns port.TemplateRegistry implementation.
func ProvideTemplates(cfg *TemplatesConfig, logger *zap.Logger) (port.TemplateRegistry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("templates config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	registry, err := template.NewRegistry(cfg.CatalogPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}

	return registry, nil
}

// ProvideStorage creates the summary renderer, document store and folder manager.
// Returns StorageBundle containing all storage components.
func ProvideStorage(cfg *DocumentsConfig, logger *zap.Logger) (*StorageBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("documents config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &StorageBundle{
		Renderer:      document.NewRenderer(logger),
		FileStorage:   storage.NewDocumentStore(cfg.BaseDir, logger),
		FolderManager: storage.NewFolderManager(cfg.BaseDir, logger),
	}, nil
}

// ProvideDispatcher creates the event dispatcher.
// Returns dispatcher.Dispatcher implementation.
func ProvideDispatcher(logger *zap.Logger) (dispatcher.Dispatcher, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	// Create dispatcher logger adapter
	dispatcherLogger := &dispatcherLoggerAdapter{logger: logger}

	return dispatcher.NewDispatcher(
		dispatcher.WithLogger(dispatcherLogger),
	), nil
}

// EngineDeps holds dependencies required for creating the workflow engine.
type EngineDeps struct {
	Repos      *RepositoryBundle
	Templates  port.TemplateRegistry
	TxManager  port.TransactionManager
	Storage    *StorageBundle
	Dispatcher dispatcher.Dispatcher
	Logger     *zap.Logger
}

// ProvideWorkflowEngine creates the workflow engine and registers event handlers.
// Returns workflow.Engine implementation.
func ProvideWorkflowEngine(deps *EngineDeps) (workflow.Engine, error) {
	if deps == nil {
		return nil, fmt.Errorf("engine dependencies are required")
	}
	if deps.Repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if deps.Templates == nil {
		return nil, fmt.Errorf("template registry is required")
	}
	if deps.TxManager == nil {
		return nil, fmt.Errorf("transaction manager is required")
	}
	if deps.Storage == nil {
		return nil, fmt.Errorf("storage bundle is required")
	}
	if deps.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}

	// Create workflow engine
	engine := workflow.NewEngine(
		workflow.Repositories{
			Workflows:  deps.Repos.Workflows,
			Steps:      deps.Repos.Steps,
			Exceptions: deps.Repos.Exceptions,
			Documents:  deps.Repos.Documents,
		},
		deps.Templates,
		deps.TxManager,
		workflow.WithDispatcher(deps.Dispatcher),
		workflow.WithSummaryStore(deps.Storage.Renderer, deps.Storage.FileStorage, deps.Storage.FolderManager),
	)

	// Register summary generation handler
	// This handler renders the onboarding summary when workflows complete
	summaryHandler := createSummaryHandler(engine, deps.Logger)
	deps.Dispatcher.SubscribeNamed(event.TypeWorkflowCompleted, "summary_generator", summaryHandler)

	return engine, nil
}

// createSummaryHandler creates a handler that generates the summary document
// when workflow.completed events arrive
func createSummaryHandler(engine workflow.Engine, logger *zap.Logger) dispatcher.Handler {
	return func(ctx context.Context, evt *event.Event) error {
		if evt == nil {
			return fmt.Errorf("event cannot be nil")
		}

		logger.Info("Generating summary for completed workflow",
			zap.Int64("workflow_id", evt.WorkflowID),
			zap.String("event_id", evt.ID))

		// The request that completed the workflow may be gone by the time
		// this handler runs, so generation gets its own context.
		genCtx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
		defer cancel()

		// GenerateSummaryDocument is idempotent, a workflow that already has
		// a summary returns the stored record.
		doc, err := engine.GenerateSummaryDocument(genCtx, evt.WorkflowID)
		if err != nil {
			logger.Error("Failed to generate summary document",
				zap.Error(err),
				zap.Int64("workflow_id", evt.WorkflowID))
			return fmt.Errorf("generate summary: %w", err)
		}

		logger.Info("Summary document ready",
			zap.Int64("workflow_id", evt.WorkflowID),
			zap.Int64("document_id", doc.ID),
			zap.String("file_path", doc.FilePath))

		return nil
	}
}
