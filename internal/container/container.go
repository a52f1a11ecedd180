package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cocomgroup/hrms-onboarding/internal/application/dispatcher"
	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/application/workflow"
	"github.com/cocomgroup/hrms-onboarding/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// Container manages all application dependencies and lifecycle.
// It follows Clean Architecture principles with ordered initialization
// and reverse-order teardown.
type Container struct {
	config *Config
	logger *zap.Logger

	// Infrastructure - Data
	db           *sqlite.DB
	repositories *RepositoryBundle

	// Infrastructure - Templates
	templates port.TemplateRegistry

	// Infrastructure - Documents
	renderer      port.SummaryRenderer
	fileStorage   port.FileStorage
	folderManager port.FolderManager

	// Application
	dispatcher dispatcher.Dispatcher
	engine     workflow.Engine

	// Lifecycle
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	ready  atomic.Bool
	closed atomic.Bool
}

// RepositoryBundle groups all repositories for convenient access.
type RepositoryBundle struct {
	Workflows  port.WorkflowRepository
	Steps      port.StepRepository
	Exceptions port.ExceptionRepository
	Documents  port.DocumentRepository
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components and begins processing.
// Components are initialized in dependency order:
// 1. Database and repositories
// 2. Template catalog
// 3. Document storage
// 4. Event dispatcher and workflow engine
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}

	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.logger.Info("Starting container initialization")

	// Step 1: Initialize database and repositories
	if err := c.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database initialized")

	// Step 2: Load the template catalog
	if err := c.initTemplates(); err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	c.logger.Info("Template catalog loaded")

	// Step 3: Initialize document storage
	if err := c.initStorage(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	c.logger.Info("Document storage initialized")

	// Step 4: Initialize dispatcher and workflow engine
	if err := c.initDispatcherAndEngine(); err != nil {
		return fmt.Errorf("failed to initialize dispatcher and engine: %w", err)
	}
	c.logger.Info("Dispatcher and workflow engine initialized")

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	// Cancel context to signal all goroutines
	if c.cancel != nil {
		c.cancel()
	}

	// Step 1: Close dispatcher, waits for in-flight handlers (reverse of step 4)
	if c.dispatcher != nil {
		if err := c.dispatcher.Close(); err != nil {
			c.logger.Error("Failed to close dispatcher", zap.Error(err))
			errs = append(errs, fmt.Errorf("close dispatcher: %w", err))
		} else {
			c.logger.Info("Dispatcher closed")
		}
	}

	// Step 2: Storage and templates don't need explicit cleanup (reverse of steps 2-3)

	// Step 3: Close database (reverse of step 1)
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close database", zap.Error(err))
			errs = append(errs, fmt.Errorf("close database: %w", err))
		} else {
			c.logger.Info("Database closed")
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health() *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	// Check database
	if c.db != nil {
		if err := c.db.Ping(); err != nil {
			status.Components["database"] = ComponentHealth{
				Healthy: false,
				Message: fmt.Sprintf("ping failed: %v", err),
			}
			status.Overall = false
		} else {
			status.Components["database"] = ComponentHealth{Healthy: true}
		}
	} else {
		status.Components["database"] = ComponentHealth{
			Healthy: false,
			Message: "not initialized",
		}
		status.Overall = false
	}

	// Check template catalog
	if c.templates != nil {
		status.Components["templates"] = ComponentHealth{
			Healthy: true,
			Message: fmt.Sprintf("template count: %d", len(c.templates.List())),
		}
	} else {
		status.Components["templates"] = ComponentHealth{
			Healthy: false,
			Message: "not initialized",
		}
		status.Overall = false
	}

	// Check dispatcher
	if c.dispatcher != nil {
		status.Components["dispatcher"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["dispatcher"] = ComponentHealth{
			Healthy: false,
			Message: "not initialized",
		}
		status.Overall = false
	}

	// Check repositories
	if c.repositories != nil {
		status.Components["repositories"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["repositories"] = ComponentHealth{
			Healthy: false,
			Message: "not initialized",
		}
		status.Overall = false
	}

	return status
}

// initDatabase initializes the database and all repositories using providers.
func (c *Container) initDatabase() error {
	dbBundle, err := ProvideDatabase(&c.config.Database, c.logger)
	if err != nil {
		return err
	}
	c.db = dbBundle.DB

	repos, err := ProvideRepositories(c.db, c.logger)
	if err != nil {
		c.db.Close()
		return err
	}
	c.repositories = repos

	return nil
}

// initTemplates loads the template catalog using providers.
func (c *Container) initTemplates() error {
	templates, err := ProvideTemplates(&c.config.Templates, c.logger)
	if err != nil {
		return err
	}
	c.templates = templates
	return nil
}

// initStorage initializes the renderer, document store and folder manager using providers.
func (c *Container) initStorage() error {
	storageBundle, err := ProvideStorage(&c.config.Documents, c.logger)
	if err != nil {
		return err
	}

	c.renderer = storageBundle.Renderer
	c.fileStorage = storageBundle.FileStorage
	c.folderManager = storageBundle.FolderManager
	return nil
}

// initDispatcherAndEngine initializes the event dispatcher and workflow engine using providers.
func (c *Container) initDispatcherAndEngine() error {
	disp, err := ProvideDispatcher(c.logger)
	if err != nil {
		return err
	}
	c.dispatcher = disp

	engine, err := ProvideWorkflowEngine(&EngineDeps{
		Repos:     c.repositories,
		Templates: c.templates,
		TxManager: c.db,
		Storage: &StorageBundle{
			Renderer:      c.renderer,
			FileStorage:   c.fileStorage,
			FolderManager: c.folderManager,
		},
		Dispatcher: c.dispatcher,
		Logger:     c.logger,
	})
	if err != nil {
		return err
	}
	c.engine = engine

	return nil
}

// Getters for accessing container components

// DB returns the transaction manager.
func (c *Container) DB() port.TransactionManager {
	return c.db
}

// Repositories returns all repositories.
func (c *Container) Repositories() *RepositoryBundle {
	return c.repositories
}

// Templates returns the template registry.
func (c *Container) Templates() port.TemplateRegistry {
	return c.templates
}

// Renderer returns the summary renderer.
func (c *Container) Renderer() port.SummaryRenderer {
	return c.renderer
}

// FileStorage returns the document store.
func (c *Container) FileStorage() port.FileStorage {
	return c.fileStorage
}

// FolderManager returns the folder manager.
func (c *Container) FolderManager() port.FolderManager {
	return c.folderManager
}

// Dispatcher returns the event dispatcher.
func (c *Container) Dispatcher() dispatcher.Dispatcher {
	return c.dispatcher
}

// Engine returns the workflow engine.
func (c *Container) Engine() workflow.Engine {
	return c.engine
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *Config {
	return c.config
}

// dispatcherLoggerAdapter adapts zap.Logger to the dispatcher.Logger interface.
type dispatcherLoggerAdapter struct {
	logger *zap.Logger
}

func (a *dispatcherLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	fields := convertToZapFields(keysAndValues...)
	a.logger.Info(msg, fields...)
}

func (a *dispatcherLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	fields := convertToZapFields(keysAndValues...)
	a.logger.Error(msg, fields...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
