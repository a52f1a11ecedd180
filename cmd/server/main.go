package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cocomgroup/hrms-onboarding/internal/config"
	"github.com/cocomgroup/hrms-onboarding/internal/container"
	httpserver "github.com/cocomgroup/hrms-onboarding/internal/interfaces/http"
	"github.com/cocomgroup/hrms-onboarding/pkg/utils"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	// Load .env before config so viper sees the overrides
	_ = gotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting onboarding workflow system",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Shut down on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the dependency container
	app, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		logger.Fatal("Failed to create container", zap.Error(err))
	}

	if err := app.Start(ctx); err != nil {
		logger.Fatal("Failed to start container", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Container shutdown failed", zap.Error(err))
		}
	}()

	// Initialize HTTP server
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, app.Engine(), &serverLogger{logger: logger})

	logger.Info("HTTP server listening", zap.String("addr", server.Address()))

	// Start blocks until the context is cancelled or the listener fails
	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// serverLogger adapts zap.Logger to the HTTP server's Logger interface.
type serverLogger struct {
	logger *zap.Logger
}

func (l *serverLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toZapFields(keysAndValues...)...)
}

func (l *serverLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toZapFields(keysAndValues...)...)
}

func toZapFields(keysAndValues ...interface{}) []zap.Field {
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
