package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ankush43545-hub/LumoBackendTest/internal/api"
	"github.com/ankush43545-hub/LumoBackendTest/internal/config"
	"github.com/ankush43545-hub/LumoBackendTest/internal/database"
	"github.com/ankush43545-hub/LumoBackendTest/internal/llm"
	"github.com/ankush43545-hub/LumoBackendTest/internal/persona"
	"github.com/ankush43545-hub/LumoBackendTest/internal/repository"
	"github.com/ankush43545-hub/LumoBackendTest/internal/service"
)

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this
		// critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	repo, cleanup, err := buildRepository(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return 1
	}
	defer cleanup()

	personas := persona.NewRegistry()
	if err := personas.LoadFile(cfg.PersonaFile); err != nil {
		slog.Error("Failed to load persona file", "file", cfg.PersonaFile, "error", err)
		return 1
	}

	gateway, err := llm.NewGeminiGateway(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature, cfg.GeminiMaxOutputTokens)
	if err != nil {
		slog.Error("Failed to create Gemini client", "error", err)
		return 1
	}
	defer func() {
		if err := gateway.Close(); err != nil {
			slog.Error("Failed to close Gemini client", "error", err)
		}
	}()

	conversationService := service.NewConversationService(repo)
	chatService := service.NewChatService(repo, gateway, personas)

	handler := api.NewHandler(conversationService, chatService)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Route groups carry their own timeouts.
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.AppPort, "storage", cfg.Storage, "model", cfg.GeminiModel)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

// buildRepository selects the storage backend from configuration. The
// memory backend is the default; sqlite opts into persistence across
// restarts.
func buildRepository(cfg *config.Config) (repository.Repository, func(), error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
		cleanup := func() {
			if err := db.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}
		return repository.NewSQLiteRepository(db), cleanup, nil
	default:
		slog.Info("Using in-memory storage; state is lost on restart.")
		return repository.NewMemoryRepository(), func() {}, nil
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
