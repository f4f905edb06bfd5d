package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Samyakjain08/AeroJobs/internal/llm"
	"github.com/Samyakjain08/AeroJobs/internal/llm/gemini"
	"github.com/Samyakjain08/AeroJobs/internal/shared/config"
	"github.com/Samyakjain08/AeroJobs/internal/shared/server"
	"github.com/Samyakjain08/AeroJobs/internal/shared/storage/db"
	"github.com/Samyakjain08/AeroJobs/internal/shared/storage/object"
	"github.com/Samyakjain08/AeroJobs/internal/shared/storage/object/local"
	"github.com/Samyakjain08/AeroJobs/internal/shared/storage/object/s3"
	"github.com/Samyakjain08/AeroJobs/internal/shared/telemetry"
	"github.com/Samyakjain08/AeroJobs/internal/users"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	ctx := context.Background()

	repo, dbClose := buildRepo(ctx, cfg)
	if dbClose != nil {
		defer dbClose()
	}

	store := buildStore(ctx, cfg)
	llmClient := buildLLM(cfg)

	router := server.NewRouter(server.Dependencies{
		Config: cfg,
		Users:  repo,
		Store:  store,
		LLM:    llmClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		telemetry.Info("server.listening", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			telemetry.Error("server.failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		telemetry.Error("server.shutdown_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("server.stopped", nil)
}

func buildRepo(ctx context.Context, cfg config.Config) (users.Repo, func() error) {
	if cfg.DatabaseURL == "" {
		telemetry.Warn("db.memory_fallback", map[string]any{
			"reason": "DATABASE_URL not set, users are not persisted",
		})
		return users.NewMemoryRepo(), nil
	}

	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		telemetry.Error("db.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		telemetry.Error("db.migrate_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	return &users.PGRepo{DB: conn}, conn.Close
}

func buildStore(ctx context.Context, cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			telemetry.Error("object_store.s3_init_failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		return store
	}
	return local.New(cfg.LocalStoreDir)
}

func buildLLM(cfg config.Config) llm.Client {
	if cfg.GeminiAPIKey == "" {
		telemetry.Warn("llm.disabled", map[string]any{
			"reason": "GEMINI_API_KEY not set, resume scoring will fail",
		})
		return nil
	}
	client, err := gemini.NewClient(gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	if err != nil {
		telemetry.Error("llm.init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	return client
}
