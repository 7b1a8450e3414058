// Command promptdeck runs the prompt-launcher core service: the local
// prompt store, search, and cloud sync, exposed over a loopback HTTP +
// WebSocket command surface for the launcher UI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/promptdeck/promptdeck/internal/adapter/firestore"
	pdhttp "github.com/promptdeck/promptdeck/internal/adapter/http"
	"github.com/promptdeck/promptdeck/internal/adapter/localfs"
	"github.com/promptdeck/promptdeck/internal/adapter/ristretto"
	"github.com/promptdeck/promptdeck/internal/adapter/ws"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/logger"
	"github.com/promptdeck/promptdeck/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"data_dir", cfg.Data.Dir,
		"firestore_project", cfg.Firestore.ProjectID,
	)

	// --- Infrastructure ---

	contentCache, err := ristretto.New(cfg.Cache.MaxBytes)
	if err != nil {
		return fmt.Errorf("content cache: %w", err)
	}
	defer contentCache.Close()

	stores := localfs.NewFactory(cfg.Data.Dir, contentCache)
	remote := firestore.NewClientWithBaseURL(cfg.Firestore.BaseURL, cfg.Firestore.ProjectID)

	// --- Services ---

	settingsSvc := service.NewSettingsService(cfg.Data.Dir)
	syncSvc := service.NewSyncService(remote, stores)
	defer syncSvc.Close()

	hub := ws.NewHub()

	handlers := &pdhttp.Handlers{
		Sync:     syncSvc,
		Settings: settingsSvc,
		Hub:      hub,
	}

	// --- HTTP ---

	r := chi.NewRouter()
	r.Use(pdhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(pdhttp.Logger)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", healthHandler(cfg))
	r.Get("/ws", hub.HandleWS)
	pdhttp.MountRoutes(r, handlers)

	addr := "127.0.0.1:" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown: stop the server, then drain background mirror
	// tasks via the deferred syncSvc.Close.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// healthHandler returns an http.HandlerFunc that reports service health.
func healthHandler(cfg *config.Config) http.HandlerFunc {
	type healthStatus struct {
		Status  string `json:"status"`
		DataDir string `json:"data_dir"`
		Project string `json:"firestore_project"`
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		status := healthStatus{
			Status:  "ok",
			DataDir: cfg.Data.Dir,
			Project: cfg.Firestore.ProjectID,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(status)
	}
}
