package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mehendichic/mehendi-chic/internal/config"
	"github.com/mehendichic/mehendi-chic/internal/domain"
	"github.com/mehendichic/mehendi-chic/internal/handler"
	"github.com/mehendichic/mehendi-chic/internal/mirror"
	"github.com/mehendichic/mehendi-chic/internal/repository/sqlite"
	"github.com/mehendichic/mehendi-chic/internal/service"
	"github.com/mehendichic/mehendi-chic/internal/storage"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, logOpts)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	// Object storage is optional: with STORAGE_ROOT explicitly empty the
	// site runs image-less and uploads report "not configured".
	var store domain.ObjectStore = storage.DisabledStore{}
	var diskStore *storage.DiskStore
	if cfg.StorageRoot != "" {
		diskStore, err = storage.NewDiskStore(cfg.StorageRoot, cfg.StorageBucket, cfg.PublicBaseURL)
		if err != nil {
			slog.Error("failed to initialize object storage", "error", err)
			os.Exit(1)
		}
		store = diskStore
	} else {
		slog.Warn("object storage disabled, uploads will be rejected")
	}

	m, err := mirror.New(cfg.SnapshotDir)
	if err != nil {
		slog.Error("failed to load state snapshots", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := m.Close(); err != nil {
			slog.Error("failed to flush state snapshots", "error", err)
		}
	}()

	if err := m.Refresh(context.Background(), db.Categories(), db.Products()); err != nil {
		slog.Error("failed to refresh local state from database", "error", err)
		os.Exit(1)
	}
	slog.Info("local state refreshed from database")

	authService, err := service.NewAuthService(cfg.AdminEmail, cfg.AdminPassword, cfg.JWTSecret, cfg.BcryptCost)
	if err != nil {
		slog.Error("failed to initialize auth", "error", err)
		os.Exit(1)
	}
	imageService := service.NewImageService(store, cfg.StorageBucket, db.Categories(), db.Products())
	categoryService := service.NewCategoryService(db.Categories(), db.Products(), imageService, authService)
	productService := service.NewProductService(db.Products(), db.Categories(), imageService, authService)
	contactService := service.NewContactService(m)

	loginLimiter := service.NewTokenBucket(0.1, 5)
	contactLimiter := service.NewTokenBucket(0.05, 3)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux,
		handler.NewAuthHandler(authService, m, loginLimiter, cfg.CookieSecure),
		handler.NewCategoryHandler(categoryService, m),
		handler.NewProductHandler(productService, m),
		handler.NewContactHandler(contactService, contactLimiter),
		handler.NewObjectHandler(diskStore),
		authService,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
