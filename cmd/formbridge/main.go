package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-formbridge/components/gfformio"
	"github.com/goliatone/go-formbridge/internal/config"
	"github.com/goliatone/go-formbridge/internal/database"
	"github.com/goliatone/go-formbridge/pkg/endpoint"
	"github.com/goliatone/go-formbridge/pkg/formsource"
	"github.com/goliatone/go-formbridge/pkg/formsource/gfapi"
	"github.com/goliatone/go-formbridge/pkg/formsource/sqlstore"
	"github.com/goliatone/go-formbridge/pkg/translate"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, closeSource, err := buildSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeSource() }()

	svc := endpoint.New(serviceOptions(cfg, source, logger)...)

	mux := http.NewServeMux()
	patterns, err := gfformio.New(svc, gfformio.WithLogger(logger)).RegisterRoutes(mux, cfg.BasePath)
	if err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	// Catch-all: unknown routes answer with an error record.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "{\"message\":%q}\n", "No route was found matching the URL and request method.")
	})

	handler := gfformio.Chain(mux,
		gfformio.Recovery(logger),
		gfformio.RequestID(),
		gfformio.Logging(logger),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutting down server")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting formbridge server", "addr", cfg.Addr, "source", cfg.Source, "routes", patterns)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

func serviceOptions(cfg config.Config, source formsource.Source, logger *slog.Logger) []endpoint.Option {
	options := []endpoint.Option{
		endpoint.WithSource(source),
		endpoint.WithLogger(logger),
	}
	if cfg.Sanitize {
		options = append(options, endpoint.WithDecorators(translate.SanitizeMarkup()))
	}
	if cfg.VisibleOnly {
		options = append(options, endpoint.WithTransformer(endpoint.VisibleFieldsOnly()))
	}
	return options
}

func buildSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (formsource.Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case config.SourceDir:
		store, err := formsource.LoadFS(os.DirFS(cfg.FormsDir))
		if err != nil {
			return nil, noop, fmt.Errorf("load forms: %w", err)
		}
		logger.Info("loaded forms", "dir", cfg.FormsDir, "count", len(store.Forms()))
		return store, noop, nil

	case config.SourceRemote:
		client, err := gfapi.New(cfg.RemoteURL,
			gfapi.WithCredentials(cfg.RemoteKey, cfg.RemoteSecret),
			gfapi.WithTimeout(cfg.Timeout),
		)
		if err != nil {
			return nil, noop, err
		}
		return client, noop, nil

	default:
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open database: %w", err)
		}
		closeDB := func() error { return db.Close() }
		store, err := sqliteStore(ctx, db, cfg, logger)
		if err != nil {
			_ = closeDB()
			return nil, noop, err
		}
		return store, closeDB, nil
	}
}

func sqliteStore(ctx context.Context, db *sql.DB, cfg config.Config, logger *slog.Logger) (*sqlstore.Store, error) {
	if err := database.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	store := sqlstore.New(db)

	if cfg.FormsDir == "" {
		return store, nil
	}
	seed, err := formsource.LoadFS(os.DirFS(cfg.FormsDir))
	if err != nil {
		return nil, fmt.Errorf("load seed forms: %w", err)
	}
	forms := seed.Forms()
	if err := store.Seed(ctx, forms); err != nil {
		return nil, fmt.Errorf("seed forms: %w", err)
	}
	logger.Info("seeded forms", "dir", cfg.FormsDir, "count", len(forms))
	return store, nil
}
