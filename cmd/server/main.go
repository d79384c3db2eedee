package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/p-n-ai/pai-course/internal/course"
	"github.com/p-n-ai/pai-course/internal/events"
	"github.com/p-n-ai/pai-course/internal/platform/cache"
	"github.com/p-n-ai/pai-course/internal/platform/config"
	"github.com/p-n-ai/pai-course/internal/platform/database"
	"github.com/p-n-ai/pai-course/internal/web"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg.Log))

	catalog, err := course.Open(cfg.ContentPath)
	if err != nil {
		slog.Error("failed to load catalog", "path", cfg.ContentPath, "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	sinks, checks, cleanup := connectSinks(ctx, cfg)
	defer cleanup()

	dispatcher := events.NewDispatcher(sinks, cfg.Events.Buffer)

	mux, server, err := newMux(catalog, web.Options{
		Events:  dispatcher,
		Origins: cfg.Live.Origins,
		Checks:  checks,
	})
	if err != nil {
		slog.Error("failed to create web server", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	// Shutdown does not wait for hijacked connections, so live views are
	// closed explicitly.
	srv.RegisterOnShutdown(func() {
		n := server.Registry().CloseAll("server shutting down")
		slog.Info("closed live views", "count", n)
	})

	go func() {
		slog.Info("server starting",
			"addr", srv.Addr,
			"catalog_version", catalog.Version(),
			"modules", len(catalog.Modules()),
			"lessons", catalog.LessonCount(),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down", "live_views", server.Registry().Count())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	dispatcher.Close()
}

// newMux creates the HTTP router serving catalog.
func newMux(catalog *course.Catalog, opts web.Options) (*http.ServeMux, *web.Server, error) {
	server, err := web.NewServer(catalog, opts)
	if err != nil {
		return nil, nil, err
	}
	return server.Routes(), server, nil
}

// newLogger builds the process logger from the log settings.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// connectSinks opens the optional event stores. A store that is not
// configured or cannot be reached is skipped; the viewer works without them.
func connectSinks(ctx context.Context, cfg *config.Config) (events.Sink, []web.Checker, func()) {
	var (
		sinks   events.MultiSink
		checks  []web.Checker
		closers []func()
	)

	if cfg.Database.URL != "" {
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			slog.Warn("event store disabled", "error", err)
		} else {
			pg := events.NewPostgresSink(db.Pool)
			if err := pg.EnsureSchema(ctx); err != nil {
				slog.Warn("event store disabled", "error", err)
				db.Close()
			} else {
				slog.Info("event store connected", "target", db.Target())
				sinks = append(sinks, pg)
				checks = append(checks, db)
				closers = append(closers, db.Close)
			}
		}
	}

	if cfg.Cache.URL != "" {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Warn("answer counters disabled", "error", err)
		} else {
			slog.Info("answer counters connected", "addr", c.Addr())
			sinks = append(sinks, events.NewRedisSink(c.Client, cfg.Cache.KeyPrefix))
			checks = append(checks, c)
			closers = append(closers, func() { c.Close() })
		}
	}

	cleanup := func() {
		for _, fn := range closers {
			fn()
		}
	}

	switch len(sinks) {
	case 0:
		return events.NopSink{}, checks, cleanup
	case 1:
		return sinks[0], checks, cleanup
	default:
		return sinks, checks, cleanup
	}
}

