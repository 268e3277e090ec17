// Package ui provides the web workshop server.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/history"
	"github.com/sqldojo-labs/sqldojo/internal/restore"
	"github.com/sqldojo-labs/sqldojo/internal/schema"
	"github.com/sqldojo-labs/sqldojo/internal/ui/notifier"
	"github.com/sqldojo-labs/sqldojo/internal/ui/router"
)

// Server is the main workshop server.
type Server struct {
	gateway       *gateway.Gateway
	inspector     *schema.Inspector
	restorer      *restore.Controller
	history       *history.Store
	sessionStore  *sessions.CookieStore
	port          int
	watch         bool
	backupDir     string
	adminPasscode string
	logger        *slog.Logger
	notifier      *notifier.Notifier
}

// Config holds configuration for the workshop server.
type Config struct {
	Gateway       *gateway.Gateway
	Inspector     *schema.Inspector
	Restorer      *restore.Controller
	History       *history.Store
	Port          int
	Watch         bool
	BackupDir     string
	AdminPasscode string
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new workshop server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400) // one workshop day
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		gateway:       cfg.Gateway,
		inspector:     cfg.Inspector,
		restorer:      cfg.Restorer,
		history:       cfg.History,
		sessionStore:  sessionStore,
		port:          cfg.Port,
		watch:         cfg.Watch,
		backupDir:     cfg.BackupDir,
		adminPasscode: cfg.AdminPasscode,
		logger:        cfg.Logger,
		notifier:      notifier.New(),
	}
}

// Serve starts the workshop server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	url := fmt.Sprintf("http://localhost:%d", s.port)
	s.logger.Info("starting workshop server", "addr", url)

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	router.SetupRoutes(r, router.Deps{
		Gateway:       s.gateway,
		Inspector:     s.inspector,
		Restorer:      s.restorer,
		History:       s.history,
		SessionStore:  s.sessionStore,
		AdminPasscode: s.adminPasscode,
		Notifier:      s.notifier,
		Logger:        s.logger,
	})

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Watch the backup directory so a refreshed canonical export
	// reloads connected browsers.
	if s.watch && s.backupDir != "" {
		eg.Go(func() error {
			return s.watchBackups(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down workshop server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchBackups watches the canonical backup directory for changes.
func (s *Server) watchBackups(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.backupDir); err != nil {
		s.logger.Error("failed to watch backup directory", "dir", s.backupDir, "error", err)
		// Continue without watching.
		return nil
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			ext := filepath.Ext(event.Name)
			if ext != ".sql" && ext != ".csv" && ext != ".parquet" {
				continue
			}

			// Debounce: EXPORT DATABASE touches several files at once.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(250*time.Millisecond, func() {
				s.logger.Debug("canonical backup changed", "file", event.Name)
				s.notifier.Broadcast(notifier.BackupChanged)
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
