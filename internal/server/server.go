// Package server exposes the resolution and gating operations to the
// widget host over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/promptfield/internal/config"
	"github.com/leapstack-labs/promptfield/internal/session"
	"github.com/leapstack-labs/promptfield/pkg/core"
	"github.com/leapstack-labs/promptfield/pkg/validate"
)

// sessionCookie names the editing-session cookie.
const sessionCookie = "promptfield_session"

// Server is the HTTP widget surface.
type Server struct {
	provider  core.SnapshotProvider
	evaluator validate.Evaluator
	manager   *session.Manager
	cookies   *sessions.CookieStore
	cfg       atomic.Pointer[config.Config]
	cfgPath   string
	logger    *slog.Logger
}

// Options configures a Server.
type Options struct {
	Provider  core.SnapshotProvider
	Evaluator validate.Evaluator
	Sessions  *session.Manager
	Config    *config.Config
	// ConfigPath, when set, is watched for changes and hot-reloaded.
	ConfigPath string
	Logger     *slog.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cookieStore := sessions.NewCookieStore([]byte(opts.Config.Server.Secret))
	cookieStore.MaxAge(int(session.RetentionWindow / time.Second))
	cookieStore.Options.Path = "/"
	cookieStore.Options.HttpOnly = true
	cookieStore.Options.SameSite = http.SameSiteLaxMode

	s := &Server{
		provider:  opts.Provider,
		evaluator: opts.Evaluator,
		manager:   opts.Sessions,
		cookies:   cookieStore,
		cfgPath:   opts.ConfigPath,
		logger:    logger,
	}
	s.cfg.Store(opts.Config)
	return s
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	cfg := s.cfg.Load()
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	s.logger.Info("starting widget server", "addr", fmt.Sprintf("http://localhost:%d", cfg.Server.Port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
	)
	s.routes(r)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if s.cfgPath != "" {
		eg.Go(func() error {
			return s.watchConfig(egctx)
		})
	}

	return eg.Wait()
}

// routes registers the API endpoints.
func (s *Server) routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/detect", s.handleDetect)
		r.Post("/suggest", s.handleSuggest)
		r.Post("/render", s.handleRender)
		r.Post("/validate", s.handleValidate)
		r.Get("/session", s.handleSessionGet)
		r.Put("/session", s.handleSessionPut)
		r.Get("/catalog", s.handleCatalog)
	})
}

// watchConfig hot-reloads validation and prompt settings when the
// config file changes. Reload failures keep the previous config.
func (s *Server) watchConfig(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.cfgPath); err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := config.Load(s.cfgPath)
			if err != nil {
				s.logger.Warn("config reload failed, keeping previous config",
					slog.String("error", err.Error()))
				continue
			}
			s.cfg.Store(cfg)
			s.logger.Info("config reloaded", slog.String("path", s.cfgPath))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("config watcher error", slog.String("error", err.Error()))
		}
	}
}

// sessionKey returns the caller's editing-session key, minting one on
// first contact.
func (s *Server) sessionKey(w http.ResponseWriter, r *http.Request) string {
	sess, _ := s.cookies.Get(r, sessionCookie)
	key, ok := sess.Values["key"].(string)
	if !ok || key == "" {
		key = session.NewKey()
		sess.Values["key"] = key
		if err := sess.Save(r, w); err != nil {
			s.logger.Debug("failed to save session cookie", slog.String("error", err.Error()))
		}
	}
	return key
}
