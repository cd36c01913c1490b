package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/quantum-mines/internal/config"
)

type App struct {
	logger *slog.Logger
	router chi.Router
	cfg    config.Config
	ws     *config.WebSocket
}

func New(logger *slog.Logger, cfg config.Config) *App {
	app := &App{
		logger: logger,
		router: chi.NewRouter(),
		cfg:    cfg,
		ws:     config.NewWebSocket(cfg.AllowedOrigins),
	}
	app.loadRoutes()
	return app
}

func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves until ctx is cancelled, then drains open requests for at
// most the configured shutdown timeout. WebSocket games in flight are cut.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", a.cfg.Addr))
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout.Duration)
		defer cancel()
		a.logger.Info("shutting down")
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
