package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/quantum-mines/internal/config"
)

func newApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.ShutdownTimeout = config.Duration{Duration: time.Second}
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

func TestRoutes(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "")
	h := newApp(t).Handler()

	cases := []struct {
		method, path string
		status       int
	}{
		{"GET", "/healthz", http.StatusOK},
		{"GET", "/replay", http.StatusBadRequest},
		{"GET", "/play?width=0", http.StatusBadRequest},
		{"POST", "/healthz", http.StatusMethodNotAllowed},
		{"GET", "/game/1", http.StatusNotFound},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
			assert.Equal(t, c.status, rec.Code)
		})
	}
}

func TestBasePath(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "/qmf")
	h := newApp(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/qmf/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartStopsOnCancel(t *testing.T) {
	a := newApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
