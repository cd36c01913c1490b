package config

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/quantum-mines/internal/mines"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEnv(t *testing.T) {
	t.Setenv("DEVELOPMENT", "1")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_BASE_PATH", "/qmf")
	assert.True(t, Development())
	assert.Equal(t, "9000", Port())
	assert.Equal(t, "/qmf", BasePath())

	t.Setenv("DEVELOPMENT", "0")
	t.Setenv("APP_PORT", "")
	assert.False(t, Development())
	assert.Equal(t, "8080", Port())
}

func TestDefaultIsValid(t *testing.T) {
	t.Setenv("APP_PORT", "7000")
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout.Duration)
	assert.Equal(t, mines.Params{Width: 9, Height: 9, MineCount: 10, Seed: 3, Difficulty: "researcher"}, cfg.Params(3))
}

func TestReadConfigYAML(t *testing.T) {
	path := writeFile(t, "qmf.yaml", `
mode: development
addr: ":8181"
allowed_origins: [http://localhost:5173]
shutdown_timeout: 2s
log:
  level: warn
  file: /tmp/qmf.log
game:
  width: 16
  height: 16
  mine_count: 40
  difficulty: theorist
`)
	cfg := Default()
	require.NoError(t, ReadConfig(path, &cfg))
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Development())
	assert.Equal(t, ":8181", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout.Duration)
	assert.Equal(t, "/tmp/qmf.log", cfg.Log.File)
	assert.Equal(t, 3, cfg.Log.MaxBackups, "unset keys keep their defaults")
	assert.Equal(t, GameConfig{Width: 16, Height: 16, MineCount: 40, Difficulty: "theorist"}, cfg.Game)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, level)
}

func TestReadConfigJSON(t *testing.T) {
	path := writeFile(t, "qmf.json", `{
		"mode": "production",
		"shutdown_timeout": 1500000000,
		"game": {"width": 30, "height": 16, "mine_count": 99, "difficulty": "observer"}
	}`)
	cfg := Default()
	require.NoError(t, ReadConfig(path, &cfg))
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Production())
	assert.Equal(t, 1500*time.Millisecond, cfg.ShutdownTimeout.Duration)
	assert.Equal(t, 99, cfg.Game.MineCount)
	assert.Equal(t, "observer", cfg.Game.Difficulty)
}

func TestReadConfigErrors(t *testing.T) {
	cfg := Default()
	assert.Error(t, ReadConfig(filepath.Join(t.TempDir(), "missing.json"), &cfg))

	path := writeFile(t, "bad.yml", "game: [")
	assert.ErrorContains(t, ReadConfig(path, &cfg), "unable to parse config")

	path = writeFile(t, "bad.json", `{"shutdown_timeout": true}`)
	assert.ErrorContains(t, ReadConfig(path, &cfg), "invalid duration")

	path = writeFile(t, "bad.yaml", "shutdown_timeout: forever")
	assert.Error(t, ReadConfig(path, &cfg))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"zero width", func(c *Config) { c.Game.Width = 0 }, "grid dimensions must be positive"},
		{"overflowing area", func(c *Config) { c.Game.Width, c.Game.Height = 1<<32, 1<<32 }, "grid dimensions"},
		{"negative mines", func(c *Config) { c.Game.MineCount = -1 }, "mine_count must not be negative"},
		{"difficulty", func(c *Config) { c.Game.Difficulty = "wizard" }, `unknown difficulty "wizard"`},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "not a valid logrus Level"},
		{"timeout", func(c *Config) { c.ShutdownTimeout.Duration = -time.Second }, "shutdown_timeout"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.modify(&cfg)
			assert.ErrorContains(t, cfg.Validate(), c.errMsg)
		})
	}

	cfg := Default()
	cfg.Game.Width, cfg.Game.Difficulty = 0, "wizard"
	err := cfg.Validate()
	assert.ErrorIs(t, err, mines.ErrInvalidDimensions)
	assert.ErrorContains(t, err, "wizard")
}

func TestLogLevelDefaults(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = ""

	cfg.Mode = "development"
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	cfg.Mode = "production"
	level, err = cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, level)
}

func TestFields(t *testing.T) {
	cfg := Default()
	cfg.AllowedOrigins = []string{"a", "b"}
	f := cfg.Fields()
	assert.Equal(t, "a,b", f["allowed_origins"])
	assert.Equal(t, "5s", f["shutdown_timeout"])
	assert.Equal(t, "researcher", f["game_difficulty"])
}

func TestWebSocketCheckOrigin(t *testing.T) {
	r := httptest.NewRequest("GET", "/play", nil)
	r.Header.Set("Origin", "http://evil.example")

	assert.True(t, NewWebSocket(nil).Upgrader.CheckOrigin(r))

	ws := NewWebSocket([]string{"http://localhost:5173"})
	assert.False(t, ws.Upgrader.CheckOrigin(r))
	r.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, ws.Upgrader.CheckOrigin(r))
	assert.Positive(t, ws.MaxMessageSize)
}
