package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, dir string) {
	t.Helper()
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(dir))
}

func TestLoad_Defaults(t *testing.T) {
	load(t, t.TempDir())

	assert.Equal(t, ServerConfig{Port: "8080", StaticDir: "./web"}, Server())
	assert.Equal(t, LimitsConfig{
		MaxConnsPerIP: 4,
		MsgRate:       240,
		MsgWindow:     time.Second,
		MaxSessions:   100,
	}, Limits())
	assert.Equal(t, GameConfig{TickRate: 60, Player1: "Player 1", Player2: "Player 2"}, Game())
	assert.Equal(t, LogConfig{Level: "info", Format: "console"}, Log())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{
		"server": {"port": "9000", "allowedOrigins": ["localhost:*", "example.com"]},
		"limits": {"msgWindow": "2s"},
		"game": {"seed": 42, "player1": "Ann"},
		"log": {"level": "debug", "format": "json"}
	}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), data, 0o644))

	load(t, dir)

	srv := Server()
	assert.Equal(t, "9000", srv.Port)
	assert.Equal(t, []string{"localhost:*", "example.com"}, srv.AllowedOrigins)
	assert.Equal(t, 2*time.Second, Limits().MsgWindow)
	assert.Equal(t, int64(42), Game().Seed)
	assert.Equal(t, "Ann", Game().Player1)
	assert.Equal(t, "Player 2", Game().Player2)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, Log())
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(`{"server":`), 0o644))
	t.Cleanup(viper.Reset)

	assert.Error(t, Load(dir))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TENNIS_SERVER_PORT", "7000")
	t.Setenv("TENNIS_GAME_TICKRATE", "120")
	t.Setenv("TENNIS_LOG_LEVEL", "warn")
	t.Setenv("TENNIS_SERVER_TRUSTPROXY", "true")

	load(t, t.TempDir())
	assert.True(t, Server().TrustProxy)

	assert.Equal(t, "7000", Server().Port)
	assert.Equal(t, 120, Game().TickRate)
	assert.Equal(t, "warn", Log().Level)
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("STATIC_DIR", "/srv/web")
	t.Setenv("ALLOWED_ORIGINS", "a.example,b.example")

	load(t, t.TempDir())

	srv := Server()
	assert.Equal(t, "3000", srv.Port)
	assert.Equal(t, "/srv/web", srv.StaticDir)
	assert.Equal(t, []string{"a.example", "b.example"}, srv.AllowedOrigins)
}

func TestGame_NonPositiveTickRate(t *testing.T) {
	load(t, t.TempDir())
	viper.Set("game.tickRate", 0)

	assert.Equal(t, 60, Game().TickRate)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(nil))
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", " ", "c"}))
}
