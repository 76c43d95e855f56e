package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	FileName  = "tennis"
	envPrefix = "TENNIS"
)

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	StaticDir      string   `mapstructure:"staticDir"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	TrustProxy     bool     `mapstructure:"trustProxy"`
}

type LimitsConfig struct {
	MaxConnsPerIP int           `mapstructure:"maxConnsPerIP"`
	MsgRate       int           `mapstructure:"msgRate"`
	MsgWindow     time.Duration `mapstructure:"msgWindow"`
	MaxSessions   int           `mapstructure:"maxSessions"`
}

type GameConfig struct {
	TickRate int    `mapstructure:"tickRate"`
	Seed     int64  `mapstructure:"seed"`
	Player1  string `mapstructure:"player1"`
	Player2  string `mapstructure:"player2"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.staticDir", "./web")
	viper.SetDefault("server.allowedOrigins", []string{})
	viper.SetDefault("server.trustProxy", false)

	viper.SetDefault("limits.maxConnsPerIP", 4)
	viper.SetDefault("limits.msgRate", 240)
	viper.SetDefault("limits.msgWindow", "1s")
	viper.SetDefault("limits.maxSessions", 100)

	viper.SetDefault("game.tickRate", 60)
	viper.SetDefault("game.seed", 0)
	viper.SetDefault("game.player1", "Player 1")
	viper.SetDefault("game.player2", "Player 2")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// Load sets defaults, binds TENNIS_* environment variables (plus the legacy
// PORT, STATIC_DIR and ALLOWED_ORIGINS) and reads tennis.json from configDir
// when present. A missing file is not an error.
func Load(configDir string) error {
	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	legacy := map[string]string{
		"server.port":           "PORT",
		"server.staticDir":      "STATIC_DIR",
		"server.allowedOrigins": "ALLOWED_ORIGINS",
	}
	for key, env := range legacy {
		if err := viper.BindEnv(key, envKey(key), env); err != nil {
			return fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func envKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func Server() ServerConfig {
	return ServerConfig{
		Port:           viper.GetString("server.port"),
		StaticDir:      viper.GetString("server.staticDir"),
		AllowedOrigins: splitList(viper.GetStringSlice("server.allowedOrigins")),
		TrustProxy:     viper.GetBool("server.trustProxy"),
	}
}

func Limits() LimitsConfig {
	return LimitsConfig{
		MaxConnsPerIP: viper.GetInt("limits.maxConnsPerIP"),
		MsgRate:       viper.GetInt("limits.msgRate"),
		MsgWindow:     viper.GetDuration("limits.msgWindow"),
		MaxSessions:   viper.GetInt("limits.maxSessions"),
	}
}

func Game() GameConfig {
	rate := viper.GetInt("game.tickRate")
	if rate <= 0 {
		rate = 60
	}
	return GameConfig{
		TickRate: rate,
		Seed:     viper.GetInt64("game.seed"),
		Player1:  viper.GetString("game.player1"),
		Player2:  viper.GetString("game.player2"),
	}
}

func Log() LogConfig {
	return LogConfig{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	}
}

// splitList accepts both JSON arrays and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
