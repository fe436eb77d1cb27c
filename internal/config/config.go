// Package config loads the backend configuration from the environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// APIURL is the URL the API is reachable at for clients. It is
	// used to build the links in API responses.
	APIURL           string   `mapstructure:"api_url"`
	GinMode          string   `mapstructure:"gin_mode"`
	CORSAllowOrigins []string `mapstructure:"-"`
	EnablePprof      bool     `mapstructure:"enable_pprof"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Format is "human" or "json". Empty means human in debug mode,
	// JSON otherwise.
	Format string `mapstructure:"format"`
}

// Load reads configuration from the environment. All settings use the
// prefix HEARTHLEDGER_, e.g. HEARTHLEDGER_DATABASE_PATH.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join("data", "hearthledger.db"))
	v.SetDefault("server.api_url", "http://localhost:8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.cors_allow_origins", "")
	v.SetDefault("server.enable_pprof", false)
	v.SetDefault("log.format", "")

	v.SetEnvPrefix("HEARTHLEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// Origins are space separated, like the fields of a header value
	c.Server.CORSAllowOrigins = strings.Fields(v.GetString("server.cors_allow_origins"))

	return c, nil
}
