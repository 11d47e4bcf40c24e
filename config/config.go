// Package config loads server configuration with Viper: defaults, an
// optional YAML file, and GLYPHPANEL_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr"`
	// SnippetFile is a snippet definition file on disk. Empty means the
	// bundled catalog.
	SnippetFile string `mapstructure:"snippet_file"`
	// Watch reloads connected panels when SnippetFile changes.
	Watch bool `mapstructure:"watch"`
	// LogLevel is one of zerolog's level names.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration. cfgFile may be empty, in which case only a
// glyphpanel.yaml in the working directory is considered, and its absence is
// not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("snippet_file", "")
	v.SetDefault("watch", true)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("GLYPHPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("glyphpanel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
