package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the full app configuration. An empty Revisions string leaves
// the revset choice to jj.
type Config struct {
	Revisions       string `mapstructure:"revisions" yaml:"revisions"`
	AutoRefresh     bool   `mapstructure:"auto_refresh" yaml:"auto_refresh"`
	IgnoreImmutable bool   `mapstructure:"ignore_immutable" yaml:"ignore_immutable"`
	UI              UI     `mapstructure:"ui" yaml:"ui"`
}

type UI struct {
	ScrollPadding int `mapstructure:"scroll_padding" yaml:"scroll_padding"`
}

func Default() Config {
	return Config{
		Revisions:       "",
		AutoRefresh:     true,
		IgnoreImmutable: false,
		UI: UI{
			ScrollPadding: 3,
		},
	}
}

// Load reads config from the repo-local .majjit/config.yaml, falling back
// to ~/.config/majjit/config.yaml. A missing file is fine; the defaults
// apply, overridden by whatever keys the file sets.
func Load(repoRoot string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(repoRoot, ".majjit"))
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "majjit"))
	}

	def := Default()
	v.SetDefault("revisions", def.Revisions)
	v.SetDefault("auto_refresh", def.AutoRefresh)
	v.SetDefault("ignore_immutable", def.IgnoreImmutable)
	v.SetDefault("ui.scroll_padding", def.UI.ScrollPadding)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.UI.ScrollPadding < 0 {
		cfg.UI.ScrollPadding = 0
	}
	return cfg, nil
}
