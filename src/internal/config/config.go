// Package config holds the persisted user defaults (config.yaml in the
// mkvenv home dir, read through viper) and the optional per-project
// mkvenv.toml overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rozeraf/mkvenv/src/internal/appdir"
)

const (
	KeyDefaultName  = "default_name"
	KeyBasePackages = "base_packages"

	DefaultName = "venv"
)

var DefaultBasePackages = []string{"pip", "setuptools", "wheel"}

type Config struct {
	DefaultName  string
	BasePackages []string
}

// Load reads the defaults out of whatever viper picked up at startup. An
// absent or empty config file yields the built-in defaults.
func Load() Config {
	cfg := Config{
		DefaultName:  DefaultName,
		BasePackages: append([]string(nil), DefaultBasePackages...),
	}
	if v := viper.GetString(KeyDefaultName); v != "" {
		cfg.DefaultName = v
	}
	if v := viper.GetStringSlice(KeyBasePackages); len(v) > 0 {
		cfg.BasePackages = v
	}
	return cfg
}

// Save rewrites the whole config file. The write goes through a temp file in
// the same directory so a crash never leaves a half-written config behind.
func Save(cfg Config) error {
	viper.Set(KeyDefaultName, cfg.DefaultName)
	viper.Set(KeyBasePackages, cfg.BasePackages)

	path := appdir.ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".config-%d.yaml", os.Getpid()))
	if err := viper.WriteConfigAs(tmp); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
