// Package config loads pkgstat's optional TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// Defaults match the primary Debian mirror.
const (
	DefaultMirror       = "http://ftp.uk.debian.org/debian"
	DefaultDistribution = "stable"
	DefaultArea         = "main"
	DefaultTop          = 10
)

type Config struct {
	Mirror       string `toml:"mirror"`
	Distribution string `toml:"distribution"`
	Area         string `toml:"area"`
	Top          int    `toml:"top"`
}

// Default returns a Config populated with the stock mirror settings.
func Default() Config {
	return Config{
		Mirror:       DefaultMirror,
		Distribution: DefaultDistribution,
		Area:         DefaultArea,
		Top:          DefaultTop,
	}
}

// Load reads the file at path and overlays it on the defaults, so a partial
// file only overrides the keys it names. A missing file is not an error: the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if cfg.Top <= 0 {
		return Config{}, fmt.Errorf("config %s: top must be positive, got %d", path, cfg.Top)
	}
	return cfg, nil
}
