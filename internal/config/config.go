package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultCollection = "GratefulDead"
	defaultArtist     = "Grateful Dead"
	defaultSort       = "date asc"
)

type Config struct {
	Collection   string `koanf:"collection"`    // archive.org collection to browse
	Artist       string `koanf:"artist"`        // display artist for playback metadata
	DefaultSort  string `koanf:"default_sort"`  // "date asc", "downloads desc", or "avg_rating desc"
	DisableMpris bool   `koanf:"disable_mpris"` // skip the desktop media controls bridge
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Collection:  defaultCollection,
		Artist:      defaultArtist,
		DefaultSort: defaultSort,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Collection == "" {
		cfg.Collection = defaultCollection
	}
	if cfg.Artist == "" {
		cfg.Artist = defaultArtist
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = defaultSort
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tapedeck/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tapedeck", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}
