package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName         = "synaudio"
	libraryFileName = "library.db"
)

type Config struct {
	LibraryFile     string `koanf:"library_file"`      // SQLite library file
	MusicFolderPath string `koanf:"music_folder_path"` // root of the shared music folder, local or UNC
	LogLevel        string `koanf:"log_level"`         // "debug", "info", "warn", "error" (default: "info")
}

// Load reads the default config files, then extra (if not empty), which
// must exist. Later files override earlier ones.
func Load(extra string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if extra != "" {
		if err := k.Load(file.Provider(expandPath(extra)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", extra, err)
		}
	}

	cfg := &Config{
		LogLevel: "info",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.LibraryFile == "" {
		cfg.LibraryFile = DefaultLibraryFile()
	}
	cfg.LibraryFile = expandPath(cfg.LibraryFile)

	if cfg.MusicFolderPath != "" && !isUNC(cfg.MusicFolderPath) {
		cfg.MusicFolderPath = expandPath(cfg.MusicFolderPath)
	}

	return cfg, nil
}

// DefaultLibraryFile is the library location under the XDG data directory.
func DefaultLibraryFile() string {
	return filepath.Join(xdg.DataHome, appName, libraryFileName)
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/synaudio/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func isUNC(path string) bool {
	return strings.HasPrefix(path, `\\`)
}

// SlogLevel parses LogLevel, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// MediaPath resolves a library-internal media path against the music
// folder. UNC folders keep backslash separators.
func (c *Config) MediaPath(internal string) string {
	if c.MusicFolderPath == "" {
		return internal
	}
	rel := strings.TrimLeft(internal, `/\`)
	if isUNC(c.MusicFolderPath) {
		return strings.TrimRight(c.MusicFolderPath, `\`) + `\` + strings.ReplaceAll(rel, "/", `\`)
	}
	return filepath.Join(c.MusicFolderPath, filepath.FromSlash(rel))
}
