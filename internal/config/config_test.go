//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music",
			expected: filepath.Join(home, "music"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/.local/share/synaudio/library.db",
			expected: filepath.Join(home, ".local", "share", "synaudio", "library.db"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/local/music",
			expected: "/usr/local/music",
		},
		{
			name:     "relative path unchanged",
			input:    "music/albums",
			expected: "music/albums",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	// Should have at least one path
	if len(paths) == 0 {
		t.Error("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	// If we have home dir, first path should be ~/.config/synaudio/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "synaudio", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extra.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ExtraFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
library_file = "/data/library.db"
music_folder_path = '\\nas\music'
log_level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LibraryFile != "/data/library.db" {
		t.Errorf("LibraryFile = %q", cfg.LibraryFile)
	}
	if cfg.MusicFolderPath != `\\nas\music` {
		t.Errorf("MusicFolderPath = %q", cfg.MusicFolderPath)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, ``)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.LibraryFile == "" || filepath.Base(cfg.LibraryFile) != "library.db" {
		t.Errorf("LibraryFile = %q, want default library.db", cfg.LibraryFile)
	}
}

func TestLoad_MissingExtraFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `library_file = `)
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid toml")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.expected {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMediaPath(t *testing.T) {
	tests := []struct {
		name     string
		folder   string
		internal string
		expected string
	}{
		{"no folder", "", "/music/a.mp3", "/music/a.mp3"},
		{"unc folder", `\\nas\music`, "/Bowie/Heroes/01.flac", `\\nas\music\Bowie\Heroes\01.flac`},
		{"unc folder trailing slash", `\\nas\music\`, "Bowie/01.flac", `\\nas\music\Bowie\01.flac`},
		{"local folder", "/mnt/music", "/Bowie/01.flac", filepath.Join("/mnt/music", "Bowie", "01.flac")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{MusicFolderPath: tt.folder}
			if got := cfg.MediaPath(tt.internal); got != tt.expected {
				t.Errorf("MediaPath(%q) = %q, want %q", tt.internal, got, tt.expected)
			}
		})
	}
}
