// Package config loads the book.toml configuration and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the full book configuration.
type Config struct {
	Book   BookConfig   `toml:"book"`
	Build  BuildConfig  `toml:"build"`
	Output OutputConfig `toml:"output"`
}

// BookConfig is the book's metadata.
type BookConfig struct {
	Title       string   `toml:"title"`
	Authors     []string `toml:"authors"`
	Description string   `toml:"description"`
	Language    string   `toml:"language"`
	// Src is the directory containing SUMMARY.md and the chapter
	// sources, relative to the book root.
	Src string `toml:"src"`
}

// BuildConfig controls the build process.
type BuildConfig struct {
	// BuildDir receives the rendered output, relative to the book root.
	BuildDir string `toml:"build-dir"`
	// CreateMissing makes the loader create stub files for chapters
	// listed in SUMMARY.md that do not exist yet.
	CreateMissing bool `toml:"create-missing"`
}

// OutputConfig controls the FTD output.
type OutputConfig struct {
	// CurlyQuotes enables typographic punctuation in rendered text.
	CurlyQuotes bool `toml:"curly-quotes"`
}

// Default returns the configuration used when book.toml is absent.
func Default() Config {
	return Config{
		Book: BookConfig{
			Src:      "src",
			Language: "en",
		},
		Build: BuildConfig{
			BuildDir:      "ftd_output",
			CreateMissing: true,
		},
	}
}

// Load reads book.toml from the book root, falling back to defaults when
// the file does not exist, then applies FTDBOOK_* environment overrides.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, "book.toml")
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	cfg.updateFromEnv()
	return cfg, nil
}

func (c *Config) updateFromEnv() {
	c.Book.Title = envOr("FTDBOOK_TITLE", c.Book.Title)
	c.Book.Src = envOr("FTDBOOK_SRC", c.Book.Src)
	c.Build.BuildDir = envOr("FTDBOOK_BUILD_DIR", c.Build.BuildDir)
	c.Build.CreateMissing = envBool("FTDBOOK_CREATE_MISSING", c.Build.CreateMissing)
	c.Output.CurlyQuotes = envBool("FTDBOOK_CURLY_QUOTES", c.Output.CurlyQuotes)
}

// Validate checks the fields a build cannot proceed without.
func (c Config) Validate() error {
	if c.Book.Src == "" {
		return fmt.Errorf("book.src must not be empty")
	}
	if c.Build.BuildDir == "" {
		return fmt.Errorf("build.build-dir must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
