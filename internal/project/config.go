package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/biomejs/biome-sub019/internal/css"
	"github.com/biomejs/biome-sub019/internal/json"
)

// Config mirrors cstool.toml.
type Config struct {
	Files FilesConfig `toml:"files"`
	CSS   css.Options `toml:"css"`
	JSON  JSONConfig  `toml:"json"`
	Cache CacheConfig `toml:"cache"`

	// Path is the file the config was read from, empty for Default.
	Path string `toml:"-"`
}

type FilesConfig struct {
	Include        []string `toml:"include"`
	Exclude        []string `toml:"exclude"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	MaxSize        int64    `toml:"max_size"`
}

// JSONConfig adds auto_detect on top of the parser options: when set,
// well-known JSONC files get their extensions regardless of the flags.
type JSONConfig struct {
	json.Options
	AutoDetect bool `toml:"auto_detect"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default is the configuration used when no cstool.toml exists.
func Default() Config {
	return Config{
		Files: FilesConfig{
			Include:        []string{"*.css", "*.json", "*.jsonc"},
			Exclude:        []string{"node_modules", ".git"},
			MaxDiagnostics: 100,
			MaxSize:        1 << 20,
		},
		JSON:  JSONConfig{AutoDetect: true},
		Cache: CacheConfig{Enabled: true},
	}
}

// Load reads path over Default, so absent keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find locates cstool.toml above startDir and loads it. With no config
// file the error is ErrConfigNotFound itself.
func Find(startDir string) (Config, error) {
	path, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

func (c Config) Validate() error {
	if c.Files.MaxDiagnostics < 0 {
		return fmt.Errorf("[files].max_diagnostics must not be negative, got %d", c.Files.MaxDiagnostics)
	}
	if c.Files.MaxSize < 0 {
		return fmt.Errorf("[files].max_size must not be negative, got %d", c.Files.MaxSize)
	}
	for _, pattern := range append(append([]string(nil), c.Files.Include...), c.Files.Exclude...) {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
	}
	return c.CSS.Validate()
}

// Root is the directory of the config file, or "" for Default.
func (c Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

func (c Config) CSSOptions() css.Options { return c.CSS }

// JSONOptions returns the options for path, merging in what the file name
// implies when auto_detect is on.
func (c Config) JSONOptions(path string) json.Options {
	opts := c.JSON.Options
	if c.JSON.AutoDetect {
		opts = opts.Merge(json.OptionsForFile(path))
	}
	return opts
}

// CacheDir resolves [cache].dir, defaulting to the user cache directory.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		if filepath.IsAbs(c.Cache.Dir) || c.Root() == "" {
			return c.Cache.Dir, nil
		}
		return filepath.Join(c.Root(), c.Cache.Dir), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("no cache directory: %w", err)
	}
	return filepath.Join(base, "cstool"), nil
}

// Included reports whether the file at rel (slash or OS separated, relative
// to the walk root) should be checked. Patterns match the base name or any
// path segment; exclude wins.
func (c Config) Included(rel string) bool {
	rel = filepath.ToSlash(rel)
	segments := strings.Split(rel, "/")
	for _, pattern := range c.Files.Exclude {
		for _, seg := range segments {
			if ok, _ := filepath.Match(pattern, seg); ok {
				return false
			}
		}
	}
	base := segments[len(segments)-1]
	for _, pattern := range c.Files.Include {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Excluded reports whether a directory name should be skipped entirely.
func (c Config) Excluded(dirName string) bool {
	for _, pattern := range c.Files.Exclude {
		if ok, _ := filepath.Match(pattern, dirName); ok {
			return true
		}
	}
	return false
}
