package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/biomejs/biome-sub019/internal/driver"
	"github.com/biomejs/biome-sub019/internal/project"
)

const configFileHint = project.ConfigFileName

// loadConfig resolves the configuration for target: --config wins, then the
// nearest cstool.toml above target, then the defaults.
func loadConfig(cmd *cobra.Command, target string) (project.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		return project.Load(explicit)
	}

	start := target
	if info, statErr := os.Stat(target); statErr != nil || !info.IsDir() {
		start = filepath.Dir(target)
	}
	cfg, err := project.Find(start)
	if errors.Is(err, project.ErrConfigNotFound) {
		return project.Default(), nil
	}
	return cfg, err
}

// driverOptions reads the persistent flags that shape every driver call.
func driverOptions(cmd *cobra.Command, target string) (driver.Options, error) {
	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return driver.Options{}, err
	}

	flags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics >= 0 {
		cfg.Files.MaxDiagnostics = maxDiagnostics
	}

	langStr, err := flags.GetString("lang")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get lang flag: %w", err)
	}
	lang, err := driver.ParseLanguage(langStr)
	if err != nil {
		return driver.Options{}, err
	}

	timings, err := flags.GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}

	return driver.Options{Config: cfg, Lang: lang, Timings: timings}, nil
}

// openCache opens the diagnostics cache when the config enables it. A cache
// that cannot be opened is reported and skipped.
func openCache(cmd *cobra.Command, cfg project.Config) *driver.DiskCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	dir, err := cfg.CacheDir()
	if err == nil {
		var cache *driver.DiskCache
		if cache, err = driver.OpenDiskCache(dir); err == nil {
			return cache
		}
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
	}
	return nil
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}
