package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const manifestName = "tyir.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Lower lowerConfig `toml:"lower"`
	Cache cacheConfig `toml:"cache"`
	Trace traceConfig `toml:"trace"`
}

type lowerConfig struct {
	Format         string `toml:"format"`
	Jobs           int    `toml:"jobs"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type cacheConfig struct {
	Enabled *bool  `toml:"enabled"`
	Dir     string `toml:"dir"` // relative to the manifest
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// activeManifest is the tyir.toml of the current invocation, nil if none.
var activeManifest *projectManifest

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := readManifest(manifestPath)
	return m, true, err
}

func readManifest(path string) (*projectManifest, error) {
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &projectManifest{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Config: cfg,
	}, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("lower", "format") {
		if _, err := parseLowerFormat(cfg.Lower.Format); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [lower].format: %w", path, err)
		}
	}
	if cfg.Lower.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [lower].jobs must not be negative", path)
	}
	if cfg.Lower.MaxDiagnostics < 0 {
		return projectConfig{}, fmt.Errorf("%s: [lower].max_diagnostics must not be negative", path)
	}
	return cfg, nil
}

// cacheDir returns the configured cache directory, resolved against Root.
func (m *projectManifest) cacheDir() string {
	if m == nil || m.Config.Cache.Dir == "" {
		return ""
	}
	if filepath.IsAbs(m.Config.Cache.Dir) {
		return m.Config.Cache.Dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Cache.Dir))
}

func (m *projectManifest) cacheEnabled() bool {
	if m == nil || m.Config.Cache.Enabled == nil {
		return true
	}
	return *m.Config.Cache.Enabled
}

func loadActiveManifest(cmd *cobra.Command) error {
	activeManifest = nil
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		m, err := readManifest(explicit)
		if err != nil {
			return err
		}
		activeManifest = m
		return nil
	}
	m, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	activeManifest = m
	return nil
}

// maxDiagnostics: an explicit flag wins over [lower].max_diagnostics.
func maxDiagnostics(cmd *cobra.Command) (int, error) {
	flags := cmd.Root().PersistentFlags()
	n, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && activeManifest != nil && activeManifest.Config.Lower.MaxDiagnostics > 0 {
		n = activeManifest.Config.Lower.MaxDiagnostics
	}
	return n, nil
}
