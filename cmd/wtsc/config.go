package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileName = "wtsc.toml"

type fileConfig struct {
	Path   string       `toml:"-"`
	Output outputConfig `toml:"output"`
	Rerun  rerunConfig  `toml:"rerun"`
	Trace  traceConfig  `toml:"trace"`
}

type outputConfig struct {
	Color   string `toml:"color"`
	NoClear *bool  `toml:"no_clear"`
}

type rerunConfig struct {
	Exec         string            `toml:"exec"`
	Debounce     string            `toml:"debounce"`
	StopTimeout  string            `toml:"stop_timeout"`
	KillOnChange *bool             `toml:"kill_on_change"`
	Dir          string            `toml:"dir"`
	Env          map[string]string `toml:"env"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// findConfig walks up from startDir looking for wtsc.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
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

// loadConfig reads the file named by explicit, or the nearest wtsc.toml
// above startDir. A missing discovered file yields an empty config.
func loadConfig(explicit, startDir string) (*fileConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &fileConfig{}, nil
		}
		path = found
	}

	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if cfg.Rerun.Dir != "" && !filepath.IsAbs(cfg.Rerun.Dir) {
		cfg.Rerun.Dir = filepath.Join(filepath.Dir(path), cfg.Rerun.Dir)
	}
	return &cfg, nil
}

// envList renders the [rerun.env] table as sorted KEY=VALUE pairs.
func (c rerunConfig) envList() []string {
	if len(c.Env) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

func parseConfigDuration(path, key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid %s: %w", path, key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: %s must not be negative", path, key)
	}
	return d, nil
}
