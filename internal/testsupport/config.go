package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"edsmover/internal/config"
)

// Dirs holds a fresh source/target directory pair.
type Dirs struct {
	Base   string
	Source string
	Target string
}

// NewDirs creates empty source and target directories under one temp root.
func NewDirs(t testing.TB) Dirs {
	t.Helper()

	base := t.TempDir()
	dirs := Dirs{
		Base:   base,
		Source: filepath.Join(base, "incoming"),
		Target: filepath.Join(base, "archive"),
	}
	for _, dir := range []string{dirs.Source, dirs.Target} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return dirs
}

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// WithInterval overrides the check interval.
func WithInterval(d time.Duration) ConfigOption {
	return func(c *config.Config) { c.CheckInterval = d }
}

// WithPattern overrides the candidate pattern.
func WithPattern(pattern string) ConfigOption {
	return func(c *config.Config) { c.Pattern = pattern }
}

// NewConfig writes a paths.txt for dirs, loads it, and applies opts.
func NewConfig(t testing.TB, dirs Dirs, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg, err := config.Load(WriteConfig(t, dirs, 1))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WriteConfig writes a paths.txt under dirs.Base and returns its path.
func WriteConfig(t testing.TB, dirs Dirs, intervalSeconds int) string {
	t.Helper()

	path := filepath.Join(dirs.Base, config.DefaultPath)
	WriteText(t, path, fmt.Sprintf("%s=%s\n%s=%s\n%s=%d\n",
		config.KeySourcePath, dirs.Source,
		config.KeyTargetPath, dirs.Target,
		config.KeyCheckInterval, intervalSeconds,
	))
	return path
}
