package main

import (
	"context"
	"path/filepath"
	"testing"

	"edsmover/internal/config"
	"edsmover/internal/testsupport"
)

func TestConfigInitAndCheck(t *testing.T) {
	target := filepath.Join(t.TempDir(), "etc", "paths.txt")

	out, _, err := runCLI(t, context.Background(), "config", "init", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, _, err := runCLI(t, context.Background(), "config", "init", target); err == nil {
		t.Fatal("expected second init to refuse overwriting")
	}

	out, _, err = runCLI(t, context.Background(), "--config", target, "config", "check")
	if err != nil {
		t.Fatalf("config check: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, config.KeySourcePath)
	requireContains(t, out, "does not exist")
}

func TestConfigCheckReportsDirectories(t *testing.T) {
	dirs := testsupport.NewDirs(t)
	configPath := testsupport.WriteConfig(t, dirs, 5)

	out, _, err := runCLI(t, context.Background(), "--config", configPath, "--log-level", "debug", "config", "check")
	if err != nil {
		t.Fatalf("config check: %v", err)
	}
	requireContains(t, out, dirs.Source+" (read/write ok)")
	requireContains(t, out, dirs.Target+" (read/write ok)")
	requireContains(t, out, "5s")
	requireContains(t, out, "debug")
}
