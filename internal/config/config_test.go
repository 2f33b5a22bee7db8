package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"edsmover/internal/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadKeyValue(t *testing.T) {
	path := writeConfig(t, "paths.txt", "src_path=/a\ntarget_path=/b\ncheck_interval=5\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SourceDir != "/a" || cfg.TargetDir != "/b" || cfg.CheckInterval != 5*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Pattern != config.DefaultPattern {
		t.Fatalf("expected default pattern, got %q", cfg.Pattern)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Path != path {
		t.Fatalf("expected path %q, got %q", path, cfg.Path)
	}
}

func TestLoadToleratesBlankLinesCRLFAndUnknownKeys(t *testing.T) {
	content := "\ufeffsrc_path=C:\\in\r\n\r\n  \ntarget_path=D:\\out\r\nowner=ops\r\ncheck_interval=1\r\ncheck_interval=30\r\n"
	cfg, err := config.Load(writeConfig(t, "paths.txt", content))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SourceDir != `C:\in` || cfg.TargetDir != `D:\out` {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.CheckInterval != 30*time.Second {
		t.Fatalf("expected last check_interval to win, got %s", cfg.CheckInterval)
	}
}

func TestLoadMissingKeys(t *testing.T) {
	cases := []struct {
		name    string
		content string
		missing string
	}{
		{"no source", "target_path=/b\ncheck_interval=5\n", "src_path"},
		{"no target", "src_path=/a\ncheck_interval=5\n", "target_path"},
		{"no interval", "src_path=/a\ntarget_path=/b\n", "check_interval"},
		{"empty source value", "src_path=\ntarget_path=/b\ncheck_interval=5\n", "src_path"},
		{"empty file", "", "src_path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, "paths.txt", tc.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var cfgErr *config.Error
			if !errors.As(err, &cfgErr) || cfgErr.Key != tc.missing {
				t.Fatalf("expected missing key %q, got %v", tc.missing, err)
			}
		})
	}
}

func TestLoadInvalidInterval(t *testing.T) {
	for _, value := range []string{"abc", "1.5", "0", "-3", "20000000000", "9223372036854775807", "99999999999999999999"} {
		t.Run(value, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, "paths.txt", "src_path=/a\ntarget_path=/b\ncheck_interval="+value+"\n"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	_, err := config.Load(writeConfig(t, "paths.txt", "src_path=/a\ntarget_path=/b\ncheck_interval=abc\n"))
	if err == nil || !strings.Contains(err.Error(), `"abc"`) {
		t.Fatalf("expected error to include offending text, got %v", err)
	}
}

func TestLoadLargestInterval(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "paths.txt", "src_path=/a\ntarget_path=/b\ncheck_interval=9223372036\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := 9223372036 * time.Second; cfg.CheckInterval != want {
		t.Fatalf("CheckInterval = %s, want %s", cfg.CheckInterval, want)
	}

	_, err = config.Load(writeConfig(t, "paths.txt", "src_path=/a\ntarget_path=/b\ncheck_interval=9223372037\n"))
	if err == nil || !strings.Contains(err.Error(), "at most") {
		t.Fatalf("expected upper bound error, got %v", err)
	}
}

func TestLoadMalformedLine(t *testing.T) {
	cases := map[string]string{
		"no separator":   "src_path=/a\ntarget_path /b\ncheck_interval=5\n",
		"two separators": "src_path=/a=b\ntarget_path=/b\ncheck_interval=5\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, "paths.txt", content))
			var cfgErr *config.Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *config.Error, got %v", err)
			}
			if cfgErr.Line == 0 {
				t.Fatalf("expected line number in error, got %+v", cfgErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	content := `src_path = "/in"
target_path = "/out"
check_interval = 7
pattern = "report-*.eds"

[logging]
level = "debug"
format = "json"
`
	cfg, err := config.Load(writeConfig(t, "edsmover.toml", content))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SourceDir != "/in" || cfg.TargetDir != "/out" || cfg.CheckInterval != 7*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Pattern != "report-*.eds" {
		t.Fatalf("unexpected pattern %q", cfg.Pattern)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadTOMLRequiresSameKeys(t *testing.T) {
	_, err := config.Load(writeConfig(t, "edsmover.toml", "src_path = \"/in\"\ntarget_path = \"/out\"\n"))
	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) || cfgErr.Key != config.KeyCheckInterval {
		t.Fatalf("expected missing check_interval, got %v", err)
	}

	_, err = config.Load(writeConfig(t, "edsmover.toml", "src_path = \"/in\"\ntarget_path = \"/out\"\ncheck_interval = \"abc\"\n"))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for string interval, got %v", err)
	}
}

func TestValidateRejectsBadPatternAndFormat(t *testing.T) {
	_, err := config.Load(writeConfig(t, "edsmover.toml", "src_path = \"/in\"\ntarget_path = \"/out\"\ncheck_interval = 1\npattern = \"[\"\n"))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected invalid pattern error, got %v", err)
	}

	_, err = config.Load(writeConfig(t, "edsmover.toml", "src_path = \"/in\"\ntarget_path = \"/out\"\ncheck_interval = 1\n[logging]\nformat = \"xml\"\n"))
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected invalid format error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "paths.txt")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if cfg.CheckInterval <= 0 {
		t.Fatalf("unexpected interval %s", cfg.CheckInterval)
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}
}
