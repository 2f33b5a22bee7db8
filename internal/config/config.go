package config

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_paths.txt
var samplePaths string

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the immutable runtime configuration of the mover.
type Config struct {
	SourceDir     string
	TargetDir     string
	CheckInterval time.Duration

	// Pattern is the glob a file name must match to be moved.
	Pattern string
	Logging Logging

	// Path is the file the configuration was read from.
	Path string
}

// tomlFile mirrors the TOML layout. CheckInterval is a pointer so an absent
// key can be told apart from zero.
type tomlFile struct {
	SrcPath       string  `toml:"src_path"`
	TargetPath    string  `toml:"target_path"`
	CheckInterval *int64  `toml:"check_interval"`
	Pattern       string  `toml:"pattern"`
	Logging       Logging `toml:"logging"`
}

// maxIntervalSeconds is the largest interval a time.Duration can hold.
const maxIntervalSeconds = math.MaxInt64 / int64(time.Second)

type rawConfig struct {
	values  map[string]string
	pattern string
	logging Logging
}

// Load reads, parses, and validates the configuration at path. An empty path
// means DefaultPath. Every failure is an *Error matching ErrInvalidConfig.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	var (
		raw rawConfig
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		raw, err = readTOML(path)
	} else {
		raw, err = readKeyValue(path)
	}
	if err != nil {
		return nil, err
	}

	cfg, err := raw.build(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readKeyValue(path string) (rawConfig, error) {
	raw := rawConfig{values: make(map[string]string)}

	file, err := os.Open(path)
	if err != nil {
		return raw, &Error{Path: path, Msg: "open config", Err: err}
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			return raw, &Error{
				Path: path,
				Line: lineNo,
				Msg:  fmt.Sprintf("malformed line %q: expected key=value", line),
			}
		}
		raw.values[parts[0]] = parts[1]
	}
	if err := scanner.Err(); err != nil {
		return raw, &Error{Path: path, Msg: "read config", Err: err}
	}
	return raw, nil
}

func readTOML(path string) (rawConfig, error) {
	raw := rawConfig{values: make(map[string]string)}

	file, err := os.Open(path)
	if err != nil {
		return raw, &Error{Path: path, Msg: "open config", Err: err}
	}
	defer file.Close()

	var decoded tomlFile
	if err := toml.NewDecoder(file).Decode(&decoded); err != nil {
		return raw, &Error{Path: path, Msg: "parse config", Err: err}
	}

	raw.values[KeySourcePath] = decoded.SrcPath
	raw.values[KeyTargetPath] = decoded.TargetPath
	if decoded.CheckInterval != nil {
		raw.values[KeyCheckInterval] = strconv.FormatInt(*decoded.CheckInterval, 10)
	}
	raw.pattern = decoded.Pattern
	raw.logging = decoded.Logging
	return raw, nil
}

func (r rawConfig) build(path string) (*Config, error) {
	var missing []string
	for _, key := range RequiredKeys {
		if r.values[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &Error{
			Path: path,
			Key:  missing[0],
			Msg: fmt.Sprintf("missing required key(s) %s; the file must contain %s",
				strings.Join(missing, ", "), strings.Join(RequiredKeys, ", ")),
		}
	}

	intervalText := r.values[KeyCheckInterval]
	seconds, err := strconv.ParseInt(strings.TrimSpace(intervalText), 10, 64)
	if err != nil {
		return nil, &Error{
			Path: path,
			Key:  KeyCheckInterval,
			Msg:  fmt.Sprintf("invalid %s %q: must be an integer number of seconds", KeyCheckInterval, intervalText),
		}
	}

	if seconds > maxIntervalSeconds {
		return nil, &Error{
			Path: path,
			Key:  KeyCheckInterval,
			Msg:  fmt.Sprintf("invalid %s %q: must be at most %d seconds", KeyCheckInterval, intervalText, maxIntervalSeconds),
		}
	}

	cfg := &Config{
		SourceDir:     r.values[KeySourcePath],
		TargetDir:     r.values[KeyTargetPath],
		CheckInterval: time.Duration(seconds) * time.Second,
		Pattern:       strings.TrimSpace(r.pattern),
		Logging:       r.logging,
		Path:          path,
	}
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(cfg.Logging.Format) == "" {
		cfg.Logging.Format = defaultLogFormat
	}
	return cfg, nil
}

// CreateSample writes a sample paths.txt to path. An existing file is left
// untouched and reported as an error.
func CreateSample(path string) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(samplePaths), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample paths.txt contents.
func SampleConfig() string {
	return samplePaths
}
