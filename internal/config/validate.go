package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceDir) == "" {
		return &Error{Path: c.Path, Key: KeySourcePath, Msg: KeySourcePath + " must be set"}
	}
	if strings.TrimSpace(c.TargetDir) == "" {
		return &Error{Path: c.Path, Key: KeyTargetPath, Msg: KeyTargetPath + " must be set"}
	}
	if c.CheckInterval <= 0 {
		return &Error{Path: c.Path, Key: KeyCheckInterval, Msg: KeyCheckInterval + " must be a positive number of seconds"}
	}
	if _, err := glob.Compile(c.Pattern); err != nil {
		return &Error{Path: c.Path, Key: "pattern", Msg: fmt.Sprintf("invalid pattern %q", c.Pattern), Err: err}
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return &Error{Path: c.Path, Key: "logging.format", Msg: fmt.Sprintf("unsupported log format %q", c.Logging.Format)}
	}
	return nil
}
