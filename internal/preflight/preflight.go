package preflight

import (
	"edsmover/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check for cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Source directory", cfg.SourceDir),
		CheckDirectoryAccess("Target directory", cfg.TargetDir),
		CheckSameDevice("Relocation", cfg.SourceDir, cfg.TargetDir),
	}
}

// Failed filters results down to the ones that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
