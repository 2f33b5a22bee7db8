package mover

import (
	"fmt"
	"os"
	"path/filepath"

	"edsmover/internal/fileutil"
)

// Candidate is a file a pass would pick up, with its prospective target.
type Candidate struct {
	Name       string
	Path       string
	TargetName string
	InUse      bool
	Size       int64
}

// Scan previews a pass without touching anything. Target names account for
// the names earlier candidates in the same pass would claim.
func (m *Mover) Scan(sourceDir, targetDir string) ([]Candidate, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("list source directory %s: %w", sourceDir, err)
	}

	claimed := make(map[string]struct{})
	taken := func(name string) bool {
		if _, ok := claimed[name]; ok {
			return true
		}
		return fileutil.Exists(filepath.Join(targetDir, name))
	}

	var out []Candidate
	for _, entry := range entries {
		name := entry.Name()
		if !m.matcher.Match(name) || entry.IsDir() {
			continue
		}
		src := filepath.Join(sourceDir, name)
		target := uniqueName(name, taken)
		claimed[target] = struct{}{}

		c := Candidate{Name: name, Path: src, TargetName: target, InUse: m.prober.InUse(src)}
		if info, err := entry.Info(); err == nil {
			c.Size = info.Size()
		}
		out = append(out, c)
	}
	return out, nil
}
