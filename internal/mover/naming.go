package mover

import (
	"fmt"
	"path/filepath"
	"strings"

	"edsmover/internal/fileutil"
)

// SplitExt splits name into base and extension. Leading dots never start an
// extension, so ".eds" has no extension and "..eds" neither.
func SplitExt(name string) (string, string) {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || strings.TrimLeft(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}

// UniqueTargetName returns name if nothing by that name exists in targetDir,
// otherwise the first of name_x1.ext, name_x2.ext, ... that is free. The check
// is not atomic with respect to other writers to targetDir.
func UniqueTargetName(targetDir, name string) string {
	return uniqueName(name, func(candidate string) bool {
		return fileutil.Exists(filepath.Join(targetDir, candidate))
	})
}

func uniqueName(name string, taken func(string) bool) string {
	base, ext := SplitExt(name)
	candidate := name
	for n := 1; taken(candidate); n++ {
		candidate = fmt.Sprintf("%s_x%d%s", base, n, ext)
	}
	return candidate
}
