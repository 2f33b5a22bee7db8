package preflight

import (
	"fmt"
	"os"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSameDevice reports whether moves between the two directories will be
// plain renames or a copy followed by a delete. Only a stat failure fails it.
func CheckSameDevice(name, sourceDir, targetDir string) Result {
	same, known, err := sameDevice(sourceDir, targetDir)
	switch {
	case err != nil:
		return Result{Name: name, Detail: fmt.Sprintf("error: %v", err)}
	case !known:
		return Result{Name: name, Passed: true, Detail: "rename, falling back to copy across volumes"}
	case same:
		return Result{Name: name, Passed: true, Detail: "same filesystem (rename)"}
	default:
		return Result{Name: name, Passed: true, Detail: "different filesystems (copy, verify, delete)"}
	}
}
