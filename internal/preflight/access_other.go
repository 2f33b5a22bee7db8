//go:build !unix

package preflight

import (
	"fmt"
	"os"
)

func checkAccess(string) error { return nil }

func sameDevice(a, b string) (same, known bool, err error) {
	for _, path := range []string{a, b} {
		if _, err := os.Stat(path); err != nil {
			return false, false, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return false, false, nil
}
