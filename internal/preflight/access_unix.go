//go:build unix

package preflight

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func checkAccess(path string) error {
	return unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK)
}

func sameDevice(a, b string) (same, known bool, err error) {
	var sa, sb unix.Stat_t
	if err := unix.Stat(a, &sa); err != nil {
		return false, false, fmt.Errorf("stat %s: %w", a, err)
	}
	if err := unix.Stat(b, &sb); err != nil {
		return false, false, fmt.Errorf("stat %s: %w", b, err)
	}
	return sa.Dev == sb.Dev, true, nil
}
