// Package lockprobe infers whether another process holds a file open.
//
// The check is a point-in-time heuristic: the file is opened read-only and
// then read-write without truncation, each handle closed immediately. Any
// failure means "in use". A permission error looks the same as a sharing
// violation, and a file can become busy right after a probe reports it free.
package lockprobe

import "os"

// Prober reports whether a file is currently in use.
type Prober interface {
	InUse(path string) bool
}

// Func adapts a plain function to Prober.
type Func func(path string) bool

func (f Func) InUse(path string) bool { return f(path) }

// Default probes the real filesystem.
var Default Prober = Func(InUse)

// InUse reports whether path cannot be opened for reading, or cannot be
// opened for reading and writing.
func InUse(path string) bool {
	r, err := os.Open(path)
	if err != nil {
		return true
	}
	_ = r.Close()

	rw, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return true
	}
	_ = rw.Close()
	return false
}
