// Package daemon runs the long-lived scan loop.
//
// A Daemon takes a single-instance flock keyed by the source directory, logs
// the parameters it watches with, then alternates mover passes and interval
// sleeps until its context is cancelled or a pass fails in a way the mover
// cannot absorb (for example the source directory disappearing). Per-file
// failures never stop the loop. The lock file lives in os.TempDir() so the
// source directory only ever holds files waiting to be moved.
package daemon
