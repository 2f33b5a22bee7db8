// Package mover relocates finished candidate files from a source directory
// into a target directory.
//
// A pass lists the source directory once and handles each matching file to
// completion before looking at the next: the collision-free target name is
// chosen, the lock probe is polled (sleeping the check interval between
// attempts, with no retry limit), and the file is renamed or copied across.
// A failed relocation is logged and skipped; only a failure to list the
// source directory or a cancelled context ends the pass early.
package mover
