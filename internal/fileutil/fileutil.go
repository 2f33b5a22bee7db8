// Package fileutil holds the filesystem primitives the mover relies on.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Method names how Move relocated a file.
type Method string

const (
	MethodRename Method = "rename"
	MethodCopy   Method = "copy"
)

// rename is swapped in tests to simulate cross-device moves.
var rename = os.Rename

// Move relocates src to dst. It renames when possible and falls back to a
// verified copy followed by removal of src when the rename crosses devices.
// On failure src is left in place.
func Move(src, dst string) (Method, error) {
	err := rename(src, dst)
	if err == nil {
		return MethodRename, nil
	}
	if !isCrossDevice(err) {
		return "", err
	}

	if err := CopyFileVerified(src, dst); err != nil {
		return "", fmt.Errorf("copy across devices: %w", err)
	}
	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("remove source after copy: %w", err)
	}
	return MethodCopy, nil
}

// CopyFileVerified copies src to dst, carrying over the permission bits and
// modification time. After the copy is closed, dst is read back and its size
// and SHA256 must match what was read from src; otherwise dst is removed.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !srcInfo.Mode().IsRegular() {
		return fmt.Errorf("copy %s: not a regular file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	srcHasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHasher))
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	if err := verifyCopy(dst, written, srcHasher.Sum(nil)); err != nil {
		_ = os.Remove(dst)
		return err
	}

	modTime := srcInfo.ModTime()
	_ = os.Chtimes(dst, modTime, modTime)
	return nil
}

// verifyCopy re-reads path from disk and compares it with the size and
// digest recorded while copying.
func verifyCopy(path string, size int64, sum []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reopen copy: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return fmt.Errorf("read back copy: %w", err)
	}
	if n != size {
		return fmt.Errorf("copy size mismatch: expected %d bytes, found %d bytes", size, n)
	}
	if !bytes.Equal(h.Sum(nil), sum) {
		return fmt.Errorf("copy hash mismatch: %s differs from its source", path)
	}
	return nil
}

// Exists reports whether path can be stat'ed. Stat errors other than
// not-exist also report false.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
