package fileutil

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMoveRenames(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.eds")
	dst := filepath.Join(dir, "out", "a.eds")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	method, err := Move(src, dst)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if method != MethodRename {
		t.Fatalf("expected rename, got %s", method)
	}
	if Exists(src) {
		t.Fatal("source should be gone after move")
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "hello" {
		t.Fatalf("unexpected destination content %q err=%v", got, err)
	}
}

func TestMoveMissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := Move(filepath.Join(dir, "gone.eds"), filepath.Join(dir, "dst.eds")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestMoveMissingTargetDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.eds")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Move(src, filepath.Join(dir, "nope", "a.eds")); err == nil {
		t.Fatal("expected error when target directory is missing")
	}
	if !Exists(src) {
		t.Fatal("source must stay in place after a failed move")
	}
}

func TestMoveNonCrossDeviceErrorDoesNotCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.eds")
	dst := filepath.Join(dir, "b.eds")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("permission denied")
	rename = func(string, string) error { return boom }
	t.Cleanup(func() { rename = os.Rename })

	if _, err := Move(src, dst); !errors.Is(err, boom) {
		t.Fatalf("expected rename error, got %v", err)
	}
	if Exists(dst) {
		t.Fatal("destination must not be created")
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.eds")
	dst := filepath.Join(dir, "dst.eds")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o640); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	if err := os.Chtimes(src, past, past); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(past) {
		t.Fatalf("expected modtime %s, got %s", past, info.ModTime())
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "nonexistent"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFileVerified_RejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(dir, filepath.Join(t.TempDir(), "dst")); err == nil {
		t.Fatal("expected error for directory source")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if !Exists(dir) {
		t.Fatal("temp dir should exist")
	}
	if Exists(filepath.Join(dir, "missing")) {
		t.Fatal("missing path should not exist")
	}
}

func TestVerifyCopyDetectsChangedContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "copy.eds")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := sha256.Sum256([]byte("hello"))
	if err := verifyCopy(path, 5, good[:]); err != nil {
		t.Fatalf("verifyCopy on intact copy: %v", err)
	}

	cases := []struct {
		name    string
		content string
	}{
		{"same size different bytes", "jello"},
		{"truncated", "hell"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if err := verifyCopy(path, 5, good[:]); err == nil {
				t.Fatalf("expected mismatch for %q", tc.content)
			}
		})
	}

	if err := verifyCopy(filepath.Join(dir, "missing"), 5, good[:]); err == nil {
		t.Fatal("expected error for missing copy")
	}
}
