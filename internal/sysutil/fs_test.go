package sysutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ecmwf-projects/cgul/internal/sysutil"
)

func TestCopyFile(t *testing.T) {
	tempDir := t.TempDir()

	src := filepath.Join(tempDir, "src.txt")
	dest := filepath.Join(tempDir, "dest.txt")
	if err := os.WriteFile(src, []byte("contents"), 0750); err != nil {
		t.Fatal(err)
	}

	if err := sysutil.CopyFile(src, dest); err != nil {
		t.Fatal(err)
	}

	copied, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(copied) != "contents" {
		t.Errorf("CopyFile() contents = %q, want %q", copied, "contents")
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0750 {
		t.Errorf("CopyFile() mode = %v, want %v", info.Mode().Perm(), os.FileMode(0750))
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	err := sysutil.CopyFile(filepath.Join(t.TempDir(), "nope"), "dest")
	if err == nil {
		t.Error("CopyFile() expected an error for a missing source")
	}
}
