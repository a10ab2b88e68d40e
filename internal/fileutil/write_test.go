package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"github.com/jdeng/gogif/internal/fileutil"
)

func TestWriteFileLockedCreatesAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "anim.gif")

	if err := fileutil.WriteFileLocked(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := fileutil.WriteFileLocked(path, []byte("second"), 0o600); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("content = %q, want second", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the output file, found %v", names)
	}
}

func TestWriteFileLockedRespectsHeldLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anim.gif")
	held := flock.New(fileutil.LockPath(path))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("could not take lock: %v", err)
	}
	defer held.Unlock()

	err = fileutil.WriteFileLocked(path, []byte("data"), 0o644)
	if !errors.Is(err, fileutil.ErrLocked) {
		t.Fatalf("got %v, want ErrLocked", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output written despite held lock")
	}
}
