package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"festive-foliage/core"
)

func TestNewStore_CreatesDirectory(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), "nested", "data")
	NewStore(basePath)

	if _, err := os.Stat(basePath); err != nil {
		t.Errorf("base directory not created: %v", err)
	}
}

func TestGet_Missing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "decorations.json")
	if !errors.Is(err, core.ErrDocumentNotFound) {
		t.Errorf("Get() error = %v, want ErrDocumentNotFound", err)
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	basePath := t.TempDir()
	store := NewStore(basePath)
	ctx := context.Background()

	if err := store.Put(ctx, "decorations.json", []byte(`[{"id":"ornament-1"}]`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put(ctx, "decorations.json", []byte(`[]`)); err != nil {
		t.Fatalf("second Put() failed: %v", err)
	}

	got, err := store.Get(ctx, "decorations.json")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("Get() = %q, want []", got)
	}

	info, err := os.Stat(filepath.Join(basePath, "decorations.json"))
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0644 {
		t.Errorf("file permissions = %o, want 644", perm)
	}

	entries, _ := os.ReadDir(basePath)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestRejectsPathTraversal(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"../escape.json", "sub/decorations.json", "..", ""} {
		if err := store.Put(ctx, name, []byte("[]")); err == nil {
			t.Errorf("Put(%q) should fail", name)
		}
		if _, err := store.Get(ctx, name); err == nil {
			t.Errorf("Get(%q) should fail", name)
		}
	}
}
