package stores

import (
	"context"
	"errors"
	"testing"

	"festive-foliage/core"
	"festive-foliage/stores/memory"
)

type brokenMedium struct{}

func (brokenMedium) Get(ctx context.Context, name string) ([]byte, error) {
	return nil, errors.New("remote unavailable")
}

func (brokenMedium) Put(ctx context.Context, name string, data []byte) error {
	return errors.New("remote unavailable")
}

func TestFallback_ReadsRemoteFirst(t *testing.T) {
	ctx := context.Background()
	remote, local := memory.NewStore(), memory.NewStore()
	remote.Put(ctx, "decorations.json", []byte(`["remote"]`))
	local.Put(ctx, "decorations.json", []byte(`["local"]`))

	got, err := WithFallback("test", remote, local).Get(ctx, "decorations.json")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `["remote"]` {
		t.Errorf("Get() = %s, want remote copy", got)
	}
}

func TestFallback_RemoteFailureUsesLocal(t *testing.T) {
	ctx := context.Background()
	local := memory.NewStore()
	m := WithFallback("test", brokenMedium{}, local)

	if err := m.Put(ctx, "blocks.json", []byte(`[]`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if _, err := local.Get(ctx, "blocks.json"); err != nil {
		t.Errorf("write did not reach local medium: %v", err)
	}

	got, err := m.Get(ctx, "blocks.json")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("Get() = %q", got)
	}
}

func TestFallback_MissingEverywhere(t *testing.T) {
	m := WithFallback("test", memory.NewStore(), memory.NewStore())

	_, err := m.Get(context.Background(), "decorations.json")
	if !errors.Is(err, core.ErrDocumentNotFound) {
		t.Errorf("Get() error = %v, want ErrDocumentNotFound", err)
	}
}

func TestFallback_RemoteWriteSkipsLocal(t *testing.T) {
	ctx := context.Background()
	remote, local := memory.NewStore(), memory.NewStore()

	if err := WithFallback("test", remote, local).Put(ctx, "blocks.json", []byte(`[]`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if _, err := local.Get(ctx, "blocks.json"); !errors.Is(err, core.ErrDocumentNotFound) {
		t.Errorf("local medium written while remote was healthy")
	}
}
