package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"festive-foliage/core"
	"festive-foliage/stores/memory"
)

type item struct {
	ID string `json:"id"`
}

type faultyMedium struct {
	getErr error
	putErr error
}

func (m *faultyMedium) Get(ctx context.Context, name string) ([]byte, error) {
	return nil, m.getErr
}

func (m *faultyMedium) Put(ctx context.Context, name string, data []byte) error {
	return m.putErr
}

func TestLoad_MissingDocumentCreatedEmpty(t *testing.T) {
	medium := memory.NewStore()
	c := NewCollection[item]("items.json", medium)

	items, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Load() = %v, want empty", items)
	}

	data, err := medium.Get(context.Background(), "items.json")
	if err != nil {
		t.Fatalf("document not created: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("created document = %q, want []", data)
	}
}

func TestLoad_EmptyAndNullDocuments(t *testing.T) {
	for _, body := range []string{"", "  \n", "null"} {
		medium := memory.NewStore()
		medium.Put(context.Background(), "items.json", []byte(body))
		c := NewCollection[item]("items.json", medium)

		items, err := c.Load(context.Background())
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", body, err)
		}
		if items == nil || len(items) != 0 {
			t.Errorf("Load(%q) = %#v, want empty slice", body, items)
		}
	}
}

func TestLoad_CorruptDocument(t *testing.T) {
	medium := memory.NewStore()
	medium.Put(context.Background(), "items.json", []byte("{not json"))
	c := NewCollection[item]("items.json", medium)

	if _, err := c.Load(context.Background()); !errors.Is(err, core.ErrStorage) {
		t.Errorf("Load() error = %v, want ErrStorage", err)
	}
}

func TestLoad_MediumFault(t *testing.T) {
	c := NewCollection[item]("items.json", &faultyMedium{getErr: errors.New("connection reset")})

	if _, err := c.Load(context.Background()); !errors.Is(err, core.ErrStorage) {
		t.Errorf("Load() error = %v, want ErrStorage", err)
	}
}

func TestMutate_PersistsIndented(t *testing.T) {
	medium := memory.NewStore()
	c := NewCollection[item]("items.json", medium)

	err := c.Mutate(context.Background(), func(items []item) ([]item, error) {
		return append(items, item{ID: "a"}), nil
	})
	if err != nil {
		t.Fatalf("Mutate() failed: %v", err)
	}

	data, _ := medium.Get(context.Background(), "items.json")
	want := "[\n  {\n    \"id\": \"a\"\n  }\n]"
	if string(data) != want {
		t.Errorf("document = %q, want %q", data, want)
	}
}

func TestMutate_FnErrorSkipsWrite(t *testing.T) {
	medium := memory.NewStore()
	c := NewCollection[item]("items.json", medium)
	boom := errors.New("boom")

	err := c.Mutate(context.Background(), func(items []item) ([]item, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Mutate() error = %v, want %v", err, boom)
	}
	if _, err := medium.Get(context.Background(), "items.json"); !errors.Is(err, core.ErrDocumentNotFound) {
		t.Errorf("document written despite fn error: %v", err)
	}
}

func TestMutate_WriteFault(t *testing.T) {
	medium := &faultyMedium{
		getErr: core.ErrDocumentNotFound,
		putErr: errors.New("read-only"),
	}
	c := NewCollection[item]("items.json", medium)

	err := c.Mutate(context.Background(), func(items []item) ([]item, error) {
		return append(items, item{ID: "a"}), nil
	})
	if !errors.Is(err, core.ErrStorage) {
		t.Errorf("Mutate() error = %v, want ErrStorage", err)
	}
}

func TestMutate_ConcurrentAppendsAllSurvive(t *testing.T) {
	medium := memory.NewStore()
	c := NewCollection[item]("items.json", medium)
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := c.Mutate(ctx, func(items []item) ([]item, error) {
				return append(items, item{ID: fmt.Sprintf("item-%d", n)}), nil
			})
			if err != nil {
				t.Errorf("Mutate() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	items, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(items) != writers {
		t.Fatalf("got %d items, want %d", len(items), writers)
	}
	seen := make(map[string]bool)
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("duplicate item %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestGateway_SeparateDocuments(t *testing.T) {
	medium := memory.NewStore()
	g := NewGateway(medium)
	ctx := context.Background()

	err := g.Decorations().Mutate(ctx, func(items []core.Decoration) ([]core.Decoration, error) {
		return append(items, core.Decoration{ID: "ornament-1", Type: core.TypeOrnament, Scale: 1}), nil
	})
	if err != nil {
		t.Fatalf("Mutate() failed: %v", err)
	}

	blocks, err := g.Blocks().Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("blocks document picked up decorations: %v", blocks)
	}
	if g.Decorations().Name() != DecorationsDocument || g.Blocks().Name() != BlocksDocument {
		t.Error("unexpected document names")
	}
}
