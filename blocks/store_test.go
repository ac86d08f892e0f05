package blocks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"festive-foliage/core"
	"festive-foliage/stores/document"
	"festive-foliage/stores/memory"
)

type recordingNotifier struct {
	mu       sync.Mutex
	events   []string
	payloads []any
}

func (n *recordingNotifier) Publish(event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	n.payloads = append(n.payloads, payload)
}

func newTestStore(t *testing.T) (*Store, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	gateway := document.NewGateway(memory.NewStore())
	store := NewStore(gateway.Blocks(), notifier).WithClock(func() time.Time {
		return time.UnixMilli(1700000000000)
	})
	return store, notifier
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	store, notifier := newTestStore(t)
	ctx := context.Background()

	block, err := store.Create(ctx, core.NewBlock{IP: "1.2.3.4", Reason: "spam"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if block.ID != "block-1700000000000" {
		t.Errorf("ID = %q, want block-1700000000000", block.ID)
	}
	if !block.BlockedAt.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("BlockedAt = %v", block.BlockedAt)
	}

	second, err := store.Create(ctx, core.NewBlock{Session: "s-1"})
	if err != nil {
		t.Fatalf("second Create() failed: %v", err)
	}
	if second.ID == block.ID {
		t.Errorf("duplicate block id %q", second.ID)
	}

	if len(notifier.events) != 2 || notifier.events[0] != "block:added" {
		t.Errorf("events = %v", notifier.events)
	}
}

func TestCreate_EventCarriesOnlyID(t *testing.T) {
	store, notifier := newTestStore(t)

	block, err := store.Create(context.Background(), core.NewBlock{IP: "1.2.3.4", Session: "s-1-abc", Reason: "spam"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if len(notifier.payloads) != 1 {
		t.Fatalf("got %d events, want 1", len(notifier.payloads))
	}
	payload, ok := notifier.payloads[0].(map[string]string)
	if !ok {
		t.Fatalf("block:added payload is %T, want map[string]string", notifier.payloads[0])
	}
	if len(payload) != 1 || payload["id"] != block.ID {
		t.Errorf("block:added payload = %v, want only id %q", payload, block.ID)
	}
}

func TestCreate_MissingIdentity(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Create(context.Background(), core.NewBlock{Reason: "spam"})
	if !errors.Is(err, core.ErrBadRequest) {
		t.Errorf("Create() error = %v, want ErrBadRequest", err)
	}

	list, _ := store.List(context.Background())
	if len(list) != 0 {
		t.Errorf("rejected block was stored: %v", list)
	}
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	block, _ := store.Create(ctx, core.NewBlock{IP: "1.2.3.4"})

	remaining, err := store.Remove(ctx, block.ID)
	if err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Remove() left %v", remaining)
	}

	remaining, err = store.Remove(ctx, block.ID)
	if err != nil {
		t.Fatalf("second Remove() failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("second Remove() = %v", remaining)
	}
}

func TestMatch(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Create(ctx, core.NewBlock{IP: "1.2.3.4", Types: []core.DecorationType{core.TypeImage}})

	block, err := store.Match(ctx, core.Attribution{IP: "1.2.3.4"}, core.TypeImage)
	if err != nil {
		t.Fatalf("Match() failed: %v", err)
	}
	if block == nil {
		t.Fatal("Match() found no block for a scoped type")
	}

	block, err = store.Match(ctx, core.Attribution{IP: "1.2.3.4"}, core.TypeOrnament)
	if err != nil {
		t.Fatalf("Match() failed: %v", err)
	}
	if block != nil {
		t.Errorf("Match() = %+v for an unscoped type", block)
	}
}
