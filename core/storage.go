package core

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

type (
	// Medium stores whole named documents. Implementations return
	// ErrDocumentNotFound from Get when the document does not exist.
	Medium interface {
		Get(ctx context.Context, name string) ([]byte, error)
		Put(ctx context.Context, name string, data []byte) error
	}

	// Notifier is told about every committed change.
	Notifier interface {
		Publish(event string, payload any)
	}

	// NopNotifier drops every event.
	NopNotifier struct{}
)

func (NopNotifier) Publish(string, any) {}

// NextID returns "{prefix}-{unix ms}" for now, moving forward one millisecond
// at a time until taken reports the id as free.
func NextID(prefix string, now time.Time, taken func(id string) bool) string {
	ms := ulid.Timestamp(now)
	for {
		id := fmt.Sprintf("%s-%d", prefix, ms)
		if taken == nil || !taken(id) {
			return id
		}
		ms++
	}
}
