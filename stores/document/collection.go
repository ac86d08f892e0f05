package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"festive-foliage/core"
	"festive-foliage/metrics"

	"github.com/sirupsen/logrus"
)

// Collection is a JSON array of T kept as one whole document on a Medium.
// Reads are not serialized against writes; writes are serialized by the
// collection's queue and always re-read the latest snapshot first.
type Collection[T any] struct {
	name   string
	medium core.Medium
	queue  *Queue
}

// NewCollection binds the document name to medium with its own write queue.
func NewCollection[T any](name string, medium core.Medium) *Collection[T] {
	return &Collection[T]{
		name:   name,
		medium: medium,
		queue:  NewQueue(),
	}
}

// Name returns the document name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns the current snapshot. A missing document is created empty.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	items, err := c.read(ctx)
	if errors.Is(err, core.ErrDocumentNotFound) {
		if err := c.create(ctx); err != nil {
			return nil, err
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Mutate runs fn on the latest snapshot inside the write queue and persists
// what it returns. If fn fails nothing is written and its error is returned.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	start := time.Now()
	defer func() {
		metrics.DocumentWriteDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	}()

	release, err := c.queue.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	items, err := c.read(ctx)
	if errors.Is(err, core.ErrDocumentNotFound) {
		items, err = []T{}, nil
	}
	if err != nil {
		return err
	}

	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.write(ctx, next)
}

func (c *Collection[T]) read(ctx context.Context) ([]T, error) {
	log := logrus.WithField("document", c.name)

	data, err := c.medium.Get(ctx, c.name)
	if err != nil {
		if errors.Is(err, core.ErrDocumentNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to read document")
		return nil, core.StorageFault(err)
	}

	items := []T{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		log.WithError(err).Error("Failed to decode document")
		return nil, core.StorageFault(err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	log := logrus.WithFields(logrus.Fields{
		"document": c.name,
		"items":    len(items),
	})

	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		log.WithError(err).Error("Failed to encode document")
		return core.StorageFault(err)
	}

	if err := c.medium.Put(ctx, c.name, data); err != nil {
		metrics.DocumentWrites.WithLabelValues(c.name, "error").Inc()
		log.WithError(err).Error("Failed to write document")
		return core.StorageFault(err)
	}

	metrics.DocumentWrites.WithLabelValues(c.name, "ok").Inc()
	log.Debug("Document written")
	return nil
}

// create writes an empty document unless a writer got there first.
func (c *Collection[T]) create(ctx context.Context) error {
	release, err := c.queue.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	_, err = c.medium.Get(ctx, c.name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, core.ErrDocumentNotFound) {
		return core.StorageFault(err)
	}

	logrus.WithField("document", c.name).Info("Document does not exist, creating an empty one")
	return c.write(ctx, []T{})
}
