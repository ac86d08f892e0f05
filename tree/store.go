// Package tree is the authoritative set of decorations hung on the tree.
package tree

import (
	"context"
	"errors"
	"slices"
	"time"

	"festive-foliage/core"
	"festive-foliage/metrics"
	"festive-foliage/stores/document"

	"github.com/sirupsen/logrus"
)

type Store struct {
	collection *document.Collection[core.Decoration]
	blocks     core.BlockStore
	notifier   core.Notifier
	now        func() time.Time
}

var _ core.DecorationStore = (*Store)(nil)

// NewStore serves the decorations kept in collection and checks every
// creation against blocks. A nil notifier drops events.
func NewStore(collection *document.Collection[core.Decoration], blocks core.BlockStore, notifier core.Notifier) *Store {
	if notifier == nil {
		notifier = core.NopNotifier{}
	}
	return &Store{
		collection: collection,
		blocks:     blocks,
		notifier:   notifier,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for ids.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) List(ctx context.Context) ([]core.Decoration, error) {
	return s.collection.Load(ctx)
}

// Create places a new decoration. The block list is read before entering the
// decoration write queue, so a block created concurrently may not apply yet.
func (s *Store) Create(ctx context.Context, payload core.NewDecoration, attr core.Attribution) (*core.Decoration, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{
		"type":    payload.Type,
		"ip":      attr.IP,
		"session": attr.Session,
	})

	if s.blocks != nil {
		block, err := s.blocks.Match(ctx, attr, payload.Type)
		if err != nil {
			return nil, err
		}
		if block != nil {
			metrics.CreationsBlocked.WithLabelValues(string(payload.Type)).Inc()
			log.WithField("block_id", block.ID).Warn("Creation rejected by block")
			return nil, core.ErrBlocked
		}
	}

	var created core.Decoration
	err := s.collection.Mutate(ctx, func(items []core.Decoration) ([]core.Decoration, error) {
		created = newDecoration(payload, attr)
		created.ID = core.NextID(string(payload.Type), s.now(), func(id string) bool {
			return slices.ContainsFunc(items, func(d core.Decoration) bool { return d.ID == id })
		})
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}

	metrics.DecorationsCreated.WithLabelValues(string(created.Type)).Inc()
	log.WithField("decoration_id", created.ID).Info("Decoration created")
	s.notifier.Publish("decoration:added", created.Public())
	return &created, nil
}

func newDecoration(payload core.NewDecoration, attr core.Attribution) core.Decoration {
	d := core.Decoration{
		Type:     payload.Type,
		Name:     payload.Name,
		Scale:    1,
		Rotation: 0,
		Data:     payload.Data,
		IP:       attr.IP,
		Session:  attr.Session,
	}
	if payload.Scale != nil {
		d.Scale = *payload.Scale
	}
	if payload.Rotation != nil {
		d.Rotation = *payload.Rotation
	}
	if d.Data == nil {
		d.Data = map[string]any{}
	}
	if payload.PercentX != nil && payload.PercentY != nil {
		d.PercentX = core.Float(*payload.PercentX)
		d.PercentY = core.Float(*payload.PercentY)
	}
	if payload.X != nil && payload.Y != nil {
		d.X = core.Float(*payload.X)
		d.Y = core.Float(*payload.Y)
	}
	return d
}

func (s *Store) Update(ctx context.Context, id string, patch core.Patch) (*core.Decoration, error) {
	if id == "" {
		return nil, core.BadRequest("Missing id")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated core.Decoration
	err := s.collection.Mutate(ctx, func(items []core.Decoration) ([]core.Decoration, error) {
		i := slices.IndexFunc(items, func(d core.Decoration) bool { return d.ID == id })
		if i < 0 {
			return nil, core.ErrNotFound
		}
		patch.Apply(&items[i])
		updated = items[i]
		return items, nil
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			logrus.WithField("decoration_id", id).Warn("Update of unknown decoration")
		}
		return nil, err
	}

	s.notifier.Publish("decoration:updated", updated.Public())
	return &updated, nil
}

// Remove drops the decoration with the given id. Removing an unknown id is
// not an error.
func (s *Store) Remove(ctx context.Context, id string) ([]core.Decoration, error) {
	if id == "" {
		return nil, core.BadRequest("Missing id")
	}

	var remaining []core.Decoration
	removed := false
	err := s.collection.Mutate(ctx, func(items []core.Decoration) ([]core.Decoration, error) {
		n := len(items)
		remaining = slices.DeleteFunc(items, func(d core.Decoration) bool { return d.ID == id })
		removed = len(remaining) < n
		return remaining, nil
	})
	if err != nil {
		return nil, err
	}

	if removed {
		metrics.DecorationsRemoved.Inc()
		logrus.WithField("decoration_id", id).Info("Decoration removed")
		s.notifier.Publish("decoration:removed", map[string]string{"id": id})
	}
	return remaining, nil
}
