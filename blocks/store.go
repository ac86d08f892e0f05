// Package blocks keeps the moderation block list.
package blocks

import (
	"context"
	"slices"
	"time"

	"festive-foliage/core"
	"festive-foliage/stores/document"

	"github.com/sirupsen/logrus"
)

type Store struct {
	collection *document.Collection[core.Block]
	notifier   core.Notifier
	now        func() time.Time
}

var _ core.BlockStore = (*Store)(nil)

// NewStore serves the block list kept in collection. A nil notifier drops events.
func NewStore(collection *document.Collection[core.Block], notifier core.Notifier) *Store {
	if notifier == nil {
		notifier = core.NopNotifier{}
	}
	return &Store{
		collection: collection,
		notifier:   notifier,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for ids and blockedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) List(ctx context.Context) ([]core.Block, error) {
	return s.collection.Load(ctx)
}

func (s *Store) Create(ctx context.Context, payload core.NewBlock) (*core.Block, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	var created core.Block
	err := s.collection.Mutate(ctx, func(items []core.Block) ([]core.Block, error) {
		now := s.now()
		created = core.Block{
			ID: core.NextID("block", now, func(id string) bool {
				return slices.ContainsFunc(items, func(b core.Block) bool { return b.ID == id })
			}),
			IP:        payload.IP,
			Session:   payload.Session,
			Reason:    payload.Reason,
			Types:     payload.Types,
			BlockedAt: now.UTC(),
		}
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"block_id": created.ID,
		"ip":       created.IP,
		"session":  created.Session,
		"types":    created.Types,
	}).Info("Block created")
	s.notifier.Publish("block:added", map[string]string{"id": created.ID})
	return &created, nil
}

// Remove drops the block with the given id. Removing an unknown id is not an error.
func (s *Store) Remove(ctx context.Context, id string) ([]core.Block, error) {
	var remaining []core.Block
	err := s.collection.Mutate(ctx, func(items []core.Block) ([]core.Block, error) {
		remaining = slices.DeleteFunc(items, func(b core.Block) bool { return b.ID == id })
		return remaining, nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("block_id", id).Info("Block removed")
	s.notifier.Publish("block:removed", map[string]string{"id": id})
	return remaining, nil
}

func (s *Store) Match(ctx context.Context, attr core.Attribution, t core.DecorationType) (*core.Block, error) {
	items, err := s.collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range items {
		if b.Matches(attr, t) {
			return &b, nil
		}
	}
	return nil, nil
}
