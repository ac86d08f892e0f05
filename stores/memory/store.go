package memory

import (
	"context"
	"fmt"
	"sync"

	"festive-foliage/core"

	"github.com/sirupsen/logrus"
)

// memStore keeps documents in process memory. Everything is lost on restart.
type memStore struct {
	mu        sync.RWMutex
	documents map[string][]byte
}

// NewStore creates a new in-memory store.
func NewStore() *memStore {
	return &memStore{documents: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.documents[name]
	s.mu.RUnlock()

	if !ok {
		logrus.WithField("document", name).Debug("Document not found in memory")
		return nil, fmt.Errorf("%w: %s", core.ErrDocumentNotFound, name)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memStore) Put(ctx context.Context, name string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	s.documents[name] = stored
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"document":    name,
		"data_length": len(data),
	}).Debug("Document stored in memory")
	return nil
}
