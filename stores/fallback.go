package stores

import (
	"context"
	"errors"

	"festive-foliage/core"
	"festive-foliage/metrics"

	"github.com/sirupsen/logrus"
)

// fallbackMedium prefers a remote medium and uses the local one whenever the
// remote cannot serve a request.
type fallbackMedium struct {
	remote     core.Medium
	local      core.Medium
	remoteName string
}

// WithFallback wraps remote so that failed reads and writes go to local.
func WithFallback(remoteName string, remote, local core.Medium) core.Medium {
	return &fallbackMedium{remote: remote, local: local, remoteName: remoteName}
}

func (m *fallbackMedium) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := m.remote.Get(ctx, name)
	if err == nil {
		return data, nil
	}

	log := logrus.WithFields(logrus.Fields{"document": name, "remote": m.remoteName})
	if errors.Is(err, core.ErrDocumentNotFound) {
		log.Debug("Document missing remotely, trying local storage")
	} else {
		log.WithError(err).Warn("Remote read failed, falling back to local storage")
	}
	metrics.MediumFallbacks.WithLabelValues("get").Inc()
	return m.local.Get(ctx, name)
}

func (m *fallbackMedium) Put(ctx context.Context, name string, data []byte) error {
	err := m.remote.Put(ctx, name, data)
	if err == nil {
		return nil
	}

	logrus.WithFields(logrus.Fields{"document": name, "remote": m.remoteName}).
		WithError(err).Warn("Remote write failed, falling back to local storage")
	metrics.MediumFallbacks.WithLabelValues("put").Inc()
	return m.local.Put(ctx, name, data)
}
