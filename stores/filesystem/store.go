package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"festive-foliage/core"

	"github.com/sirupsen/logrus"
)

type fsStore struct {
	basePath string
}

// NewStore creates a new filesystem-based store rooted at basePath.
func NewStore(basePath string) *fsStore {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		logrus.WithError(err).WithField("base_path", basePath).Fatal("failed to create base directory")
	}
	return &fsStore{basePath: basePath}
}

// documentPath only accepts bare file names so that a document can never
// point outside basePath.
func (s *fsStore) documentPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid document name %q", name)
	}
	return filepath.Join(s.basePath, name), nil
}

func (s *fsStore) Get(ctx context.Context, name string) ([]byte, error) {
	filePath, err := s.documentPath(name)
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{"document": name, "file_path": filePath})

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Document file does not exist")
			return nil, fmt.Errorf("%w: %s", core.ErrDocumentNotFound, name)
		}
		log.WithError(err).Error("Failed to read document file")
		return nil, err
	}
	return data, nil
}

// Put replaces the document through a temp file and a rename, so a reader
// never sees a half-written file.
func (s *fsStore) Put(ctx context.Context, name string, data []byte) error {
	filePath, err := s.documentPath(name)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{"document": name, "file_path": filePath})

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		log.WithError(err).Error("Failed to create base directory")
		return err
	}

	tmp, err := os.CreateTemp(s.basePath, name+".*.tmp")
	if err != nil {
		log.WithError(err).Error("Failed to create temp file")
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		log.WithError(err).Error("Failed to write temp file")
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		log.WithError(err).Error("Failed to replace document file")
		return err
	}

	log.WithField("data_length", len(data)).Debug("Document written to disk")
	return nil
}
