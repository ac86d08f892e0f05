package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"festive-foliage/core"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at dataSourceName.
func NewStore(dataSourceName string) *sqliteStore {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}

	docTableStmt := `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at DATETIME
	);`
	if _, err = db.Exec(docTableStmt); err != nil {
		log.Fatalf("failed to create documents table: %v", err)
	}

	return &sqliteStore{db}
}

func (s *sqliteStore) Get(ctx context.Context, name string) ([]byte, error) {
	log := logrus.WithField("document", name)

	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM documents WHERE name = ?", name).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debug("Document row does not exist")
			return nil, fmt.Errorf("%w: %s", core.ErrDocumentNotFound, name)
		}
		log.WithError(err).Error("Failed to retrieve document")
		return nil, err
	}
	return data, nil
}

func (s *sqliteStore) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO documents (name, data, updated_at) VALUES (?, ?, ?) ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at",
		name, data, time.Now())
	if err != nil {
		logrus.WithError(err).WithField("document", name).Error("Failed to save document")
		return err
	}
	return nil
}

// Close releases the database handle.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
