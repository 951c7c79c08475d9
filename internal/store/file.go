package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/nikh2951/health-link/pkg/errors"
	"github.com/nikh2951/health-link/pkg/logger"
)

// FileStore persists one JSON document per key under a directory. Writes
// go through a temp file and rename so a record is either the old value or
// the new one, never a torn write.
type FileStore struct {
	dir    string
	logger *logger.Logger
}

func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStore{dir: dir, logger: log}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Put(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Internal(err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return apperrors.Internal(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Internal(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.Internal(err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Internal(err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Internal(err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn(apperrors.StorageDecode(key, err), "discarding unreadable record", "key", key)
		return false, nil
	}
	return true, nil
}
