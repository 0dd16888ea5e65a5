package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileSnapshotStore persists the catalog as a JSON file, the closest analog
// of the original's profile-local slot. The file is overwritten in full on
// every save.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

func (s *FileSnapshotStore) Save(ctx context.Context, products []Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileSnapshotStore) Load(ctx context.Context) ([]Product, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// Missing or unreadable slot is the same as empty.
		return nil, false, nil
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		// Corrupt payload falls back to the default catalog.
		return nil, false, nil
	}
	return products, true, nil
}
