package snapshot

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ptaemr/platform/pkg/chart"
)

// FileStore keeps the record set in a single JSON file, written atomically via
// a temp file and rename.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

func (s *FileStore) Save(ctx context.Context, records []*chart.PatientRecord) error {
	data, err := marshalRecords(records)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load returns (nil, nil) when no snapshot exists yet; the caller falls back
// to seed data.
func (s *FileStore) Load(ctx context.Context) ([]*chart.PatientRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return unmarshalRecords(data)
}
