// Package snapshot persists the full chart record collection after every
// committed mutation. The format is the plain JSON value tree of the record
// set; backends differ only in where the bytes land.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ptaemr/platform/pkg/chart"
	"github.com/ptaemr/platform/pkg/common/config"
	"github.com/ptaemr/platform/pkg/common/database"
)

type Store interface {
	Save(ctx context.Context, records []*chart.PatientRecord) error
	Load(ctx context.Context) ([]*chart.PatientRecord, error)
}

// New selects a backend from SNAPSHOT_BACKEND: redis, postgres, or file.
func New(cfg *config.Config) (Store, error) {
	switch cfg.SnapshotBackend {
	case "redis":
		return NewRedisStore(database.GetRedis(), cfg.SnapshotRedisKey), nil
	case "postgres":
		db, err := database.GetPostgres()
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db)
	case "file":
		return NewFileStore(cfg.SnapshotFilePath), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}

func marshalRecords(records []*chart.PatientRecord) ([]byte, error) {
	if records == nil {
		records = []*chart.PatientRecord{}
	}
	return json.Marshal(records)
}

func unmarshalRecords(data []byte) ([]*chart.PatientRecord, error) {
	var records []*chart.PatientRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt chart snapshot: %w", err)
	}
	return records, nil
}
