package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/ptaemr/platform/pkg/chart"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotModel struct {
	ID        int            `gorm:"primaryKey;column:id"`
	Data      datatypes.JSON `gorm:"column:data"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (snapshotModel) TableName() string { return "chart_snapshots" }

// PostgresStore upserts the whole record set into one JSON row. One row is
// enough: the core owns a single editing session's collection.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&snapshotModel{}); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Save(ctx context.Context, records []*chart.PatientRecord) error {
	data, err := marshalRecords(records)
	if err != nil {
		return err
	}
	row := &snapshotModel{
		ID:        1,
		Data:      datatypes.JSON(data),
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(row).Error
}

func (s *PostgresStore) Load(ctx context.Context) ([]*chart.PatientRecord, error) {
	var row snapshotModel
	if err := s.db.WithContext(ctx).First(&row, "id = ?", 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return unmarshalRecords(row.Data)
}
