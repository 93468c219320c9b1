// Package audit stores the trail of chart mutations. Entries arrive as kafka
// events from chart-service; the core itself only carries the boolean lock
// flag, so this trail is observational, not authoritative.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Entry struct {
	ID       int64                  `json:"id"`
	EventID  string                 `json:"event_id"`
	Actor    string                 `json:"actor"`
	Action   string                 `json:"action"`
	RecordID string                 `json:"record_id"`
	Payload  map[string]interface{} `json:"payload,omitempty"`
	At       time.Time              `json:"at"`
}

type entryModel struct {
	ID       int64          `gorm:"primaryKey;column:id"`
	EventID  string         `gorm:"column:event_id;uniqueIndex"`
	Actor    string         `gorm:"column:actor"`
	Action   string         `gorm:"column:action;index"`
	RecordID string         `gorm:"column:record_id;index"`
	Payload  datatypes.JSON `gorm:"column:payload"`
	At       time.Time      `gorm:"column:at;index"`
}

func (entryModel) TableName() string { return "chart_audit_logs" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&entryModel{})
}

func (r *Repository) Record(ctx context.Context, entry Entry) error {
	row := &entryModel{
		EventID:  entry.EventID,
		Actor:    entry.Actor,
		Action:   entry.Action,
		RecordID: entry.RecordID,
		At:       entry.At,
	}
	if entry.Payload != nil {
		if data, err := json.Marshal(entry.Payload); err == nil {
			row.Payload = datatypes.JSON(data)
		}
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) List(ctx context.Context, recordID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := r.db.WithContext(ctx).Order("at DESC").Limit(limit)
	if recordID != "" {
		query = query.Where("record_id = ?", recordID)
	}
	var rows []entryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry := Entry{
			ID:       row.ID,
			EventID:  row.EventID,
			Actor:    row.Actor,
			Action:   row.Action,
			RecordID: row.RecordID,
			At:       row.At,
		}
		if len(row.Payload) > 0 {
			var payload map[string]interface{}
			_ = json.Unmarshal(row.Payload, &payload)
			entry.Payload = payload
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
