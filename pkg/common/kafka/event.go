package kafka

import "time"

// Event is the envelope every platform message travels in. For chart events the
// type is the mutation action (e.g. "note_locked") and Data carries the affected
// record, note, and actor identifiers.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}
