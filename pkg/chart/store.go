package chart

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store owns the in-memory patient record collection for an editing session.
// It hands out mutable references; callers mutate through them and the service
// layer persists the full collection after each committed change. Load
// invalidates every previously issued reference.
type Store struct {
	mu      sync.RWMutex
	records []*PatientRecord
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the entire collection. Every record must carry an evaluation;
// a missing progress-note list defaults to empty. Derived billing fields are
// recomputed so the line-item invariant holds regardless of what the seed or
// snapshot contained.
func (s *Store) Load(records []*PatientRecord) error {
	for i, record := range records {
		if record == nil || record.Evaluation == nil {
			return fmt.Errorf("%w: record %d is missing an evaluation", ErrInvalidData, i)
		}
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		if record.ProgressNotes == nil {
			record.ProgressNotes = []*ProgressNote{}
		}
		for _, note := range record.ProgressNotes {
			if note.LineItems == nil {
				note.LineItems = []CptLineItem{}
			}
			Recompute(note)
		}
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Get(index int) (*PatientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.records) {
		return nil, fmt.Errorf("%w: record %d of %d", ErrIndexOutOfRange, index, len(s.records))
	}
	return s.records[index], nil
}

func (s *Store) GetByID(id uuid.UUID) (*PatientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, fmt.Errorf("%w: no record with id %s", ErrIndexOutOfRange, id)
}

func (s *Store) List() []*PatientRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*PatientRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Search matches a case-insensitive substring against name, MRN, and account
// number, optionally filtered by service line. Results sort by last name.
func (s *Store) Search(query string, serviceLine string) []*PatientRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	serviceLine = strings.TrimSpace(serviceLine)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*PatientRecord
	for _, record := range s.records {
		if serviceLine != "" && !strings.EqualFold(record.ServiceLine, serviceLine) {
			continue
		}
		if query != "" && !matchesQuery(record, query) {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out
}

func matchesQuery(record *PatientRecord, query string) bool {
	for _, field := range []string{record.FirstName, record.LastName, record.MRN, record.AccountNumber} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
