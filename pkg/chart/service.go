package chart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ptaemr/platform/pkg/common/logger"
	"github.com/ptaemr/platform/pkg/cpt"
)

// Snapshotter receives the full record collection after every committed
// mutation. Backends live in pkg/snapshot.
type Snapshotter interface {
	Save(ctx context.Context, records []*PatientRecord) error
}

// EventPublisher emits a mutation event after every committed change.
// *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

const eventSource = "chart-service"

// Service wires the record store, the billing calculator, and the external
// persistence boundary together. Core mutations commit in memory first; the
// snapshot write and the event publish follow and are logged rather than
// rolled back on failure, since persistence is an external collaborator.
type Service struct {
	store     *Store
	calc      *Calculator
	snapshots Snapshotter
	events    EventPublisher
}

func NewService(store *Store, calc *Calculator, snapshots Snapshotter, events EventPublisher) *Service {
	return &Service{store: store, calc: calc, snapshots: snapshots, events: events}
}

func (s *Service) Store() *Store {
	return s.store
}

func (s *Service) Catalog() cpt.Catalog {
	return s.calc.Catalog()
}

func (s *Service) ListPatients(query string, serviceLine string) []*PatientRecord {
	if query == "" && serviceLine == "" {
		return s.store.List()
	}
	return s.store.Search(query, serviceLine)
}

func (s *Service) GetPatient(id uuid.UUID) (*PatientRecord, error) {
	return s.store.GetByID(id)
}

func (s *Service) UpdateEvaluation(ctx context.Context, id uuid.UUID, upd EvaluationUpdate, actor string) (*Evaluation, error) {
	record, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := ApplyEvaluationUpdate(record.Evaluation, upd); err != nil {
		return nil, err
	}
	s.commit(ctx, actor, "evaluation_updated", record, nil)
	return record.Evaluation, nil
}

func (s *Service) SetSignature(ctx context.Context, id uuid.UUID, role string, value string, actor string) error {
	record, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	switch role {
	case "therapist":
		SetTherapistSignature(record.Evaluation, value)
	case "physician":
		SetPhysicianSignature(record.Evaluation, value)
	default:
		return fmt.Errorf("%w: unknown signature role %q", ErrInvalidData, role)
	}
	s.commit(ctx, actor, "evaluation_signature_set", record, map[string]interface{}{"role": role})
	return nil
}

func (s *Service) LockEvaluation(ctx context.Context, id uuid.UUID, actor string) error {
	record, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if err := LockEvaluation(record.Evaluation); err != nil {
		return err
	}
	s.commit(ctx, actor, "evaluation_locked", record, nil)
	return nil
}

func (s *Service) UnlockEvaluation(ctx context.Context, id uuid.UUID, actor string) error {
	record, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	UnlockEvaluation(record.Evaluation)
	s.commit(ctx, actor, "evaluation_unlocked", record, nil)
	return nil
}

func (s *Service) SetGoalStatus(ctx context.Context, id uuid.UUID, seq GoalSequence, index int, status GoalStatus, actor string) error {
	record, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if err := SetGoalStatus(record.Evaluation, seq, index, status); err != nil {
		return err
	}
	s.commit(ctx, actor, "goal_status_set", record, map[string]interface{}{"seq": string(seq), "index": index, "status": string(status)})
	return nil
}

func (s *Service) EditGoal(ctx context.Context, id uuid.UUID, seq GoalSequence, index int, text string, targetDate string, actor string) error {
	record, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if err := EditGoalText(record.Evaluation, seq, index, text, targetDate); err != nil {
		return err
	}
	s.commit(ctx, actor, "goal_edited", record, map[string]interface{}{"seq": string(seq), "index": index})
	return nil
}

func (s *Service) AddGoal(ctx context.Context, id uuid.UUID, seq GoalSequence, text string, targetDate string, status GoalStatus, actor string) error {
	record, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if err := AddGoal(record.Evaluation, seq, text, targetDate, status); err != nil {
		return err
	}
	s.commit(ctx, actor, "goal_added", record, map[string]interface{}{"seq": string(seq)})
	return nil
}

func (s *Service) RemoveGoal(ctx context.Context, id uuid.UUID, seq GoalSequence, index int, actor string) error {
	record, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if err := RemoveGoal(record.Evaluation, seq, index); err != nil {
		return err
	}
	s.commit(ctx, actor, "goal_removed", record, map[string]interface{}{"seq": string(seq), "index": index})
	return nil
}

func (s *Service) AddNote(ctx context.Context, id uuid.UUID, actor string) (*ProgressNote, error) {
	record, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	note := AddProgressNote(record)
	s.commit(ctx, actor, "note_added", record, map[string]interface{}{"note_index": len(record.ProgressNotes) - 1})
	return note, nil
}

func (s *Service) UpdateNote(ctx context.Context, id uuid.UUID, noteIndex int, upd NoteUpdate, actor string) (*ProgressNote, error) {
	record, note, err := s.noteAt(id, noteIndex)
	if err != nil {
		return nil, err
	}
	if err := ApplyNoteUpdate(note, upd); err != nil {
		return nil, err
	}
	s.commit(ctx, actor, "note_updated", record, map[string]interface{}{"note_index": noteIndex})
	return note, nil
}

func (s *Service) AddLineItem(ctx context.Context, id uuid.UUID, noteIndex int, code string, minutes string, modifiers string, actor string) (*ProgressNote, error) {
	record, note, err := s.noteAt(id, noteIndex)
	if err != nil {
		return nil, err
	}
	if err := s.calc.AddLineItem(note, code, minutes, modifiers); err != nil {
		return nil, err
	}
	s.commit(ctx, actor, "charge_added", record, map[string]interface{}{"note_index": noteIndex, "code": code})
	return note, nil
}

func (s *Service) UpdateLineItem(ctx context.Context, id uuid.UUID, noteIndex int, itemIndex int, code *string, minutes *string, actor string) (*ProgressNote, error) {
	record, note, err := s.noteAt(id, noteIndex)
	if err != nil {
		return nil, err
	}
	if err := s.calc.UpdateLineItem(note, itemIndex, code, minutes); err != nil {
		return nil, err
	}
	s.commit(ctx, actor, "charge_updated", record, map[string]interface{}{"note_index": noteIndex, "item_index": itemIndex})
	return note, nil
}

func (s *Service) RemoveLineItem(ctx context.Context, id uuid.UUID, noteIndex int, itemIndex int, actor string) (*ProgressNote, error) {
	record, note, err := s.noteAt(id, noteIndex)
	if err != nil {
		return nil, err
	}
	if err := s.calc.RemoveLineItem(note, itemIndex); err != nil {
		return nil, err
	}
	s.commit(ctx, actor, "charge_removed", record, map[string]interface{}{"note_index": noteIndex, "item_index": itemIndex})
	return note, nil
}

func (s *Service) LockNote(ctx context.Context, id uuid.UUID, noteIndex int, actor string) error {
	record, note, err := s.noteAt(id, noteIndex)
	if err != nil {
		return err
	}
	if err := LockNote(note, record.Evaluation.TherapistSignature); err != nil {
		return err
	}
	s.commit(ctx, actor, "note_locked", record, map[string]interface{}{"note_index": noteIndex})
	return nil
}

func (s *Service) UnlockNote(ctx context.Context, id uuid.UUID, noteIndex int, actor string) error {
	record, note, err := s.noteAt(id, noteIndex)
	if err != nil {
		return err
	}
	UnlockNote(note)
	s.commit(ctx, actor, "note_unlocked", record, map[string]interface{}{"note_index": noteIndex})
	return nil
}

func (s *Service) noteAt(id uuid.UUID, noteIndex int) (*PatientRecord, *ProgressNote, error) {
	record, err := s.store.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	note, err := NoteAt(record, noteIndex)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: note %d of %d", ErrIndexOutOfRange, noteIndex, len(record.ProgressNotes))
	}
	return record, note, nil
}

// commit runs the external-boundary side of a successful mutation: persist the
// full collection, then announce the change.
func (s *Service) commit(ctx context.Context, actor string, action string, record *PatientRecord, extra map[string]interface{}) {
	if actor == "" {
		actor = "system"
	}

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, s.store.List()); err != nil {
			logger.Log.WithError(err).WithField("action", action).Error("failed to persist chart snapshot")
		}
	}

	if s.events != nil {
		data := map[string]interface{}{
			"record_id": record.ID.String(),
			"mrn":       record.MRN,
			"actor":     actor,
		}
		for k, v := range extra {
			data[k] = v
		}
		if err := s.events.PublishEvent(ctx, action, eventSource, data); err != nil {
			logger.Log.WithError(err).WithField("action", action).Error("failed to publish chart event")
		}
	}
}
