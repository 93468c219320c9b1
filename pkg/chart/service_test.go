package chart

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ptaemr/platform/pkg/common/logger"
	"github.com/ptaemr/platform/pkg/cpt"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type recordingSnapshotter struct {
	saves int
}

func (r *recordingSnapshotter) Save(ctx context.Context, records []*PatientRecord) error {
	r.saves++
	return nil
}

type recordingPublisher struct {
	events []string
	data   []map[string]interface{}
}

func (r *recordingPublisher) PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error {
	r.events = append(r.events, eventType)
	r.data = append(r.data, data)
	return nil
}

func testService(t *testing.T, records ...*PatientRecord) (*Service, *recordingSnapshotter, *recordingPublisher) {
	t.Helper()
	store := NewStore()
	if err := store.Load(records); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	snaps := &recordingSnapshotter{}
	events := &recordingPublisher{}
	return NewService(store, NewCalculator(cpt.DefaultCatalog()), snaps, events), snaps, events
}

func TestServiceCommitsAfterMutation(t *testing.T) {
	record := testRecord("Dana", "Whitfield", "MRN-1", "Ortho")
	service, snaps, events := testService(t, record)
	ctx := context.Background()

	if _, err := service.AddNote(ctx, record.ID, "student1"); err != nil {
		t.Fatalf("add note failed: %v", err)
	}
	if _, err := service.AddLineItem(ctx, record.ID, 0, "97110", "30", "", "student1"); err != nil {
		t.Fatalf("add line item failed: %v", err)
	}

	if snaps.saves != 2 {
		t.Fatalf("expected a snapshot per mutation, got %d", snaps.saves)
	}
	if len(events.events) != 2 || events.events[1] != "charge_added" {
		t.Fatalf("unexpected events: %v", events.events)
	}
	if events.data[1]["actor"] != "student1" {
		t.Fatalf("expected actor on event, got %v", events.data[1]["actor"])
	}
}

func TestServiceDoesNotCommitFailedMutation(t *testing.T) {
	record := testRecord("Dana", "Whitfield", "MRN-1", "Ortho")
	record.ProgressNotes = []*ProgressNote{{TherapistSignature: "J. Smith, PTA", Locked: true}}
	service, snaps, events := testService(t, record)
	ctx := context.Background()

	_, err := service.AddLineItem(ctx, record.ID, 0, "97110", "30", "", "student1")
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if snaps.saves != 0 || len(events.events) != 0 {
		t.Fatalf("failed mutation must not persist or publish: saves=%d events=%v", snaps.saves, events.events)
	}
}

func TestServiceLockNoteUsesEvaluationFallback(t *testing.T) {
	record := testRecord("Dana", "Whitfield", "MRN-1", "Ortho")
	record.Evaluation.TherapistSignature = "J. Smith, PTA"
	record.ProgressNotes = []*ProgressNote{{}}
	service, _, events := testService(t, record)
	ctx := context.Background()

	if err := service.LockNote(ctx, record.ID, 0, "instructor"); err != nil {
		t.Fatalf("lock note failed: %v", err)
	}

	note := record.ProgressNotes[0]
	if !note.Locked || note.TherapistSignature != "J. Smith, PTA" {
		t.Fatalf("expected fallback signature and locked note: %+v", note)
	}
	if len(events.events) != 1 || events.events[0] != "note_locked" {
		t.Fatalf("unexpected events: %v", events.events)
	}
}

func TestServiceNoteIndexErrors(t *testing.T) {
	record := testRecord("Dana", "Whitfield", "MRN-1", "Ortho")
	service, _, _ := testService(t, record)
	ctx := context.Background()

	if err := service.LockNote(ctx, record.ID, 0, ""); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestServiceSignatureRoles(t *testing.T) {
	record := testRecord("Dana", "Whitfield", "MRN-1", "Ortho")
	service, _, _ := testService(t, record)
	ctx := context.Background()

	if err := service.SetSignature(ctx, record.ID, "therapist", "J. Smith, PTA", ""); err != nil {
		t.Fatalf("set therapist signature failed: %v", err)
	}
	if err := service.SetSignature(ctx, record.ID, "physician", "R. Okafor, MD", ""); err != nil {
		t.Fatalf("set physician signature failed: %v", err)
	}
	if err := service.SetSignature(ctx, record.ID, "nurse", "x", ""); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData for unknown role, got %v", err)
	}

	if record.Evaluation.TherapistSignature != "J. Smith, PTA" || record.Evaluation.PhysicianSignature != "R. Okafor, MD" {
		t.Fatalf("signatures not applied: %+v", record.Evaluation)
	}
}
