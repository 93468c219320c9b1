package chart

import (
	"errors"
	"testing"
)

func TestLockEvaluationRequiresSignature(t *testing.T) {
	eval := &Evaluation{}

	if err := LockEvaluation(eval); !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
	if eval.Locked {
		t.Fatal("failed lock must not transition state")
	}

	eval.TherapistSignature = "A. Morgan, PT, DPT"
	if err := LockEvaluation(eval); err != nil {
		t.Fatalf("expected lock to succeed: %v", err)
	}
	if !eval.Locked {
		t.Fatal("expected evaluation locked")
	}
}

func TestEvaluationLockFreezesFieldsButNotSignatures(t *testing.T) {
	eval := &Evaluation{TherapistSignature: "A. Morgan, PT, DPT"}
	if err := LockEvaluation(eval); err != nil {
		t.Fatalf("lock failed: %v", err)
	}

	assessment := "changed"
	err := ApplyEvaluationUpdate(eval, EvaluationUpdate{Assessment: &assessment})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if eval.Assessment != "" {
		t.Fatal("locked evaluation mutated")
	}

	SetTherapistSignature(eval, "A. Morgan, PT, DPT | Lic #PT12345")
	SetPhysicianSignature(eval, "R. Okafor, MD")
	if eval.TherapistSignature == "A. Morgan, PT, DPT" || eval.PhysicianSignature == "" {
		t.Fatal("signatures must stay editable while locked")
	}
}

func TestUnlockRestoresMutability(t *testing.T) {
	eval := &Evaluation{TherapistSignature: "A. Morgan, PT, DPT"}
	if err := LockEvaluation(eval); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	UnlockEvaluation(eval)

	assessment := "post-unlock edit"
	if err := ApplyEvaluationUpdate(eval, EvaluationUpdate{Assessment: &assessment}); err != nil {
		t.Fatalf("expected mutability restored after unlock: %v", err)
	}
	if eval.Assessment != "post-unlock edit" {
		t.Fatalf("unexpected assessment %q", eval.Assessment)
	}
}

func TestLockNoteCopiesEvaluationSignature(t *testing.T) {
	note := &ProgressNote{}

	if err := LockNote(note, "J. Smith, PTA"); err != nil {
		t.Fatalf("expected fallback lock to succeed: %v", err)
	}
	if note.TherapistSignature != "J. Smith, PTA" {
		t.Fatalf("expected copied signature, got %q", note.TherapistSignature)
	}
	if !note.Locked {
		t.Fatal("expected note locked")
	}
}

func TestLockNotePrefersOwnSignature(t *testing.T) {
	note := &ProgressNote{TherapistSignature: "T. Chen, PTA-S"}

	if err := LockNote(note, "J. Smith, PTA"); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	if note.TherapistSignature != "T. Chen, PTA-S" {
		t.Fatalf("own signature overwritten: %q", note.TherapistSignature)
	}
}

func TestLockNoteWithoutAnySignature(t *testing.T) {
	note := &ProgressNote{}

	if err := LockNote(note, ""); !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
	if note.Locked || note.TherapistSignature != "" {
		t.Fatalf("failed lock must leave note untouched: %+v", note)
	}
}

func TestNoteLocksAreIndependent(t *testing.T) {
	record := &PatientRecord{Evaluation: &Evaluation{TherapistSignature: "J. Smith, PTA"}}
	first := AddProgressNote(record)
	second := AddProgressNote(record)

	if err := LockNote(first, record.Evaluation.TherapistSignature); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	if second.Locked {
		t.Fatal("locking one note must not lock another")
	}
	if record.Evaluation.Locked {
		t.Fatal("locking a note must not lock the evaluation")
	}

	subjective := "still editable"
	if err := ApplyNoteUpdate(second, NoteUpdate{Subjective: &subjective}); err != nil {
		t.Fatalf("unlocked sibling note must stay editable: %v", err)
	}
}

func TestLockedNoteFreezesEverythingIncludingSignature(t *testing.T) {
	note := &ProgressNote{TherapistSignature: "J. Smith, PTA", Subjective: "original"}
	if err := LockNote(note, ""); err != nil {
		t.Fatalf("lock failed: %v", err)
	}

	subjective := "changed"
	signature := "someone else"
	err := ApplyNoteUpdate(note, NoteUpdate{Subjective: &subjective, TherapistSignature: &signature})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if note.Subjective != "original" || note.TherapistSignature != "J. Smith, PTA" {
		t.Fatalf("locked note mutated: %+v", note)
	}

	UnlockNote(note)
	if err := ApplyNoteUpdate(note, NoteUpdate{Subjective: &subjective}); err != nil {
		t.Fatalf("expected mutability restored after unlock: %v", err)
	}
}

func TestAddProgressNoteDefaults(t *testing.T) {
	record := &PatientRecord{Evaluation: &Evaluation{}}
	note := AddProgressNote(record)

	if note.Locked {
		t.Fatal("new note must start unlocked")
	}
	if note.Date == "" {
		t.Fatal("new note must carry today's date")
	}
	if len(note.LineItems) != 0 || note.TotalMinutes != 0 || note.Units != 0 {
		t.Fatalf("new note must start empty: %+v", note)
	}
	if len(record.ProgressNotes) != 1 {
		t.Fatalf("expected note appended to record, got %d", len(record.ProgressNotes))
	}
}

func TestNotePainScoreParsing(t *testing.T) {
	note := &ProgressNote{}
	pre := "4"
	post := "not a number"
	if err := ApplyNoteUpdate(note, NoteUpdate{PainPre: &pre, PainPost: &post}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if note.PainPre == nil || *note.PainPre != 4 {
		t.Fatalf("expected pain_pre 4, got %v", note.PainPre)
	}
	if note.PainPost != nil {
		t.Fatalf("expected invalid pain_post cleared, got %v", *note.PainPost)
	}
}
