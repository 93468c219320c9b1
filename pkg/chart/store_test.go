package chart

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func testRecord(first, last, mrn, serviceLine string) *PatientRecord {
	return &PatientRecord{
		MRN:         mrn,
		FirstName:   first,
		LastName:    last,
		ServiceLine: serviceLine,
		Evaluation:  &Evaluation{},
	}
}

func TestLoadRejectsRecordWithoutEvaluation(t *testing.T) {
	store := NewStore()
	records := []*PatientRecord{
		testRecord("Dana", "Whitfield", "MRN-1", "Ortho"),
		{MRN: "MRN-2", FirstName: "Marcus", LastName: "Ellison"},
	}

	err := store.Load(records)
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestLoadAssignsIDsAndRecomputesDerived(t *testing.T) {
	store := NewStore()
	record := testRecord("Dana", "Whitfield", "MRN-1", "Ortho")
	record.ProgressNotes = []*ProgressNote{
		{
			LineItems:    []CptLineItem{{Code: "97110", Minutes: 30}, {Code: "97112", Minutes: 20}},
			TotalMinutes: 999, // stale
			Units:        99,
		},
	}

	if err := store.Load([]*PatientRecord{record}); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	got, err := store.Get(0)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID == uuid.Nil {
		t.Fatal("expected id assigned on load")
	}
	note := got.ProgressNotes[0]
	if note.TotalMinutes != 50 || note.Units != 3 {
		t.Fatalf("expected derived fields recomputed, got %d / %d", note.TotalMinutes, note.Units)
	}
}

func TestGetOutOfRange(t *testing.T) {
	store := NewStore()
	if err := store.Load([]*PatientRecord{testRecord("Dana", "Whitfield", "MRN-1", "Ortho")}); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if _, err := store.Get(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := store.Get(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := store.GetByID(uuid.New()); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange for unknown id, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	store := NewStore()
	records := []*PatientRecord{
		testRecord("Dana", "Whitfield", "MRN-100231", "Ortho"),
		testRecord("Marcus", "Ellison", "MRN-100418", "Neuro"),
		testRecord("Pearl", "Nakamura", "MRN-100502", "Geriatric"),
	}
	if err := store.Load(records); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	byName := store.Search("elli", "")
	if len(byName) != 1 || byName[0].LastName != "Ellison" {
		t.Fatalf("unexpected name search result: %+v", byName)
	}

	byMRN := store.Search("100502", "")
	if len(byMRN) != 1 || byMRN[0].LastName != "Nakamura" {
		t.Fatalf("unexpected mrn search result: %+v", byMRN)
	}

	byService := store.Search("", "Ortho")
	if len(byService) != 1 || byService[0].LastName != "Whitfield" {
		t.Fatalf("unexpected service filter result: %+v", byService)
	}

	all := store.Search("", "")
	if len(all) != 3 {
		t.Fatalf("expected all records, got %d", len(all))
	}
	if all[0].LastName != "Ellison" {
		t.Fatalf("expected results sorted by last name, got %q first", all[0].LastName)
	}
}

func TestLoadReplacesCollection(t *testing.T) {
	store := NewStore()
	if err := store.Load([]*PatientRecord{testRecord("Dana", "Whitfield", "MRN-1", "Ortho")}); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := store.Load([]*PatientRecord{
		testRecord("Marcus", "Ellison", "MRN-2", "Neuro"),
		testRecord("Pearl", "Nakamura", "MRN-3", "Geriatric"),
	}); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if store.Len() != 2 {
		t.Fatalf("expected reload to replace collection, got %d records", store.Len())
	}
	if _, err := store.GetByID(uuid.Nil); err == nil {
		t.Fatal("expected old references to be unreachable")
	}
}
