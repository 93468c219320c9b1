package chart

import "time"

// NoteUpdate is a partial update to a progress note's editable fields. Pain
// scores arrive as raw text; blank or non-numeric input clears them.
type NoteUpdate struct {
	Date               *string `json:"date,omitempty"`
	Subjective         *string `json:"subjective,omitempty"`
	Objective          *string `json:"objective,omitempty"`
	Assessment         *string `json:"assessment,omitempty"`
	Plan               *string `json:"plan,omitempty"`
	PainPre            *string `json:"pain_pre,omitempty"`
	PainPost           *string `json:"pain_post,omitempty"`
	TherapistSignature *string `json:"therapist_signature,omitempty"`
}

// AddProgressNote appends a fresh note dated today: empty narratives, no line
// items, unlocked.
func AddProgressNote(record *PatientRecord) *ProgressNote {
	note := &ProgressNote{
		Date:      time.Now().UTC().Format("2006-01-02"),
		LineItems: []CptLineItem{},
	}
	record.ProgressNotes = append(record.ProgressNotes, note)
	return note
}

// ApplyNoteUpdate mutates note fields while the note is in Draft. Unlike the
// evaluation, a locked note freezes its signature too; only unlock is
// permitted then.
func ApplyNoteUpdate(note *ProgressNote, upd NoteUpdate) error {
	if note.Locked {
		return ErrLocked
	}

	setString(&note.Date, upd.Date)
	setString(&note.Subjective, upd.Subjective)
	setString(&note.Objective, upd.Objective)
	setString(&note.Assessment, upd.Assessment)
	setString(&note.Plan, upd.Plan)
	setString(&note.TherapistSignature, upd.TherapistSignature)

	if upd.PainPre != nil {
		note.PainPre = parseOptionalInt(*upd.PainPre)
	}
	if upd.PainPost != nil {
		note.PainPost = parseOptionalInt(*upd.PainPost)
	}
	return nil
}

// NoteAt resolves a note by position within its record.
func NoteAt(record *PatientRecord, index int) (*ProgressNote, error) {
	if index < 0 || index >= len(record.ProgressNotes) {
		return nil, ErrIndexOutOfRange
	}
	return record.ProgressNotes[index], nil
}
