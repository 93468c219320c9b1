package chart

// Lock state machines for evaluations and progress notes. Both documents move
// between Draft and Locked indefinitely; unlocking is unconditional and there
// is no terminal state. A note's lock is independent of every other note's and
// of the evaluation's.

// LockEvaluation signs and locks an evaluation. The therapist signature must
// be present; on failure the evaluation stays in Draft.
func LockEvaluation(eval *Evaluation) error {
	if eval.TherapistSignature == "" {
		return ErrMissingSignature
	}
	eval.Locked = true
	return nil
}

func UnlockEvaluation(eval *Evaluation) {
	eval.Locked = false
}

// LockNote signs and locks one progress note. A note with no signature of its
// own first borrows the evaluation's therapist signature; only if neither is
// present does the lock fail. The fallback is attempted before rejecting.
func LockNote(note *ProgressNote, evalTherapistSignature string) error {
	if note.TherapistSignature == "" && evalTherapistSignature != "" {
		note.TherapistSignature = evalTherapistSignature
	}
	if note.TherapistSignature == "" {
		return ErrMissingSignature
	}
	note.Locked = true
	return nil
}

func UnlockNote(note *ProgressNote) {
	note.Locked = false
}
