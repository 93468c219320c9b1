package chart

import "errors"

var (
	// ErrLocked is returned by any mutator invoked on a locked evaluation or
	// progress note. The failed call leaves state untouched.
	ErrLocked = errors.New("document is locked")

	// ErrMissingSignature is returned when a lock is attempted without a
	// usable therapist signature; the transition does not occur.
	ErrMissingSignature = errors.New("therapist signature required to sign")

	ErrInvalidGoalStatus = errors.New("invalid goal status")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrInvalidData       = errors.New("invalid record data")
	ErrInvalidDate       = errors.New("invalid date")
)
