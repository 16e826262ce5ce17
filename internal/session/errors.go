package session

import "errors"

var (
	ErrMissingWeightReps = errors.New("Please enter weight and reps")
	ErrSetsIncomplete    = errors.New("Complete All Sets")
	ErrNoNextExercise    = errors.New("no next exercise")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrExerciseSkipped   = errors.New("exercise is skipped")
	ErrLastSet           = errors.New("cannot remove the last set")
	ErrNotFinalizable    = errors.New("session not finalizable: complete or skip every exercise")
	ErrNoActiveSession   = errors.New("no active session")
)
