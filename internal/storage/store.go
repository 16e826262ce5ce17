package storage

import (
	"context"
	"errors"
)

// keys of the collections this service reads and writes
const (
	KeyWorkoutHistory    = "workoutHistory"
	KeySavedWorkoutPlans = "savedWorkoutPlans"
)

var ErrEmptyKey = errors.New("storage key empty")

// Store is a string-keyed JSON document store. Collections are always re-read
// and written whole; there are no partial writes.
type Store interface {
	// Load decodes the value under key into dest. found is false when the key does not exist.
	Load(ctx context.Context, key string, dest any) (found bool, err error)
	Save(ctx context.Context, key string, value any) error
}
