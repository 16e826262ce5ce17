package program

import "time"

type Field string

const (
	FieldWeight    Field = "weight"
	FieldSets      Field = "sets"
	FieldReps      Field = "reps"
	FieldRestTime  Field = "restTime"
	FieldDuration  Field = "duration"
	FieldFrequency Field = "frequency"
)

func (f Field) IsValid() bool {
	switch f {
	case FieldWeight, FieldSets, FieldReps, FieldRestTime, FieldDuration, FieldFrequency:
		return true
	default:
		return false
	}
}

// ProgramLevel fields are not bound to any exercise.
func (f Field) ProgramLevel() bool {
	return f == FieldDuration || f == FieldFrequency
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Change struct {
	Field        Field    `json:"field"`
	ExerciseID   string   `json:"exerciseId,omitempty"`
	ExerciseName string   `json:"exerciseName,omitempty"`
	OldValue     Quantity `json:"oldValue"`
	NewValue     Quantity `json:"newValue"`
}

// Adaptation is a progressive-overload proposal produced by the external analyzer.
type Adaptation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Reason      string   `json:"reason"`
	Priority    Priority `json:"priority"`
	Confidence  float64  `json:"confidence"`
	Changes     []Change `json:"changes"`
}

type ImplementedAdaptation struct {
	Adaptation
	ImplementedAt time.Time `json:"implementedAt"`
}
