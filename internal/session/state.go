package session

import (
	"github.com/2beens/gymcoach/internal/program"
)

type SetRecord struct {
	SetNumber int     `json:"setNumber"`
	Weight    float64 `json:"weight"`
	Reps      float64 `json:"reps"`
	RestTime  int     `json:"restTime"`
	Completed bool    `json:"completed"`
}

type ExerciseState struct {
	ExerciseID string      `json:"exerciseId"`
	Name       string      `json:"name"`
	Skipped    bool        `json:"skipped,omitempty"`
	Sets       []SetRecord `json:"sets"`
}

func (s ExerciseState) completedSets() int {
	n := 0
	for _, set := range s.Sets {
		if set.Completed {
			n++
		}
	}
	return n
}

func (s ExerciseState) allCompleted() bool {
	return len(s.Sets) > 0 && s.completedSets() == len(s.Sets)
}

func (s ExerciseState) firstIncomplete(from int) (int, bool) {
	for i := from; i < len(s.Sets); i++ {
		if !s.Sets[i].Completed {
			return i, true
		}
	}
	return 0, false
}

func (s *ExerciseState) renumber() {
	for i := range s.Sets {
		s.Sets[i].SetNumber = i + 1
	}
}

func defaultSet(ex program.Exercise, setNumber int) SetRecord {
	weight, _ := ex.Weight.Float()
	return SetRecord{
		SetNumber: setNumber,
		Weight:    weight,
		Reps:      float64(ex.Reps.Int()),
		RestTime:  ex.RestSeconds(),
	}
}

// defaultSets builds the template set list of an exercise.
// The weight is left at 0 when resetWeight is set, as on exercise advance.
func defaultSets(ex program.Exercise, resetWeight bool) []SetRecord {
	sets := make([]SetRecord, ex.SetCount())
	for i := range sets {
		sets[i] = defaultSet(ex, i+1)
		if resetWeight {
			sets[i].Weight = 0
		}
	}
	return sets
}

type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Cursor points at the single active set of a session.
type Cursor struct {
	Exercise int `json:"exerciseIndex"`
	Set      int `json:"setIndex"`
}
