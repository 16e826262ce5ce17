package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"
)

type CompletedSet struct {
	SetNumber int     `json:"setNumber"`
	Weight    float64 `json:"weight"`
	Reps      float64 `json:"reps"`
	RestTime  int     `json:"restTime"`
	Completed bool    `json:"completed"`
}

type SessionExercise struct {
	ExerciseID string         `json:"exerciseId"`
	Name       string         `json:"name"`
	Sets       []CompletedSet `json:"sets"`
}

type HealthMetrics struct {
	AvgHeartRate *int     `json:"avgHeartRate,omitempty"`
	MaxHeartRate *int     `json:"maxHeartRate,omitempty"`
	Calories     *float64 `json:"calories,omitempty"`
	Steps        *int     `json:"steps,omitempty"`
	Source       string   `json:"source,omitempty"`
}

// WorkoutSession is one finalized session as persisted in the workout history.
type WorkoutSession struct {
	ID              string            `json:"id"`
	ProgramID       string            `json:"programId"`
	ProgramName     string            `json:"programName"`
	Date            time.Time         `json:"date"`
	Duration        int               `json:"duration"`
	Exercises       []SessionExercise `json:"exercises"`
	Notes           string            `json:"notes"`
	Completed       bool              `json:"completed"`
	SorenessLevel   *int              `json:"sorenessLevel,omitempty"`
	EnergyLevel     *int              `json:"energyLevel,omitempty"`
	MotivationLevel *int              `json:"motivationLevel,omitempty"`
	HealthMetrics   *HealthMetrics    `json:"healthMetrics,omitempty"`
}

// Load reads the whole workout history, newest first. A missing key is an empty history.
func Load(ctx context.Context, store storage.Store) ([]WorkoutSession, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "history.load")
	defer span.End()

	var sessions []WorkoutSession
	if _, err := store.Load(ctx, storage.KeyWorkoutHistory, &sessions); err != nil {
		return nil, fmt.Errorf("load workout history: %w", err)
	}
	return sessions, nil
}

// Index gives per-set "last time" values from the most recent matching session.
type Index struct {
	session *WorkoutSession
}

// Build picks the most recent session of the program, matching by id first
// and by name when no session carries the id. sessions must be newest first.
func Build(sessions []WorkoutSession, programID, programName string) *Index {
	idx := &Index{}
	if programID != "" {
		for i := range sessions {
			if sessions[i].ProgramID == programID {
				idx.session = &sessions[i]
				return idx
			}
		}
	}
	if programName != "" {
		for i := range sessions {
			if sessions[i].ProgramName == programName {
				idx.session = &sessions[i]
				return idx
			}
		}
	}
	return idx
}

func (x *Index) Session() (*WorkoutSession, bool) {
	if x == nil || x.session == nil {
		return nil, false
	}
	return x.session, true
}

// ForExercise returns the previous completed sets of ex keyed by set number.
// The session exercise is matched by name or by exercise id.
func (x *Index) ForExercise(ex program.Exercise) (map[int]CompletedSet, bool) {
	s, ok := x.Session()
	if !ok {
		return nil, false
	}

	for _, se := range s.Exercises {
		if !ex.MatchesName(se.Name) && (ex.ID == "" || se.ExerciseID != ex.ID) {
			continue
		}
		sets := make(map[int]CompletedSet, len(se.Sets))
		for _, cs := range se.Sets {
			if cs.Completed {
				sets[cs.SetNumber] = cs
			}
		}
		return sets, true
	}
	return nil, false
}

type Hint struct {
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
}

func (h Hint) String() string {
	return fmt.Sprintf("last time: %s lbs × %s reps", formatNumber(h.Weight), formatNumber(h.Reps))
}

func (x *Index) Hint(ex program.Exercise, setNumber int) (Hint, bool) {
	sets, ok := x.ForExercise(ex)
	if !ok {
		return Hint{}, false
	}
	cs, ok := sets[setNumber]
	if !ok {
		return Hint{}, false
	}
	return Hint{Weight: cs.Weight, Reps: cs.Reps}, true
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
