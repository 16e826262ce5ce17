package session

import (
	"time"

	"github.com/2beens/gymcoach/internal/program"
)

type ExerciseSnapshot struct {
	ExerciseState
	Status   Status           `json:"status"`
	Template program.Exercise `json:"template"`
	LastTime map[int]string   `json:"lastTime,omitempty"`
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	ProgramID      string             `json:"programId"`
	ProgramName    string             `json:"programName"`
	DayIndex       int                `json:"dayIndex"`
	StartedAt      time.Time          `json:"startedAt"`
	Cursor         Cursor             `json:"cursor"`
	CompletionRate int                `json:"completionRate"`
	CanFinalize    bool               `json:"canFinalize"`
	Exercises      []ExerciseSnapshot `json:"exercises"`
}

func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		ProgramID:      c.active.ProgramID,
		ProgramName:    c.active.ProgramName,
		DayIndex:       c.active.DayIndex,
		StartedAt:      c.startedAt,
		Cursor:         c.cursor,
		CompletionRate: c.CompletionRate(),
		CanFinalize:    c.CanFinalize(),
		Exercises:      make([]ExerciseSnapshot, len(c.states)),
	}

	for i, state := range c.Exercises() {
		status, _ := c.Status(i)
		es := ExerciseSnapshot{
			ExerciseState: state,
			Status:        status,
			Template:      c.active.Exercises[i],
		}
		if hints, _ := c.LastTime(i); len(hints) > 0 {
			es.LastTime = make(map[int]string, len(hints))
			for setNumber, h := range hints {
				es.LastTime[setNumber] = h.String()
			}
		}
		snap.Exercises[i] = es
	}

	return snap
}
