package session

import (
	"math"
	"time"

	"github.com/2beens/gymcoach/internal/catalog"
	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/program"
)

// Controller is the state machine of one live workout session.
// It is not safe for concurrent use; Manager serializes access.
type Controller struct {
	active    program.ActiveProgram
	states    []ExerciseState
	cursor    Cursor
	startedAt time.Time

	history *history.Index
	hints   map[int]map[int]history.Hint

	now func() time.Time
}

type Option func(*Controller)

func WithHistory(idx *history.Index) Option {
	return func(c *Controller) {
		c.history = idx
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func New(active program.ActiveProgram, opts ...Option) (*Controller, error) {
	if active.Exercises == nil {
		return nil, program.ErrInvalidProgram
	}

	c := &Controller{
		active: active,
		hints:  make(map[int]map[int]history.Hint),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.states = make([]ExerciseState, len(active.Exercises))
	for i, ex := range active.Exercises {
		c.states[i] = ExerciseState{
			ExerciseID: ex.ID,
			Name:       ex.Name,
			Sets:       defaultSets(ex, false),
		}
	}
	c.startedAt = c.now()

	return c, nil
}

func (c *Controller) checkExercise(index int) error {
	if index < 0 || index >= len(c.states) {
		return ErrIndexOutOfRange
	}
	return nil
}

func (c *Controller) checkSet(exerciseIndex, setIndex int) error {
	if err := c.checkExercise(exerciseIndex); err != nil {
		return err
	}
	if setIndex < 0 || setIndex >= len(c.states[exerciseIndex].Sets) {
		return ErrIndexOutOfRange
	}
	return nil
}

// resetToTemplate regenerates the sets of an exercise from its template.
// The skip flag is kept.
func (c *Controller) resetToTemplate(index int) {
	c.states[index].Sets = defaultSets(c.active.Exercises[index], true)
}

func (c *Controller) moveToExercise(index int) {
	c.resetToTemplate(index)
	c.cursor = Cursor{Exercise: index, Set: 0}
}

// CompleteSet records weight and reps of a set and moves the cursor on:
// to the next incomplete set of the same exercise, or else to the next exercise.
func (c *Controller) CompleteSet(exerciseIndex, setIndex int, weight, reps *float64) error {
	if err := c.checkSet(exerciseIndex, setIndex); err != nil {
		return err
	}
	if weight == nil || reps == nil {
		return ErrMissingWeightReps
	}

	state := &c.states[exerciseIndex]
	if state.Skipped {
		return ErrExerciseSkipped
	}

	set := &state.Sets[setIndex]
	set.Weight = *weight
	set.Reps = *reps
	set.Completed = true

	if next, ok := state.firstIncomplete(setIndex + 1); ok {
		c.cursor = Cursor{Exercise: exerciseIndex, Set: next}
		return nil
	}
	if exerciseIndex+1 < len(c.states) {
		c.moveToExercise(exerciseIndex + 1)
		return nil
	}

	c.cursor = Cursor{Exercise: exerciseIndex, Set: setIndex}
	return nil
}

// EditSet reopens a completed set. Recorded values are kept.
func (c *Controller) EditSet(exerciseIndex, setIndex int) error {
	if err := c.checkSet(exerciseIndex, setIndex); err != nil {
		return err
	}
	c.states[exerciseIndex].Sets[setIndex].Completed = false
	return nil
}

func (c *Controller) AdvanceExercise() error {
	if len(c.states) == 0 {
		return ErrNoNextExercise
	}
	current := c.states[c.cursor.Exercise]
	if !current.Skipped && !current.allCompleted() {
		return ErrSetsIncomplete
	}
	next := c.cursor.Exercise + 1
	if next >= len(c.states) {
		return ErrNoNextExercise
	}
	c.moveToExercise(next)
	return nil
}

// NavigateToExercise jumps to any exercise without touching its data.
func (c *Controller) NavigateToExercise(index int) error {
	if err := c.checkExercise(index); err != nil {
		return err
	}
	set, _ := c.states[index].firstIncomplete(0)
	c.cursor = Cursor{Exercise: index, Set: set}
	return nil
}

func (c *Controller) SkipExercise(index int) error {
	if err := c.checkExercise(index); err != nil {
		return err
	}
	c.states[index].Skipped = true
	return nil
}

func (c *Controller) Unskip(index int) error {
	if err := c.checkExercise(index); err != nil {
		return err
	}
	c.states[index].Skipped = false
	return nil
}

func (c *Controller) AddSet(index int) error {
	if err := c.checkExercise(index); err != nil {
		return err
	}
	state := &c.states[index]
	state.Sets = append(state.Sets, defaultSet(c.active.Exercises[index], len(state.Sets)+1))
	return nil
}

func (c *Controller) RemoveSet(index, setIndex int) error {
	if err := c.checkSet(index, setIndex); err != nil {
		return err
	}
	state := &c.states[index]
	if len(state.Sets) == 1 {
		return ErrLastSet
	}

	state.Sets = append(state.Sets[:setIndex], state.Sets[setIndex+1:]...)
	state.renumber()

	if c.cursor.Exercise == index {
		if c.cursor.Set > setIndex {
			c.cursor.Set--
		}
		if c.cursor.Set >= len(state.Sets) {
			c.cursor.Set = len(state.Sets) - 1
		}
	}
	return nil
}

// Substitute swaps the exercise in a slot for a catalog alternative, in place.
// Sets and their data stay as they are.
func (c *Controller) Substitute(index int, entry catalog.Entry) error {
	if err := c.checkExercise(index); err != nil {
		return err
	}
	c.active.Replace(index, entry.ID, entry.Name)
	c.states[index].ExerciseID = entry.ID
	c.states[index].Name = entry.Name
	delete(c.hints, index)
	return nil
}

func (c *Controller) Status(index int) (Status, error) {
	if err := c.checkExercise(index); err != nil {
		return StatusPending, err
	}
	state := c.states[index]
	switch done := state.completedSets(); {
	case state.Skipped:
		return StatusSkipped, nil
	case done == 0:
		return StatusPending, nil
	case done == len(state.Sets):
		return StatusCompleted, nil
	default:
		return StatusInProgress, nil
	}
}

// CompletionRate is the rounded percentage of completed sets over all exercises.
// Sets of skipped exercises count as incomplete.
func (c *Controller) CompletionRate() int {
	total, done := 0, 0
	for _, state := range c.states {
		total += len(state.Sets)
		if !state.Skipped {
			done += state.completedSets()
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

func (c *Controller) CanFinalize() bool {
	for _, state := range c.states {
		if !state.Skipped && !state.allCompleted() {
			return false
		}
	}
	return true
}

func (c *Controller) Cursor() Cursor {
	return c.cursor
}

func (c *Controller) StartedAt() time.Time {
	return c.startedAt
}

// Program returns a copy of the active program, with substitutions applied.
func (c *Controller) Program() program.ActiveProgram {
	p := c.active
	p.Exercises = append([]program.Exercise{}, c.active.Exercises...)
	return p
}

// Exercises returns a deep copy of the session exercise states.
func (c *Controller) Exercises() []ExerciseState {
	states := make([]ExerciseState, len(c.states))
	for i, state := range c.states {
		states[i] = state
		states[i].Sets = append([]SetRecord{}, state.Sets...)
	}
	return states
}

// LastTime returns what was done last time for the exercise in a slot, keyed by set number.
// It is resolved once per slot.
func (c *Controller) LastTime(index int) (map[int]history.Hint, error) {
	if err := c.checkExercise(index); err != nil {
		return nil, err
	}
	if hints, ok := c.hints[index]; ok {
		return hints, nil
	}

	hints := map[int]history.Hint{}
	if sets, ok := c.history.ForExercise(c.active.Exercises[index]); ok {
		for setNumber, cs := range sets {
			hints[setNumber] = history.Hint{Weight: cs.Weight, Reps: cs.Reps}
		}
	}
	c.hints[index] = hints
	return hints, nil
}
