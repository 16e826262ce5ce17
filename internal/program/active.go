package program

// ActiveProgram is the single owned program value a live session executes.
// Substitution mutates it in place; there is no second "modified" copy.
type ActiveProgram struct {
	ProgramID   string     `json:"programId"`
	ProgramName string     `json:"programName"`
	DayIndex    int        `json:"dayIndex"`
	Exercises   []Exercise `json:"exercises"`
}

// Replace swaps the identity of the exercise in the given slot, keeping its
// sets/reps/weight template.
func (a *ActiveProgram) Replace(index int, id, name string) bool {
	if index < 0 || index >= len(a.Exercises) {
		return false
	}
	a.Exercises[index].ID = id
	a.Exercises[index].Name = name
	return true
}
