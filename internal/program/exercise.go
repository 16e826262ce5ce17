package program

import (
	"strings"
)

const DefaultRestTime = 60

// Exercise is one entry of a program. Sets, reps and rest time may be stored
// as numbers or strings by the clients, so they are kept as Quantity.
type Exercise struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Sets     Quantity `json:"sets"`
	Reps     Quantity `json:"reps"`
	Weight   Quantity `json:"weight,omitzero"`
	RestTime Quantity `json:"restTime,omitzero"`
	Category string   `json:"category,omitempty"`

	unknown unknownFields
}

type exerciseJSON Exercise

func (e Exercise) MarshalJSON() ([]byte, error) {
	return encodeWithUnknown(exerciseJSON(e), e.unknown)
}

func (e *Exercise) UnmarshalJSON(data []byte) error {
	var ex exerciseJSON
	unknown, err := decodeKeepingUnknown(data, &ex,
		"id", "name", "sets", "reps", "weight", "restTime", "category",
	)
	if err != nil {
		return err
	}
	*e = Exercise(ex)
	e.unknown = unknown
	return nil
}

// SetCount is the number of sets a session starts with, at least one.
func (e Exercise) SetCount() int {
	if n := e.Sets.Int(); n > 0 {
		return n
	}
	return 1
}

func (e Exercise) RestSeconds() int {
	return e.RestTime.IntOr(DefaultRestTime)
}

// MatchesName compares names the way all exercise lookups do: trimmed, case-insensitive.
func (e Exercise) MatchesName(name string) bool {
	n := strings.TrimSpace(name)
	return n != "" && strings.EqualFold(strings.TrimSpace(e.Name), n)
}
