package program

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidProgram = errors.New("invalid program")
	ErrDayNotFound    = errors.New("program day not found")
	ErrPlanNotFound   = errors.New("saved program not found")
)

// Shape tells which of the two stored program layouts a SavedProgram uses.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeFlat
	ShapeWeekly
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeWeekly:
		return "weekly"
	default:
		return "invalid"
	}
}

type WeekDay struct {
	Day       string     `json:"day,omitempty"`
	Name      string     `json:"name,omitempty"`
	Exercises []Exercise `json:"exercises,omitzero"`
	Duration  Quantity   `json:"duration,omitzero"`

	unknown unknownFields
}

type weekDayJSON WeekDay

func (d WeekDay) MarshalJSON() ([]byte, error) {
	return encodeWithUnknown(weekDayJSON(d), d.unknown)
}

func (d *WeekDay) UnmarshalJSON(data []byte) error {
	var wd weekDayJSON
	unknown, err := decodeKeepingUnknown(data, &wd, "day", "name", "exercises", "duration")
	if err != nil {
		return err
	}
	*d = WeekDay(wd)
	d.unknown = unknown
	return nil
}

type WeeklyPlan struct {
	WeekDays []WeekDay `json:"weekDays"`

	unknown unknownFields
}

type weeklyPlanJSON WeeklyPlan

func (w WeeklyPlan) MarshalJSON() ([]byte, error) {
	return encodeWithUnknown(weeklyPlanJSON(w), w.unknown)
}

func (w *WeeklyPlan) UnmarshalJSON(data []byte) error {
	var wp weeklyPlanJSON
	unknown, err := decodeKeepingUnknown(data, &wp, "weekDays")
	if err != nil {
		return err
	}
	*w = WeeklyPlan(wp)
	w.unknown = unknown
	return nil
}

// SavedProgram is an entry of the savedWorkoutPlans collection. It is either
// flat (Exercises) or multi-day (WeeklyPlan.WeekDays), see Shape.
type SavedProgram struct {
	ID                     string                  `json:"id"`
	Name                   string                  `json:"name"`
	DaysPerWeek            Quantity                `json:"daysPerWeek,omitzero"`
	Duration               Quantity                `json:"duration,omitzero"`
	Exercises              []Exercise              `json:"exercises,omitzero"`
	WeeklyPlan             *WeeklyPlan             `json:"weeklyPlan,omitempty"`
	ImplementedSuggestions []ImplementedAdaptation `json:"implementedSuggestions,omitempty"`

	unknown unknownFields
}

type savedProgramJSON SavedProgram

func (p SavedProgram) MarshalJSON() ([]byte, error) {
	return encodeWithUnknown(savedProgramJSON(p), p.unknown)
}

func (p *SavedProgram) UnmarshalJSON(data []byte) error {
	var sp savedProgramJSON
	unknown, err := decodeKeepingUnknown(data, &sp,
		"id", "name", "daysPerWeek", "duration", "exercises", "weeklyPlan", "implementedSuggestions",
	)
	if err != nil {
		return err
	}
	*p = SavedProgram(sp)
	p.unknown = unknown
	return nil
}

func (p *SavedProgram) Shape() Shape {
	if p.WeeklyPlan != nil && len(p.WeeklyPlan.WeekDays) > 0 {
		return ShapeWeekly
	}
	if p.Exercises != nil {
		return ShapeFlat
	}
	return ShapeInvalid
}

// Site is one place in a program where an exercise lives. Day is -1 for flat programs.
type Site struct {
	Day      int
	Index    int
	Exercise *Exercise
}

// Sites yields every exercise mutation site, regardless of the program shape.
func (p *SavedProgram) Sites() []Site {
	var sites []Site
	switch p.Shape() {
	case ShapeFlat:
		for i := range p.Exercises {
			sites = append(sites, Site{Day: -1, Index: i, Exercise: &p.Exercises[i]})
		}
	case ShapeWeekly:
		for d := range p.WeeklyPlan.WeekDays {
			day := &p.WeeklyPlan.WeekDays[d]
			for i := range day.Exercises {
				sites = append(sites, Site{Day: d, Index: i, Exercise: &day.Exercises[i]})
			}
		}
	}
	return sites
}

// SetDuration overwrites the program duration, and every day's duration for weekly programs.
func (p *SavedProgram) SetDuration(v Quantity) {
	p.Duration = v
	if p.Shape() != ShapeWeekly {
		return
	}
	for d := range p.WeeklyPlan.WeekDays {
		p.WeeklyPlan.WeekDays[d].Duration = v
	}
}

// Activate copies out the exercises a session will execute. For weekly programs
// dayIndex selects the training day; it is ignored for flat programs.
func (p *SavedProgram) Activate(dayIndex int) (ActiveProgram, error) {
	active := ActiveProgram{
		ProgramID:   p.ID,
		ProgramName: p.Name,
		DayIndex:    dayIndex,
	}

	switch p.Shape() {
	case ShapeFlat:
		active.DayIndex = -1
		active.Exercises = copyExercises(p.Exercises)
	case ShapeWeekly:
		if dayIndex < 0 || dayIndex >= len(p.WeeklyPlan.WeekDays) {
			return ActiveProgram{}, fmt.Errorf("day %d of %d: %w", dayIndex, len(p.WeeklyPlan.WeekDays), ErrDayNotFound)
		}
		day := p.WeeklyPlan.WeekDays[dayIndex]
		if day.Exercises == nil {
			return ActiveProgram{}, ErrInvalidProgram
		}
		active.Exercises = copyExercises(day.Exercises)
	default:
		return ActiveProgram{}, ErrInvalidProgram
	}

	return active, nil
}

// FindPlan returns the index of the program with the given id, or -1.
func FindPlan(plans []SavedProgram, id string) int {
	for i := range plans {
		if plans[i].ID == id {
			return i
		}
	}
	return -1
}

func copyExercises(src []Exercise) []Exercise {
	dst := make([]Exercise, len(src))
	copy(dst, src)
	return dst
}
