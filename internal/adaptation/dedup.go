package adaptation

import (
	"fmt"

	"github.com/2beens/gymcoach/internal/program"
)

// DedupKey identifies a suggestion by content: title and its first change.
// Suggestion ids are not stable across analyzer runs.
func DedupKey(a program.Adaptation) string {
	var target, field, oldValue, newValue string
	if len(a.Changes) > 0 {
		ch := a.Changes[0]
		target = ch.ExerciseName
		if target == "" {
			target = ch.ExerciseID
		}
		field = string(ch.Field)
		oldValue = ch.OldValue.String()
		newValue = ch.NewValue.String()
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s", a.Title, target, field, oldValue, newValue)
}

// FilterActive drops suggestions already implemented, and duplicates within
// the list itself. Order is kept, the first of duplicates wins.
func FilterActive(suggestions []program.Adaptation, implemented []program.ImplementedAdaptation) []program.Adaptation {
	seen := make(map[string]struct{}, len(implemented)+len(suggestions))
	for _, ia := range implemented {
		seen[DedupKey(ia.Adaptation)] = struct{}{}
	}

	active := make([]program.Adaptation, 0, len(suggestions))
	for _, s := range suggestions {
		key := DedupKey(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		active = append(active, s)
	}
	return active
}
