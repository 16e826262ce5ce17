package adaptation

import (
	"sort"

	"github.com/2beens/gymcoach/internal/program"
)

var priorityRank = map[program.Priority]int{
	program.PriorityHigh:   0,
	program.PriorityMedium: 1,
	program.PriorityLow:    2,
}

func rank(p program.Priority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

// sortByPriority orders high priority first, then by confidence, then by id.
func sortByPriority(adaptations []program.Adaptation) {
	sort.SliceStable(adaptations, func(i, j int) bool {
		a, b := adaptations[i], adaptations[j]
		if rank(a.Priority) != rank(b.Priority) {
			return rank(a.Priority) < rank(b.Priority)
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.ID < b.ID
	})
}
