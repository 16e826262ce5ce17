package adaptation

import (
	"context"
	"fmt"

	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// Suggestions lists the adaptation suggestions of a program that are still open.
type Suggestions struct {
	store    storage.Store
	analyzer Analyzer
}

func NewSuggestions(store storage.Store, analyzer Analyzer) *Suggestions {
	return &Suggestions{
		store:    store,
		analyzer: analyzer,
	}
}

func (s *Suggestions) Active(ctx context.Context, programID string) (_ []program.Adaptation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adaptation.suggestions.active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("program.id", programID))

	var plans []program.SavedProgram
	if _, err := s.store.Load(ctx, storage.KeySavedWorkoutPlans, &plans); err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	idx := program.FindPlan(plans, programID)
	if idx < 0 {
		return nil, program.ErrPlanNotFound
	}
	plan := plans[idx]

	sessions, err := history.Load(ctx, s.store)
	if err != nil {
		return nil, err
	}

	var programSessions []history.WorkoutSession
	for _, ws := range sessions {
		if ws.ProgramID == programID {
			programSessions = append(programSessions, ws)
		}
	}

	suggestions, err := s.analyzer.Analyze(ctx, AnalyzeRequest{
		ProgramID: programID,
		Program:   plan,
		History:   programSessions,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze program %s: %w", programID, err)
	}

	active := FilterActive(suggestions, plan.ImplementedSuggestions)
	span.SetAttributes(attribute.Int("suggestions.active", len(active)))
	return active, nil
}
