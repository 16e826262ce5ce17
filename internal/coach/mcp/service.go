package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/gymcoach/internal/catalog"
	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const defaultHistoryLimit = 10

type exerciseCatalog interface {
	All() []catalog.Entry
}

type alternativesResolver interface {
	Alternatives(ctx context.Context, name string) []catalog.Entry
}

type suggestionSource interface {
	Active(ctx context.Context, programID string) ([]program.Adaptation, error)
}

// contextService provides the coaching context exposed as MCP tools.
// Used by Handler for testability.
type contextService interface {
	ListExercises(ctx context.Context, params ExerciseFilter) ([]catalog.Entry, error)
	Alternatives(ctx context.Context, exercise string) ([]catalog.Entry, error)
	ListPrograms(ctx context.Context) ([]ProgramSummary, error)
	ActiveAdaptations(ctx context.Context, programID string) ([]program.Adaptation, error)
	RecentSessions(ctx context.Context, programID string, limit int) ([]history.WorkoutSession, error)
}

type ExerciseFilter struct {
	MuscleGroup string
	Category    string
}

// ProgramSummary is one saved program without its exercise details.
type ProgramSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Shape       string `json:"shape"`
	Days        int    `json:"days"`
	Exercises   int    `json:"exercises"`
	Implemented int    `json:"implementedAdaptations"`
}

// ContextService holds dependencies and implements the coaching context lookups.
type ContextService struct {
	store       storage.Store
	catalog     exerciseCatalog
	resolver    alternativesResolver
	suggestions suggestionSource
}

func NewContextService(
	store storage.Store,
	exercises exerciseCatalog,
	resolver alternativesResolver,
	suggestions suggestionSource,
) *ContextService {
	return &ContextService{
		store:       store,
		catalog:     exercises,
		resolver:    resolver,
		suggestions: suggestions,
	}
}

// ListExercises returns catalog entries, optionally filtered by primary muscle group
// and category. Filters are case-insensitive.
func (s *ContextService) ListExercises(ctx context.Context, params ExerciseFilter) ([]catalog.Entry, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "mcp.service.list_exercises")
	defer span.End()

	var list []catalog.Entry
	for _, e := range s.catalog.All() {
		if params.MuscleGroup != "" && !strings.EqualFold(e.PrimaryMuscleGroup, params.MuscleGroup) {
			continue
		}
		if params.Category != "" && !strings.EqualFold(e.Category, params.Category) {
			continue
		}
		list = append(list, e)
	}
	span.SetAttributes(attribute.Int("exercises.count", len(list)))
	return list, nil
}

func (s *ContextService) Alternatives(ctx context.Context, exercise string) ([]catalog.Entry, error) {
	if strings.TrimSpace(exercise) == "" {
		return nil, fmt.Errorf("exercise name empty")
	}
	return s.resolver.Alternatives(ctx, exercise), nil
}

func (s *ContextService) ListPrograms(ctx context.Context) (_ []ProgramSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mcp.service.list_programs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var plans []program.SavedProgram
	if _, err := s.store.Load(ctx, storage.KeySavedWorkoutPlans, &plans); err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}

	summaries := make([]ProgramSummary, 0, len(plans))
	for i := range plans {
		p := &plans[i]
		summary := ProgramSummary{
			ID:          p.ID,
			Name:        p.Name,
			Shape:       p.Shape().String(),
			Exercises:   len(p.Sites()),
			Implemented: len(p.ImplementedSuggestions),
		}
		switch p.Shape() {
		case program.ShapeWeekly:
			summary.Days = len(p.WeeklyPlan.WeekDays)
		case program.ShapeFlat:
			summary.Days = 1
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *ContextService) ActiveAdaptations(ctx context.Context, programID string) ([]program.Adaptation, error) {
	if programID == "" {
		return nil, fmt.Errorf("program id empty")
	}
	return s.suggestions.Active(ctx, programID)
}

// RecentSessions returns up to limit finalized sessions, newest first. An empty
// programID returns sessions of every program.
func (s *ContextService) RecentSessions(ctx context.Context, programID string, limit int) ([]history.WorkoutSession, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	sessions, err := history.Load(ctx, s.store)
	if err != nil {
		return nil, err
	}

	var list []history.WorkoutSession
	for _, ws := range sessions {
		if programID != "" && ws.ProgramID != programID {
			continue
		}
		list = append(list, ws)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
