package adaptation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

type Result struct {
	PlanFound      bool                  `json:"planFound"`
	Applied        []string              `json:"applied"`
	Suppressed     []string              `json:"suppressed"`
	ChangesApplied int                   `json:"changesApplied"`
	Program        *program.SavedProgram `json:"program,omitempty"`
}

// Applicator writes accepted suggestions into saved programs.
type Applicator struct {
	store          storage.Store
	analyzer       Analyzer
	metricsManager *metrics.Manager

	// one apply at a time, each is a read-modify-write of all plans
	mu  sync.Mutex
	now func() time.Time
}

func NewApplicator(store storage.Store, analyzer Analyzer, metricsManager *metrics.Manager) *Applicator {
	return &Applicator{
		store:          store,
		analyzer:       analyzer,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (a *Applicator) Apply(ctx context.Context, programID string, adaptation program.Adaptation) (Result, error) {
	return a.ApplyAll(ctx, programID, []program.Adaptation{adaptation})
}

// ApplyAll applies the suggestions in order on one program mutation and saves once.
// A missing plan is not an error: the result reports PlanFound false and nothing is written.
func (a *Applicator) ApplyAll(ctx context.Context, programID string, adaptations []program.Adaptation) (_ Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "adaptation.applicator.applyAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("program.id", programID),
		attribute.Int("adaptations", len(adaptations)),
	)

	a.mu.Lock()
	defer a.mu.Unlock()

	var plans []program.SavedProgram
	if _, err := a.store.Load(ctx, storage.KeySavedWorkoutPlans, &plans); err != nil {
		a.metricsManager.CounterStorageErrors.WithLabelValues("load", storage.KeySavedWorkoutPlans).Inc()
		return Result{}, fmt.Errorf("load plans: %w", err)
	}

	idx := program.FindPlan(plans, programID)
	if idx < 0 {
		log.Warnf("apply adaptations: plan %s not found", programID)
		return Result{PlanFound: false}, nil
	}
	plan := &plans[idx]

	implemented := make(map[string]struct{}, len(plan.ImplementedSuggestions))
	for _, ia := range plan.ImplementedSuggestions {
		implemented[DedupKey(ia.Adaptation)] = struct{}{}
	}

	result := Result{
		PlanFound:  true,
		Applied:    []string{},
		Suppressed: []string{},
	}
	implementedAt := a.now().UTC()
	for _, adaptation := range adaptations {
		key := DedupKey(adaptation)
		if _, ok := implemented[key]; ok {
			log.Debugf("adaptation %s already implemented [%s]", adaptation.ID, key)
			result.Suppressed = append(result.Suppressed, adaptation.ID)
			continue
		}
		implemented[key] = struct{}{}

		for _, change := range adaptation.Changes {
			result.ChangesApplied += applyChange(plan, change)
		}
		plan.ImplementedSuggestions = append(plan.ImplementedSuggestions, program.ImplementedAdaptation{
			Adaptation:    adaptation,
			ImplementedAt: implementedAt,
		})
		result.Applied = append(result.Applied, adaptation.ID)
	}

	a.metricsManager.CounterAdaptationsSuppressed.Add(float64(len(result.Suppressed)))
	if len(result.Applied) == 0 {
		result.Program = plan
		return result, nil
	}

	if err := a.store.Save(ctx, storage.KeySavedWorkoutPlans, plans); err != nil {
		a.metricsManager.CounterStorageErrors.WithLabelValues("save", storage.KeySavedWorkoutPlans).Inc()
		return Result{}, fmt.Errorf("save plans: %w", err)
	}
	a.metricsManager.CounterAdaptationsApplied.Add(float64(len(result.Applied)))
	result.Program = plan

	var clearErr error
	for _, id := range result.Applied {
		clearErr = multierr.Append(clearErr, a.analyzer.Clear(ctx, id))
	}
	if clearErr != nil {
		log.Warnf("apply adaptations, clear applied suggestions: %s", clearErr)
	}

	return result, nil
}

// applyChange writes one change into the program and returns the number of exercises changed.
func applyChange(p *program.SavedProgram, change program.Change) int {
	switch change.Field {
	case program.FieldDuration:
		if change.NewValue.IsZero() {
			return 0
		}
		p.SetDuration(change.NewValue)
		return 1
	case program.FieldFrequency:
		v, ok := change.NewValue.Float()
		if !ok {
			return 0
		}
		p.DaysPerWeek = program.Num(float64(int(v)))
		return 1
	}

	changed := 0
	for _, site := range findExercise(p, change.ExerciseID, change.ExerciseName) {
		if applyExerciseChange(site.Exercise, change) {
			changed++
		}
	}
	return changed
}

func applyExerciseChange(ex *program.Exercise, change program.Change) bool {
	switch change.Field {
	case program.FieldWeight:
		v, ok := change.NewValue.Float()
		if !ok {
			return false
		}
		ex.Weight = program.Num(v)
	case program.FieldSets:
		v, ok := change.NewValue.Float()
		if !ok {
			return false
		}
		ex.Sets = program.Num(v)
	case program.FieldReps:
		if ex.Reps.IsRange() {
			// range programs keep a string, which is overwritten by the new value
			ex.Reps = program.Text(change.NewValue.String())
			return true
		}
		v, ok := change.NewValue.Float()
		if !ok {
			return false
		}
		ex.Reps = program.Num(v)
	case program.FieldRestTime:
		ex.RestTime = program.Num(float64(change.NewValue.IntOr(program.DefaultRestTime)))
	default:
		return false
	}
	return true
}

// findExercise resolves the change target in each exercise list (the flat list, or
// every week day): exercise id first, then trimmed case-insensitive name. The first hit
// of a list wins, so a recurring exercise is changed once per day.
func findExercise(p *program.SavedProgram, exerciseID, exerciseName string) []program.Site {
	var (
		matched []program.Site
		day     []program.Site
	)
	sites := p.Sites()
	for i, site := range sites {
		day = append(day, site)
		if i+1 < len(sites) && sites[i+1].Day == site.Day {
			continue
		}
		if hit, ok := firstHit(day, exerciseID, exerciseName); ok {
			matched = append(matched, hit)
		}
		day = day[:0]
	}
	return matched
}

func firstHit(sites []program.Site, exerciseID, exerciseName string) (program.Site, bool) {
	if exerciseID != "" {
		for _, site := range sites {
			if site.Exercise.ID == exerciseID {
				return site, true
			}
		}
	}
	for _, site := range sites {
		if site.Exercise.MatchesName(exerciseName) {
			return site, true
		}
	}
	return program.Site{}, false
}
