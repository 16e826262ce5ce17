package finalize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/session"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrPersist          = errors.New("persist workout session")
	ErrSurveyIncomplete = errors.New("survey incomplete: soreness, energy and motivation must be 1-5")
	ErrSessionNotFound  = errors.New("workout session not found")
)

type Survey struct {
	SorenessLevel   *int `json:"sorenessLevel"`
	EnergyLevel     *int `json:"energyLevel"`
	MotivationLevel *int `json:"motivationLevel"`
}

func (s Survey) Validate() error {
	for _, level := range []*int{s.SorenessLevel, s.EnergyLevel, s.MotivationLevel} {
		if level == nil || *level < 1 || *level > 5 {
			return ErrSurveyIncomplete
		}
	}
	return nil
}

type Finalizer struct {
	store          storage.Store
	health         HealthMetricsProvider
	metricsManager *metrics.Manager

	// serializes read-modify-write of the workout history
	mu   sync.Mutex
	last *history.WorkoutSession

	now   func() time.Time
	newID func() string
}

type Option func(*Finalizer)

func WithClock(now func() time.Time) Option {
	return func(f *Finalizer) {
		f.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(f *Finalizer) {
		f.newID = newID
	}
}

func NewFinalizer(
	store storage.Store,
	health HealthMetricsProvider,
	metricsManager *metrics.Manager,
	opts ...Option,
) *Finalizer {
	f := &Finalizer{
		store:          store,
		health:         health,
		metricsManager: metricsManager,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Finalize turns a finished session into a workout record and persists it.
// On a storage failure the built record is returned together with an ErrPersist error,
// so the caller can retry with Persist.
func (f *Finalizer) Finalize(ctx context.Context, ctrl *session.Controller, notes string) (_ *history.WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "finalizer.finalize")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !ctrl.CanFinalize() {
		return nil, session.ErrNotFinalizable
	}

	start := ctrl.StartedAt()
	end := f.now()
	p := ctrl.Program()

	record := &history.WorkoutSession{
		ID:          f.newID(),
		ProgramID:   p.ProgramID,
		ProgramName: p.ProgramName,
		Date:        end.UTC(),
		Duration:    int(math.Round(end.Sub(start).Minutes())),
		Exercises:   completedExercises(ctrl.Exercises()),
		Notes:       notes,
		Completed:   true,
	}
	span.SetAttributes(attribute.String("session.id", record.ID))

	if f.health != nil {
		healthMetrics, err := f.health.GetWorkoutMetrics(ctx, start, end)
		if err != nil {
			f.metricsManager.CounterHealthMetricsErrors.Inc()
			log.Warnf("finalize session %s, get health metrics: %s", record.ID, err)
		} else {
			record.HealthMetrics = healthMetrics
		}
	}

	f.mu.Lock()
	f.last = record
	f.mu.Unlock()

	f.metricsManager.CounterSessionsFinalized.Inc()
	f.metricsManager.HistSessionDuration.Observe(float64(record.Duration))

	if err := f.Persist(ctx, record); err != nil {
		return record, err
	}

	log.Debugf("session %s finalized [program: %s, duration: %dm]", record.ID, record.ProgramID, record.Duration)
	return record, nil
}

// completedExercises keeps only completed sets. Skipped exercises stay in with no sets,
// exercises neither skipped nor with a completed set are dropped.
func completedExercises(states []session.ExerciseState) []history.SessionExercise {
	exercises := make([]history.SessionExercise, 0, len(states))
	for _, state := range states {
		se := history.SessionExercise{
			ExerciseID: state.ExerciseID,
			Name:       state.Name,
			Sets:       []history.CompletedSet{},
		}
		if state.Skipped {
			exercises = append(exercises, se)
			continue
		}
		for _, set := range state.Sets {
			if !set.Completed {
				continue
			}
			se.Sets = append(se.Sets, history.CompletedSet{
				SetNumber: set.SetNumber,
				Weight:    set.Weight,
				Reps:      set.Reps,
				RestTime:  set.RestTime,
				Completed: true,
			})
		}
		if len(se.Sets) > 0 {
			exercises = append(exercises, se)
		}
	}
	return exercises
}

// Persist stores the record at the front of the workout history,
// replacing an earlier copy with the same id.
func (f *Finalizer) Persist(ctx context.Context, record *history.WorkoutSession) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "finalizer.persist")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := history.Load(ctx, f.store)
	if err != nil {
		return f.persistErr("load", err)
	}

	replaced := false
	for i := range sessions {
		if sessions[i].ID == record.ID {
			sessions[i] = *record
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append([]history.WorkoutSession{*record}, sessions...)
	}

	if err := f.store.Save(ctx, storage.KeyWorkoutHistory, sessions); err != nil {
		return f.persistErr("save", err)
	}
	return nil
}

func (f *Finalizer) persistErr(op string, err error) error {
	f.metricsManager.CounterStorageErrors.WithLabelValues(op, storage.KeyWorkoutHistory).Inc()
	log.Errorf("workout history %s: %s", op, err)
	return fmt.Errorf("%w: %s: %w", ErrPersist, op, err)
}

// SubmitSurvey attaches the post-workout survey to a persisted record.
// When the record is missing from the history but was the last one finalized here,
// it is re-inserted at the front.
func (f *Finalizer) SubmitSurvey(ctx context.Context, sessionID string, survey Survey) (_ *history.WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "finalizer.submitSurvey")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if err := survey.Validate(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := history.Load(ctx, f.store)
	if err != nil {
		return nil, f.persistErr("load", err)
	}

	var record *history.WorkoutSession
	for i := range sessions {
		if sessions[i].ID == sessionID {
			record = &sessions[i]
			break
		}
	}
	if record == nil {
		if f.last == nil || f.last.ID != sessionID {
			return nil, ErrSessionNotFound
		}
		log.Warnf("session %s missing from history, re-inserting it", sessionID)
		sessions = append([]history.WorkoutSession{*f.last}, sessions...)
		record = &sessions[0]
	}

	record.SorenessLevel = intPtr(*survey.SorenessLevel)
	record.EnergyLevel = intPtr(*survey.EnergyLevel)
	record.MotivationLevel = intPtr(*survey.MotivationLevel)

	if err := f.store.Save(ctx, storage.KeyWorkoutHistory, sessions); err != nil {
		return nil, f.persistErr("save", err)
	}

	f.metricsManager.CounterSurveysSubmitted.Inc()
	updated := *record
	return &updated, nil
}

func intPtr(v int) *int {
	return &v
}
