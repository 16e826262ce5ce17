package finalize_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2beens/gymcoach/internal/finalize"
	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/session"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testStart = time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC)
	testEnd   = testStart.Add(47*time.Minute + 31*time.Second)
)

type flakyStore struct {
	storage.Store
	saveErr error
}

func (s *flakyStore) Save(ctx context.Context, key string, value any) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.Store.Save(ctx, key, value)
}

func f(v float64) *float64 {
	return &v
}

func i(v int) *int {
	return &v
}

func finishedController(t *testing.T) *session.Controller {
	t.Helper()
	c, err := session.New(program.ActiveProgram{
		ProgramID:   "p1",
		ProgramName: "Push Day",
		Exercises: []program.Exercise{
			{ID: "e1", Name: "Barbell Bench Press", Sets: program.Num(2), Reps: program.Num(8)},
			{ID: "e2", Name: "Overhead Press", Sets: program.Num(2), Reps: program.Num(10)},
			{ID: "e3", Name: "Cable Fly", Sets: program.Num(1), Reps: program.Num(15)},
		},
	}, session.WithClock(func() time.Time { return testStart }))
	require.NoError(t, err)

	require.NoError(t, c.CompleteSet(0, 0, f(135), f(8)))
	require.NoError(t, c.CompleteSet(0, 1, f(140), f(6)))
	require.NoError(t, c.CompleteSet(1, 0, f(95), f(10)))
	require.NoError(t, c.SkipExercise(1))
	require.NoError(t, c.SkipExercise(2))
	require.True(t, c.CanFinalize())
	return c
}

func newTestFinalizer(store storage.Store, health finalize.HealthMetricsProvider) (*finalize.Finalizer, *metrics.Manager) {
	metricsManager := metrics.NewTestManager()
	return finalize.NewFinalizer(
		store,
		health,
		metricsManager,
		finalize.WithClock(func() time.Time { return testEnd }),
		finalize.WithIDGenerator(func() string { return "session-1" }),
	), metricsManager
}

func TestFinalize(t *testing.T) {
	ctrl := gomock.NewController(t)
	healthMock := NewMockHealthMetricsProvider(ctrl)
	healthMock.EXPECT().
		GetWorkoutMetrics(gomock.Any(), testStart, testEnd).
		Return(&history.HealthMetrics{AvgHeartRate: i(128), Source: "watch"}, nil)

	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(ctx, storage.KeyWorkoutHistory, []history.WorkoutSession{{ID: "older"}}))

	finalizer, metricsManager := newTestFinalizer(store, healthMock)
	record, err := finalizer.Finalize(ctx, finishedController(t), "felt strong")
	require.NoError(t, err)

	assert.Equal(t, "session-1", record.ID)
	assert.Equal(t, "p1", record.ProgramID)
	assert.Equal(t, "Push Day", record.ProgramName)
	assert.Equal(t, testEnd, record.Date)
	assert.Equal(t, 48, record.Duration)
	assert.True(t, record.Completed)
	assert.Equal(t, "felt strong", record.Notes)
	require.NotNil(t, record.HealthMetrics)
	assert.Equal(t, 128, *record.HealthMetrics.AvgHeartRate)

	require.Len(t, record.Exercises, 3)
	assert.Equal(t, []history.CompletedSet{
		{SetNumber: 1, Weight: 135, Reps: 8, RestTime: 60, Completed: true},
		{SetNumber: 2, Weight: 140, Reps: 6, RestTime: 60, Completed: true},
	}, record.Exercises[0].Sets)
	// skipped exercises are kept with no sets, even with completed data
	assert.Equal(t, "Overhead Press", record.Exercises[1].Name)
	assert.NotNil(t, record.Exercises[1].Sets)
	assert.Empty(t, record.Exercises[1].Sets)
	assert.Empty(t, record.Exercises[2].Sets)

	sessions, err := history.Load(ctx, store)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "session-1", sessions[0].ID)
	assert.Equal(t, "older", sessions[1].ID)
	assert.Nil(t, sessions[0].SorenessLevel)

	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterSessionsFinalized))
}

func TestFinalize_UsesLatestSetValues(t *testing.T) {
	c, err := session.New(program.ActiveProgram{
		ProgramID: "p1",
		Exercises: []program.Exercise{
			{ID: "e1", Name: "Squat", Sets: program.Num(1)},
			{ID: "e2", Name: "Lunge", Sets: program.Num(1)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, c.CompleteSet(0, 0, f(225), f(5)))
	// reopen and complete again through an edit round trip
	require.NoError(t, c.EditSet(0, 0))
	require.NoError(t, c.CompleteSet(0, 0, f(230), f(5)))
	require.NoError(t, c.SkipExercise(1))

	finalizer, _ := newTestFinalizer(storage.NewMemoryStore(), nil)
	record, err := finalizer.Finalize(context.Background(), c, "")
	require.NoError(t, err)
	require.Len(t, record.Exercises, 2)
	assert.Equal(t, 230.0, record.Exercises[0].Sets[0].Weight)
	assert.Nil(t, record.HealthMetrics)
}

func TestFinalize_NotFinalizable(t *testing.T) {
	c, err := session.New(program.ActiveProgram{
		ProgramID: "p1",
		Exercises: []program.Exercise{{ID: "e1", Name: "Squat", Sets: program.Num(2)}},
	})
	require.NoError(t, err)
	require.NoError(t, c.CompleteSet(0, 0, f(225), f(5)))

	store := storage.NewMemoryStore()
	finalizer, _ := newTestFinalizer(store, nil)
	record, err := finalizer.Finalize(context.Background(), c, "")
	assert.ErrorIs(t, err, session.ErrNotFinalizable)
	assert.Nil(t, record)

	sessions, err := history.Load(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestFinalize_HealthErrorIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	healthMock := NewMockHealthMetricsProvider(ctrl)
	healthMock.EXPECT().
		GetWorkoutMetrics(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("health service down"))

	finalizer, metricsManager := newTestFinalizer(storage.NewMemoryStore(), healthMock)
	record, err := finalizer.Finalize(context.Background(), finishedController(t), "")
	require.NoError(t, err)
	assert.Nil(t, record.HealthMetrics)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterHealthMetricsErrors))
}

func TestFinalize_PersistFailure(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: storage.NewMemoryStore(), saveErr: errors.New("disk full")}
	finalizer, metricsManager := newTestFinalizer(store, nil)

	c := finishedController(t)
	record, err := finalizer.Finalize(ctx, c, "")
	require.ErrorIs(t, err, finalize.ErrPersist)
	require.NotNil(t, record)
	assert.Equal(t, "session-1", record.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterStorageErrors.WithLabelValues("save", storage.KeyWorkoutHistory)))
	// session state untouched
	assert.True(t, c.CanFinalize())

	store.saveErr = nil
	require.NoError(t, finalizer.Persist(ctx, record))
	require.NoError(t, finalizer.Persist(ctx, record))

	sessions, err := history.Load(ctx, store)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "session-1", sessions[0].ID)
}

func TestSubmitSurvey(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	finalizer, metricsManager := newTestFinalizer(store, nil)

	record, err := finalizer.Finalize(ctx, finishedController(t), "")
	require.NoError(t, err)

	for _, survey := range []finalize.Survey{
		{},
		{SorenessLevel: i(3), EnergyLevel: i(3)},
		{SorenessLevel: i(0), EnergyLevel: i(3), MotivationLevel: i(3)},
		{SorenessLevel: i(3), EnergyLevel: i(6), MotivationLevel: i(3)},
	} {
		_, err := finalizer.SubmitSurvey(ctx, record.ID, survey)
		assert.ErrorIs(t, err, finalize.ErrSurveyIncomplete)
	}

	updated, err := finalizer.SubmitSurvey(ctx, record.ID, finalize.Survey{
		SorenessLevel:   i(2),
		EnergyLevel:     i(4),
		MotivationLevel: i(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, *updated.SorenessLevel)
	assert.Equal(t, 4, *updated.EnergyLevel)
	assert.Equal(t, 5, *updated.MotivationLevel)

	sessions, err := history.Load(ctx, store)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 5, *sessions[0].MotivationLevel)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterSurveysSubmitted))

	_, err = finalizer.SubmitSurvey(ctx, "unknown", finalize.Survey{
		SorenessLevel:   i(1),
		EnergyLevel:     i(1),
		MotivationLevel: i(1),
	})
	assert.ErrorIs(t, err, finalize.ErrSessionNotFound)
}

func TestSubmitSurvey_ReinsertsMissingRecord(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	finalizer, _ := newTestFinalizer(store, nil)

	record, err := finalizer.Finalize(ctx, finishedController(t), "")
	require.NoError(t, err)

	// history was rewritten elsewhere in the meantime
	require.NoError(t, store.Save(ctx, storage.KeyWorkoutHistory, []history.WorkoutSession{{ID: "a"}, {ID: "b"}}))

	_, err = finalizer.SubmitSurvey(ctx, record.ID, finalize.Survey{
		SorenessLevel:   i(3),
		EnergyLevel:     i(3),
		MotivationLevel: i(3),
	})
	require.NoError(t, err)

	sessions, err := history.Load(ctx, store)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, record.ID, sessions[0].ID)
	assert.Equal(t, 3, *sessions[0].SorenessLevel)
	assert.Equal(t, "a", sessions[1].ID)
}
