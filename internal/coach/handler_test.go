package coach_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/gymcoach/internal/catalog"
	"github.com/2beens/gymcoach/internal/coach"
	"github.com/2beens/gymcoach/internal/finalize"
	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/session"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPlansJSON = `[
  {
    "id": "flat-1",
    "name": "Full Body",
    "duration": 60,
    "exercises": [
      {"id": "e1", "name": "Barbell Bench Press", "sets": 2, "reps": 8, "weight": 135, "restTime": 90},
      {"id": "e2", "name": "Cable Fly", "sets": 1, "reps": 15, "weight": 30}
    ]
  },
  {
    "id": "weekly-1",
    "name": "Push Pull",
    "weeklyPlan": {
      "weekDays": [
        {"day": 1, "name": "Push", "exercises": [
          {"id": "e1", "name": "Barbell Bench Press", "sets": 3, "reps": 8, "weight": 135}
        ]}
      ]
    }
  },
  {
    "id": "broken-1",
    "name": "No Exercises"
  }
]`

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(_ context.Context, _ string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	return &redis_rate.Result{Limit: limit, Allowed: 1, Remaining: limit.Rate}, nil
}

type testEnv struct {
	router         *mux.Router
	store          storage.Store
	metricsManager *metrics.Manager
	applicator     *MockAdaptationApplicator
	suggestions    *MockSuggestionSource
	heartRate      *MockHeartRateMonitor
}

func newTestEnv(t *testing.T, newFinalizer func(store storage.Store, mm *metrics.Manager) coach.SessionFinalizer) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	store := storage.NewMemoryStore()
	var plans []program.SavedProgram
	require.NoError(t, json.Unmarshal([]byte(testPlansJSON), &plans))
	require.NoError(t, store.Save(context.Background(), storage.KeySavedWorkoutPlans, plans))

	exerciseCatalog, err := catalog.Default()
	require.NoError(t, err)

	env := &testEnv{
		router:         mux.NewRouter(),
		store:          store,
		metricsManager: metrics.NewTestManager(),
		applicator:     NewMockAdaptationApplicator(ctrl),
		suggestions:    NewMockSuggestionSource(ctrl),
		heartRate:      NewMockHeartRateMonitor(ctrl),
	}
	env.heartRate.EXPECT().Current().Return(72).AnyTimes()

	if newFinalizer == nil {
		newFinalizer = func(store storage.Store, mm *metrics.Manager) coach.SessionFinalizer {
			return finalize.NewFinalizer(store, nil, mm, finalize.WithIDGenerator(func() string { return "session-1" }))
		}
	}

	h := coach.NewHandler(coach.NewHandlerParams{
		Store:          store,
		Catalog:        exerciseCatalog,
		Sessions:       session.NewManager(env.metricsManager),
		Finalizer:      newFinalizer(store, env.metricsManager),
		Applicator:     env.applicator,
		Suggestions:    env.suggestions,
		HeartRate:      env.heartRate,
		MetricsManager: env.metricsManager,
	})
	h.SetupRoutes(env.router, allowAllLimiter{}, 10)

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) startSession(t *testing.T, programID string, dayIndex int) snapshotBody {
	t.Helper()
	e.heartRate.EXPECT().Start(gomock.Any())
	rr := e.do(t, http.MethodPost, "/session", map[string]any{"programId": programID, "dayIndex": dayIndex})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeSnapshot(t, rr)
}

type snapshotBody struct {
	ProgramID string `json:"programId"`
	Cursor    struct {
		ExerciseIndex int `json:"exerciseIndex"`
		SetIndex      int `json:"setIndex"`
	} `json:"cursor"`
	CompletionRate int  `json:"completionRate"`
	CanFinalize    bool `json:"canFinalize"`
	HeartRate      int  `json:"heartRate"`
	Exercises      []struct {
		Name   string `json:"name"`
		Status string `json:"status"`
		Sets   []struct {
			Weight    float64 `json:"weight"`
			Completed bool    `json:"completed"`
		} `json:"sets"`
	} `json:"exercises"`
}

func decodeSnapshot(t *testing.T, rr *httptest.ResponseRecorder) snapshotBody {
	t.Helper()
	var snap snapshotBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	return snap
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}
