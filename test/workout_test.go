//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/program"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doJSON(ctx context.Context, method, path string, body any) (int, []byte) {
	t := s.T()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, &reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestWorkoutSession() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status, body := s.doJSON(ctx, "POST", "/session", map[string]any{"programId": "flat-1"})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = s.doJSON(ctx, "POST", "/session/sets/complete", map[string]any{
		"exerciseIndex": 0, "setIndex": 0, "weight": 135, "reps": 8,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	status, _ = s.doJSON(ctx, "POST", "/session/sets/complete", map[string]any{
		"exerciseIndex": 0, "setIndex": 1, "weight": 135, "reps": 8,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = s.doJSON(ctx, "POST", "/session/exercise/1/substitute", map[string]string{"name": "Front Squat"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"name":"Front Squat"`)

	status, _ = s.doJSON(ctx, "POST", "/session/sets/complete", map[string]any{
		"exerciseIndex": 1, "setIndex": 0, "weight": 155, "reps": 7,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = s.doJSON(ctx, "POST", "/session/finish", map[string]string{"notes": "solid"})
	require.Equal(t, http.StatusCreated, status, string(body))

	var record history.WorkoutSession
	require.NoError(t, json.Unmarshal(body, &record))
	assert.Equal(t, "flat-1", record.ProgramID)
	require.Len(t, record.Exercises, 2)
	assert.Equal(t, "Front Squat", record.Exercises[1].Name)
	require.NotNil(t, record.HealthMetrics)
	require.NotNil(t, record.HealthMetrics.AvgHeartRate)
	assert.Equal(t, 128, *record.HealthMetrics.AvgHeartRate)

	status, body = s.doJSON(ctx, "POST", "/history/"+record.ID+"/survey", map[string]int{
		"sorenessLevel": 2, "energyLevel": 4, "motivationLevel": 5,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	// persisted through the postgres kv store
	var raw []byte
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, "workoutHistory").Scan(&raw))
	var sessions []history.WorkoutSession
	require.NoError(t, json.Unmarshal(raw, &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, record.ID, sessions[0].ID)
	require.NotNil(t, sessions[0].EnergyLevel)
	assert.Equal(t, 4, *sessions[0].EnergyLevel)

	// second session shows last time's values
	status, body = s.doJSON(ctx, "POST", "/session", map[string]any{"programId": "flat-1"})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Contains(t, string(body), "last time: 135 lbs × 8 reps")
}

func (s *IntegrationTestSuite) TestAdaptations() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status, body := s.doJSON(ctx, "GET", "/programs/flat-1/adaptations", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"id":"rec-1"`)

	status, body = s.doJSON(ctx, "POST", "/programs/flat-1/adaptations/apply-all", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"applied":["rec-1"]`)

	// the analyzer keeps proposing it, it is implemented now
	status, body = s.doJSON(ctx, "GET", "/programs/flat-1/adaptations", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"total":0`)

	var raw []byte
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, "savedWorkoutPlans").Scan(&raw))
	var plans []program.SavedProgram
	require.NoError(t, json.Unmarshal(raw, &plans))
	require.Len(t, plans, 1)
	weight, ok := plans[0].Exercises[0].Weight.Float()
	require.True(t, ok)
	assert.Equal(t, 140.0, weight)
	assert.Contains(t, string(raw), `"createdBy"`)

	status, _ = s.doJSON(ctx, "POST", "/programs/missing/adaptations/apply-all", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
