package coach

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/gymcoach/internal/catalog"
	"github.com/2beens/gymcoach/internal/finalize"
	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/session"
	"github.com/2beens/gymcoach/internal/storage"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var errExerciseNotInCatalog = errors.New("exercise not in catalog")

type startSessionRequest struct {
	ProgramID string `json:"programId"`
	DayIndex  int    `json:"dayIndex"`
}

type setRequest struct {
	ExerciseIndex int      `json:"exerciseIndex"`
	SetIndex      int      `json:"setIndex"`
	Weight        *float64 `json:"weight"`
	Reps          *float64 `json:"reps"`
}

type substituteRequest struct {
	Name string `json:"name"`
}

type finishRequest struct {
	Notes string `json:"notes"`
}

type sessionResponse struct {
	session.Snapshot
	HeartRate int `json:"heartRate,omitempty"`
}

type finishFailedResponse struct {
	Error   string                  `json:"error"`
	Session *history.WorkoutSession `json:"session"`
}

func (h *Handler) writeSnapshot(w http.ResponseWriter, snap session.Snapshot, statusCode int) {
	resp := sessionResponse{Snapshot: snap}
	if h.heartRate != nil {
		resp.HeartRate = h.heartRate.Current()
	}
	pkg.WriteJSON(w, resp, statusCode)
}

// mutate runs fn on the active session and responds with the resulting snapshot.
func (h *Handler) mutate(w http.ResponseWriter, op string, fn func(c *session.Controller) error) {
	var snap session.Snapshot
	err := h.sessions.Do(func(c *session.Controller) error {
		if err := fn(c); err != nil {
			return err
		}
		snap = c.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, op, err)
		return
	}
	h.writeSnapshot(w, snap, http.StatusOK)
}

func (h *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.start")
	defer span.End()

	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "start session", err)
		return
	}
	if req.ProgramID == "" {
		writeError(w, "start session", fmt.Errorf("%w: programId empty", ErrInvalidRequest))
		return
	}
	span.SetAttributes(
		attribute.String("program.id", req.ProgramID),
		attribute.Int("program.day", req.DayIndex),
	)

	ctrl, err := h.newController(ctx, req.ProgramID, req.DayIndex)
	if err != nil {
		writeError(w, "start session", err)
		return
	}

	h.sessions.Start(ctrl)
	h.metricsManager.CounterSessionsStarted.Inc()
	if h.heartRate != nil {
		// outlives the request
		h.heartRate.Start(context.WithoutCancel(ctx))
	}

	log.Debugf("session started [program: %s, day: %d]", req.ProgramID, req.DayIndex)

	var snap session.Snapshot
	if err := h.sessions.Do(func(c *session.Controller) error {
		snap = c.Snapshot()
		return nil
	}); err != nil {
		writeError(w, "start session", err)
		return
	}
	h.writeSnapshot(w, snap, http.StatusCreated)
}

func (h *Handler) newController(ctx context.Context, programID string, dayIndex int) (*session.Controller, error) {
	var plans []program.SavedProgram
	if _, err := h.store.Load(ctx, storage.KeySavedWorkoutPlans, &plans); err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	idx := program.FindPlan(plans, programID)
	if idx < 0 {
		return nil, program.ErrPlanNotFound
	}

	active, err := plans[idx].Activate(dayIndex)
	if err != nil {
		return nil, err
	}

	var opts []session.Option
	sessions, err := history.Load(ctx, h.store)
	if err != nil {
		// hints are optional
		log.Warnf("start session, load workout history: %s", err)
	} else {
		opts = append(opts, session.WithHistory(history.Build(sessions, active.ProgramID, active.ProgramName)))
	}

	return session.New(active, opts...)
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.get")
	defer span.End()

	h.mutate(w, "get session", func(*session.Controller) error {
		return nil
	})
}

func (h *Handler) HandleCompleteSet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.completeSet")
	defer span.End()

	var req setRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "complete set", err)
		return
	}

	h.mutate(w, "complete set", func(c *session.Controller) error {
		if err := c.CompleteSet(req.ExerciseIndex, req.SetIndex, req.Weight, req.Reps); err != nil {
			return err
		}
		h.metricsManager.CounterSetsCompleted.Inc()
		return nil
	})
}

func (h *Handler) HandleEditSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "edit set", err)
		return
	}

	h.mutate(w, "edit set", func(c *session.Controller) error {
		return c.EditSet(req.ExerciseIndex, req.SetIndex)
	})
}

func (h *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "add set", err)
		return
	}

	h.mutate(w, "add set", func(c *session.Controller) error {
		return c.AddSet(req.ExerciseIndex)
	})
}

func (h *Handler) HandleRemoveSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "remove set", err)
		return
	}

	h.mutate(w, "remove set", func(c *session.Controller) error {
		return c.RemoveSet(req.ExerciseIndex, req.SetIndex)
	})
}

func (h *Handler) HandleAdvance(w http.ResponseWriter, _ *http.Request) {
	h.mutate(w, "advance exercise", func(c *session.Controller) error {
		return c.AdvanceExercise()
	})
}

func (h *Handler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	h.withIndex(w, r, "navigate to exercise", func(c *session.Controller, index int) error {
		return c.NavigateToExercise(index)
	})
}

func (h *Handler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	h.withIndex(w, r, "skip exercise", func(c *session.Controller, index int) error {
		return c.SkipExercise(index)
	})
}

func (h *Handler) HandleUnskip(w http.ResponseWriter, r *http.Request) {
	h.withIndex(w, r, "unskip exercise", func(c *session.Controller, index int) error {
		return c.Unskip(index)
	})
}

func (h *Handler) withIndex(w http.ResponseWriter, r *http.Request, op string, fn func(c *session.Controller, index int) error) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, op, err)
		return
	}
	h.mutate(w, op, func(c *session.Controller) error {
		return fn(c, index)
	})
}

func (h *Handler) HandleSubstitute(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.substitute")
	defer span.End()

	var req substituteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "substitute exercise", err)
		return
	}
	entry, found := h.catalog.Lookup(req.Name)
	if !found {
		writeError(w, "substitute exercise", fmt.Errorf("%q: %w", req.Name, errExerciseNotInCatalog))
		return
	}
	span.SetAttributes(attribute.String("exercise.name", entry.Name))

	h.withIndex(w, r, "substitute exercise", func(c *session.Controller, index int) error {
		if err := c.Substitute(index, entry); err != nil {
			return err
		}
		h.metricsManager.CounterSubstitutions.Inc()
		return nil
	})
}

// HandleFinish finalizes the active session. When the record cannot be stored, the
// session stays active and the next finish retries storing the same record.
func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.finish")
	defer span.End()

	var req finishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "finish session", err)
		return
	}

	var (
		record   *history.WorkoutSession
		finished *session.Controller
	)
	err := h.sessions.Do(func(c *session.Controller) error {
		var err error
		record, err = h.finish(ctx, c, req.Notes)
		if err != nil {
			return err
		}
		finished = c
		return nil
	})
	if errors.Is(err, finalize.ErrPersist) && record != nil {
		log.Errorf("finish session %s: %s", record.ID, err)
		pkg.WriteJSON(w, finishFailedResponse{
			Error:   "workout could not be saved, try again",
			Session: record,
		}, http.StatusInternalServerError)
		return
	}
	if err != nil {
		writeError(w, "finish session", err)
		return
	}

	h.sessions.End(finished)
	if h.heartRate != nil {
		h.heartRate.Stop()
	}

	pkg.WriteJSON(w, record, http.StatusCreated)
}

func (h *Handler) finish(ctx context.Context, c *session.Controller, notes string) (*history.WorkoutSession, error) {
	if h.pending != nil && h.pending.ctrl == c {
		record := h.pending.record
		if err := h.finalizer.Persist(ctx, record); err != nil {
			return record, err
		}
		h.pending = nil
		return record, nil
	}

	record, err := h.finalizer.Finalize(ctx, c, notes)
	if errors.Is(err, finalize.ErrPersist) && record != nil {
		h.pending = &pendingRecord{ctrl: c, record: record}
	}
	return record, err
}

func (h *Handler) HandleSubmitSurvey(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.survey")
	defer span.End()

	sessionID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("session.id", sessionID))

	var survey finalize.Survey
	if err := decodeJSON(r, &survey); err != nil {
		writeError(w, "submit survey", err)
		return
	}

	record, err := h.finalizer.SubmitSurvey(ctx, sessionID, survey)
	if err != nil {
		writeError(w, "submit survey", err)
		return
	}

	pkg.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) HandleListExercises(w http.ResponseWriter, _ *http.Request) {
	exercises := h.catalog.All()
	pkg.WriteJSON(w, struct {
		Exercises []catalog.Entry `json:"exercises"`
		Total     int             `json:"total"`
	}{
		Exercises: exercises,
		Total:     len(exercises),
	}, http.StatusOK)
}

func (h *Handler) HandleAlternatives(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.alternatives")
	defer span.End()

	name := mux.Vars(r)["name"]
	alternatives := h.resolver.Alternatives(ctx, name)

	pkg.WriteJSON(w, struct {
		Exercise     string          `json:"exercise"`
		Alternatives []catalog.Entry `json:"alternatives"`
	}{
		Exercise:     name,
		Alternatives: alternatives,
	}, http.StatusOK)
}
