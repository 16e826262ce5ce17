package coach

import (
	"context"

	"github.com/2beens/gymcoach/internal/adaptation"
	"github.com/2beens/gymcoach/internal/finalize"
	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/session"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=coach_test

type SessionFinalizer interface {
	Finalize(ctx context.Context, ctrl *session.Controller, notes string) (*history.WorkoutSession, error)
	Persist(ctx context.Context, record *history.WorkoutSession) error
	SubmitSurvey(ctx context.Context, sessionID string, survey finalize.Survey) (*history.WorkoutSession, error)
}

type AdaptationApplicator interface {
	Apply(ctx context.Context, programID string, a program.Adaptation) (adaptation.Result, error)
	ApplyAll(ctx context.Context, programID string, adaptations []program.Adaptation) (adaptation.Result, error)
}

type SuggestionSource interface {
	Active(ctx context.Context, programID string) ([]program.Adaptation, error)
}

// HeartRateMonitor feeds the live heart rate shown next to the active session.
type HeartRateMonitor interface {
	Start(ctx context.Context)
	Stop()
	Current() int
}
