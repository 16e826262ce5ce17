package adaptation

import (
	"context"

	"github.com/2beens/gymcoach/internal/history"
	"github.com/2beens/gymcoach/internal/program"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=adaptation_test

type AnalyzeRequest struct {
	ProgramID string                   `json:"programId"`
	Program   program.SavedProgram     `json:"program"`
	History   []history.WorkoutSession `json:"history"`
}

// Analyzer produces adaptation suggestions for a program from its workout history.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) ([]program.Adaptation, error)
	// Clear drops a suggestion once it has been implemented.
	Clear(ctx context.Context, adaptationID string) error
}
