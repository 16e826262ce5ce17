package finalize

import (
	"context"
	"time"

	"github.com/2beens/gymcoach/internal/history"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=finalize_test

type HealthMetricsProvider interface {
	GetWorkoutMetrics(ctx context.Context, start, end time.Time) (*history.HealthMetrics, error)
}
