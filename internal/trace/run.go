package trace

import (
	"context"

	"github.com/google/uuid"
)

type runKey struct{}

// NewRunID returns a fresh identifier for one driver run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRun attaches a run id; spans begun with BeginCtx carry it.
func WithRun(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runKey{}, id)
}

// RunFromContext returns the run id or "".
func RunFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runKey{}).(string)
	return id
}
