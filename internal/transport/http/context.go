package http

import (
	"context"

	"invctl/internal/services"
)

type contextKey string

const runContextKey contextKey = "analysis_run"

func withRun(ctx context.Context, result *services.Result) context.Context {
	return context.WithValue(ctx, runContextKey, result)
}

// runFromContext returns the run loaded by RunCtx. Handlers behind RunCtx
// may assume it is present.
func runFromContext(ctx context.Context) *services.Result {
	result, _ := ctx.Value(runContextKey).(*services.Result)
	return result
}
