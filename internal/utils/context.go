package utils

import (
	"context"
)

// RunScope carries the orchestrator-supplied identity of a single task
// invocation. Tasks tag tracing spans with it; it holds no task input.
type RunScope struct {
	ExecutionID string
	FlowID      string
	Namespace   string
	TaskID      string
}

var runScopeKey = "RUN_SCOPE"

func WithRunScope(ctx context.Context, scope *RunScope) context.Context {
	return context.WithValue(ctx, runScopeKey, scope)
}

func GetRunScope(ctx context.Context) *RunScope {
	scope, ok := ctx.Value(runScopeKey).(*RunScope)
	if !ok {
		return new(RunScope)
	}
	return scope
}
