package component

import (
	"context"
)

// ContextHook is a context-aware hook, as run by listeners and workers.
type ContextHook = func(context.Context) error

// Hook is a hook which does not need a context. See DropContext.
type Hook = func() error

// ErrorHook receives the errors returned by the hooks of a Worker, and
// returns the error to report, or nil to ignore it.
type ErrorHook = func(event Event) error
