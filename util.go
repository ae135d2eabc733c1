package component

import (
	"context"
	"reflect"
)

// DropContext is a helper function wrapping a context-naive hook as a context
// hook. The context provided to the resulting ContextHook is discarded.
func DropContext(hook Hook) ContextHook {
	if hook == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return hook()
	}
}

// StopComponent stops v if it is a Component, and does nothing otherwise. It
// is meant for deferred cleanups of values that may or may not have been
// built.
func StopComponent(v interface{}) error {
	c, ok := v.(Component)
	if !ok {
		return nil
	}
	if rv := reflect.ValueOf(c); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil
	}
	return c.StopCtx(context.Background())
}
