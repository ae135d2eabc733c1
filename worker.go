package component

import (
	"context"
)

// Hooks contain the functions called by the worker to control the underlying
// service.
type Hooks struct {
	// A friendly name for the service (optional)
	Name string
	// Start the service. This function is expected to return once the
	// service is ready, leaving any long-running work to goroutines it owns.
	// Returning an error causes the worker to transition to Failed, unless the
	// error is ignored by the Error hook.
	Start ContextHook
	// Stops the service (optional). This function is expected to block until
	// the service has released its resources. It is only called if Start had
	// succeeded. The worker transitions to Stopped whatever the outcome.
	Stop ContextHook
	// Error receives error events. The event struct contains the context
	// passed to the hook from which it occured, as well as the error itself.
	// The error returned by this function will be passed to the caller. If nil
	// is returned, the error is ignored. This can be useful to suppress errors,
	// for example http.ErrServerClosed when the worker wraps an HTTP server.
	Error ErrorHook
}

func (h Hooks) copy() *Hooks {
	return &h
}

// Worker is a leaf Component that is started and stopped based on a set of
// provided hooks.
type Worker struct {
	base
	// Service hooks
	hooks *Hooks
}

// NewWorker creates a Worker with the provided hooks. It returns nil if either
// the hook structure or the start hook is nil.
func NewWorker(hooks *Hooks) *Worker {
	return NewWorkerWithOptions(hooks, nil)
}

// NewWorkerWithOptions creates a Worker with the provided hooks and options. It
// returns nil if either the hook structure or the start hook is nil.
func NewWorkerWithOptions(hooks *Hooks, opts *Options) *Worker {
	if hooks == nil || hooks.Start == nil {
		return nil
	}
	w := &Worker{hooks: hooks.copy()}
	w.setup(hooks.Name, opts)
	return w
}

// Start the worker. See StartCtx.
func (w *Worker) Start() error {
	return w.StartCtx(context.Background())
}

// StartCtx runs the Start hook. This function returns a non-nil error if the
// start hook returns an error, unless the error is ignored by the Error hook.
func (w *Worker) StartCtx(ctx context.Context) error {
	w.mut.Lock()
	defer w.mut.Unlock()

	if err := w.expect("start", Idle); err != nil {
		return err
	}
	w.transition(ctx, Starting, nil)

	if err := w.handleError(ctx, w.hooks.Start(ctx)); err != nil {
		w.transition(ctx, Failed, err)
		return err
	}

	w.transition(ctx, Started, nil)
	return nil
}

// Stop the worker. See StopCtx.
func (w *Worker) Stop() error {
	return w.StopCtx(context.Background())
}

// StopCtx runs the Stop hook if the worker had started. This function returns
// a non-nil error if the stop hook returns an error, unless the error is
// ignored by the Error hook.
func (w *Worker) StopCtx(ctx context.Context) error {
	w.mut.Lock()
	defer w.mut.Unlock()

	switch w.State() {
	case Stopped:
		return nil
	case Idle:
		w.transition(ctx, Stopped, nil)
		return nil
	}
	if err := w.expect("stop", Started, Failed); err != nil {
		return err
	}
	from := w.transition(ctx, Stopping, nil)

	var err error
	if from == Started && w.hooks.Stop != nil {
		err = w.handleError(ctx, w.hooks.Stop(ctx))
	}

	w.transition(ctx, Stopped, err)
	return err
}

// handleError passes the error returned by a hook to the Error hook, if
// defined, to transform it. It logs what remains.
func (w *Worker) handleError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// Pass / transform error
	if w.hooks.Error != nil {
		err = w.hooks.Error(Event{
			Context: ctx,
			Name:    w.name,
			Error:   err,
			From:    w.State(),
		})
		if err == nil {
			return nil
		}
	}

	w.error(err, "received error")
	return err
}
