// Package component provides the lifecycle and composition primitives of a
// long-running service host: containers of listeners and child components that
// are started and stopped in a well-defined order.
//
// A typical web context registering a couple of listeners could look like:
//
//	ctx := component.NewContainer("context", &component.Options{
//	    Logger: logger,
//	})
//	ctx.Register(component.NewListener(openPool, closePool))
//	ctx.Register(component.NewListener(warmCache, nil))
//	ctx.AddChild(component.NewWorker(&component.Hooks{
//	    Name:  "sessions",
//	    Start: sessions.Start,
//	    Stop:  sessions.Stop,
//	}))
//
//	if err := ctx.Start(); err != nil {
//	    // ctx is Failed: the listeners that initialized before the failing
//	    // one are still active.
//	}
//	defer ctx.Stop()
//
// Starting a container initializes its listeners and children in
// registration order, and stops at the first failure, returning the error
// unchanged. Stopping it tears down whatever had been initialized, in reverse
// order. A failing teardown does not prevent the next ones from running; the
// failures are aggregated into a single *TeardownError.
//
// Out of the box, this provides you with:
//
//	• Container, ordering listeners and children
//	• Worker, a leaf component built from start and stop hooks
//	• SwapSlot, holding a single child which can be hot-swapped
//	• Aggregator, collecting the errors of an operation carrying on past
//	  failures
//	• Query and QueryTree, finding registered listeners by type
//	• Logging by providing your logger
//	• Observers to listen to the component state changes and errors
//
// A SwapSlot lets a host replace the container serving requests at runtime:
//
//	slot := component.NewSwapSlot("handler", nil)
//	slot.Start()
//
//	next := newContext()
//	next.Start()
//	if err := slot.Replace(next); err != nil {
//	    // next is serving, but the previous context failed to stop cleanly.
//	}
package component
