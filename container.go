package component

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Container is a Component composed of an ordered set of listeners and child
// components. Starting it initializes them in registration order and stops at
// the first failure. Stopping it tears down the ones that were initialized, in
// reverse order, carrying on past individual failures.
//
// Listeners and children share the same ordering: a child added with AddChild
// is started when its turn comes in the registration order, and stopped in
// the reverse order.
//
// Listener hooks run with the container lock held. They may query the
// container and read its state, but must not start, stop or register into it.
type Container struct {
	base
	// Guards reads of the registry by queries; writes also hold mut
	regMut  sync.RWMutex
	reg     registry
	failure atomic.Pointer[InitializationError]
}

// NewContainer creates an Idle container.
func NewContainer(name string, opts *Options) *Container {
	c := &Container{}
	c.setup(name, opts)
	return c
}

// Register appends a listener to the container. Registering is permitted
// while the container is Idle or Started. When Started, the listener is
// initialized straight away and the registration is rolled back if its
// Initialize hook fails, in which case the hook error is returned as is.
func (c *Container) Register(l Listener) error {
	if l == nil {
		return fmt.Errorf("cannot register a nil listener")
	}
	return c.register(context.Background(), l, l)
}

// AddChild appends a child component to the container, following the same
// rules as Register. The child is started by the container, and stopped by
// it.
func (c *Container) AddChild(child Component) error {
	if child == nil {
		return fmt.Errorf("cannot add a nil child")
	}
	if sameValue(child, Component(c)) {
		return fmt.Errorf("cannot add container %q to itself", c.name)
	}
	return c.register(context.Background(), child, &childListener{child: child})
}

// Deregister removes a listener from the container. If the listener had been
// initialized, it is torn down and the result of its Teardown hook is
// returned. An error satisfying IsNotRegistered is returned if the listener is
// unknown.
func (c *Container) Deregister(l Listener) error {
	return c.deregister(context.Background(), l)
}

// RemoveChild removes a child component from the container, stopping it if it
// had been started by the container.
func (c *Container) RemoveChild(child Component) error {
	return c.deregister(context.Background(), child)
}

func (c *Container) register(ctx context.Context, value interface{},
	l Listener) error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if err := c.expect("register", Idle, Started); err != nil {
		return err
	}

	c.regMut.Lock()
	e, err := c.reg.add(value, l)
	c.regMut.Unlock()
	if err != nil {
		return err
	}

	if c.State() != Started {
		return nil
	}
	if err := l.Initialize(ctx); err != nil {
		c.error(err, "listener failed to initialize", "index", e.index)
		c.regMut.Lock()
		c.reg.drop(e)
		c.regMut.Unlock()
		return err
	}
	e.activated = true
	return nil
}

func (c *Container) deregister(ctx context.Context, value interface{}) error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if err := c.expect("deregister", Idle, Started); err != nil {
		return err
	}

	c.regMut.Lock()
	e, err := c.reg.remove(value)
	c.regMut.Unlock()
	if err != nil {
		return err
	}

	if !e.needsTeardown() {
		return nil
	}
	e.activated, e.failed = false, false
	if err := e.listener.Teardown(ctx); err != nil {
		c.error(err, "listener failed to tear down", "index", e.index)
		return err
	}
	return nil
}

// Start starts the container. See StartCtx.
func (c *Container) Start() error {
	return c.StartCtx(context.Background())
}

// StartCtx initializes the registered listeners and children in registration
// order. On the first failure, the remaining ones are left untouched, the
// container transitions to Failed and the hook's error is returned unchanged.
// The listeners initialized so far remain activated until Stop is called.
// A panicking hook also leaves the container Failed before the panic carries
// on. Starting a container which is not Idle returns an error satisfying
// IsInvalidState.
func (c *Container) StartCtx(ctx context.Context) error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if err := c.expect("start", Idle); err != nil {
		return err
	}
	c.transition(ctx, Starting, nil)

	var current *entry
	defer func() {
		if r := recover(); r != nil {
			if c.State() == Starting {
				c.fail(ctx, current, fmt.Errorf("listener panicked: %v", r))
			}
			panic(r)
		}
	}()

	for _, e := range c.reg.entries {
		current = e
		if err := e.listener.Initialize(ctx); err != nil {
			c.fail(ctx, e, err)
			return err
		}
		e.activated = true
	}

	c.transition(ctx, Started, nil)
	return nil
}

// fail records the failure of e to initialize and moves the container to
// Failed. A child refusing to start because it was not Idle has not been
// started by this container, so it is not marked for teardown.
func (c *Container) fail(ctx context.Context, e *entry, err error) {
	failure := &InitializationError{
		Container: c.name,
		Index:     e.index,
		Listener:  e.value,
		Err:       err,
	}
	e.failed = !IsInvalidState(err)
	c.failure.Store(failure)
	c.error(err, "listener failed to initialize", "index", e.index)
	c.transition(ctx, Failed, failure)
}

// Stop stops the container. See StopCtx.
func (c *Container) Stop() error {
	return c.StopCtx(context.Background())
}

// StopCtx tears down the activated listeners and children in reverse
// registration order, along with a child whose start had failed. A failing
// Teardown hook does not prevent the next ones from running; the failures are
// returned as a single *TeardownError whose message is the one of the first
// failure. The container ends Stopped in any case. Stopping a Stopped
// container is a no-op, and stopping an Idle one moves it to Stopped directly.
func (c *Container) StopCtx(ctx context.Context) error {
	c.mut.Lock()
	defer c.mut.Unlock()

	switch c.State() {
	case Stopped:
		return nil
	case Idle:
		c.transition(ctx, Stopped, nil)
		return nil
	}
	if err := c.expect("stop", Started, Failed); err != nil {
		return err
	}
	c.transition(ctx, Stopping, nil)

	var agg Aggregator
	for _, e := range c.reg.teardownOrder() {
		e.activated, e.failed = false, false
		if err := e.listener.Teardown(ctx); err != nil {
			c.error(err, "listener failed to tear down", "index", e.index)
			agg.Record(err)
		}
	}

	err := agg.IntoReportedError()
	c.transition(ctx, Stopped, err)
	return err
}

// Failure returns an *InitializationError describing the listener that made
// the last start fail, or nil if the container never failed to start.
func (c *Container) Failure() error {
	if f := c.failure.Load(); f != nil {
		return f
	}
	return nil
}

// Listeners returns the registered listeners and children in registration
// order. The returned slice is a copy.
func (c *Container) Listeners() []interface{} {
	c.regMut.RLock()
	defer c.regMut.RUnlock()
	return c.reg.values()
}

// QueryFunc returns, in registration order, the registered listeners and
// children for which match returns true.
func (c *Container) QueryFunc(match func(interface{}) bool) []interface{} {
	var res []interface{}
	for _, v := range c.Listeners() {
		if match(v) {
			res = append(res, v)
		}
	}
	return res
}
