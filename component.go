package component

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Component represents a unit that can be started, stopped and queried for
// its state. Containers accept any Component as a child.
type Component interface {
	// Name provides a user-friendly name for the component, that is used in
	// the logs and in errors.
	Name() string
	// StartCtx starts the component. It blocks until the component is either
	// started or has failed.
	StartCtx(ctx context.Context) error
	// StopCtx stops the component. It blocks until the component is stopped.
	StopCtx(ctx context.Context) error
	// State returns the current state of the component. It never blocks.
	State() State
}

// Listener is notified by a Container at defined points of its lifecycle.
// Initialize is called when the container starts, in registration order.
// Teardown is called when the container stops, in reverse registration order,
// and only if Initialize had returned without error.
type Listener interface {
	Initialize(ctx context.Context) error
	Teardown(ctx context.Context) error
}

// Observable is implemented by the components of this package that post
// lifecycle events to observers.
type Observable interface {
	Name() string
	// Observe registers a chan on which the component will post lifecycle
	// events such as state changes and errors. No action is taken if ch is
	// nil. The chan is closed once the component is stopped.
	Observe(ch chan<- Event)
	// Unobserve removes the provided chan from the list of observers. No
	// action is taken if ch is nil or not in the list of observers.
	Unobserve(ch chan<- Event)
}

// Event is a struct passed to the observers of a component on a state change.
// It contains contextual information about the event.
type Event struct {
	// The context of the event, typically the one passed to the function from
	// which the event originated.
	Context context.Context
	// The name of the component.
	Name string
	// The error that caused this status change, if any.
	Error error
	// The previous status of the component.
	From State
	// The new status of the component.
	To State
}

// NewListener creates a Listener out of a pair of hooks. Either hook may be nil.
func NewListener(initialize, teardown ContextHook) Listener {
	return &funcListener{initialize: initialize, teardown: teardown}
}

type funcListener struct {
	initialize ContextHook
	teardown   ContextHook
}

func (l *funcListener) Initialize(ctx context.Context) error {
	if l.initialize == nil {
		return nil
	}
	return l.initialize(ctx)
}

func (l *funcListener) Teardown(ctx context.Context) error {
	if l.teardown == nil {
		return nil
	}
	return l.teardown(ctx)
}

// childListener drives a child component from the listener registry of its
// container.
type childListener struct {
	child Component
}

func (l *childListener) Initialize(ctx context.Context) error {
	return l.child.StartCtx(ctx)
}

func (l *childListener) Teardown(ctx context.Context) error {
	return l.child.StopCtx(ctx)
}

// base holds what every component of this package shares: identity, the
// state field, the lifecycle lock, observers and logging.
type base struct {
	name string
	opts *Options
	// Read without locking so State never blocks
	state atomic.Uint32
	// Serializes start, stop and registration
	mut sync.Mutex
	// Guards observers, separately from mut so observing never waits for a
	// lifecycle operation to complete
	obsMut    sync.Mutex
	observers []chan<- Event
}

func (b *base) setup(name string, opts *Options) {
	b.name = name
	b.opts = opts.orDefault()
	b.state.Store(uint32(Idle))
}

// Name provides a user-friendly name for the component.
func (b *base) Name() string {
	return b.name
}

// State returns the current state of the component.
func (b *base) State() State {
	return State(b.state.Load())
}

// Observe registers a chan on which the component will post lifecycle events
// such as state changes and errors. No action is taken if ch is nil. If the
// component is already stopped, ch is closed right away.
func (b *base) Observe(ch chan<- Event) {
	if ch == nil {
		return
	}
	b.obsMut.Lock()
	defer b.obsMut.Unlock()
	if b.State() == Stopped {
		close(ch)
		return
	}
	b.observers = append(b.observers, ch)
}

// Unobserve removes the provided chan from the list of observers. No action is
// taken if ch is nil or not in the list of observers.
func (b *base) Unobserve(ch chan<- Event) {
	b.obsMut.Lock()
	defer b.obsMut.Unlock()
	for i, o := range b.observers {
		if o == ch {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			break
		}
	}
}

// expect returns an invalid state error unless the current state is one of
// the allowed states. The caller must hold mut.
func (b *base) expect(op string, allowed ...State) error {
	current := b.State()
	for _, s := range allowed {
		if current == s {
			return nil
		}
	}
	return invalidState(op, current)
}

// transition moves the component to a new state, logs the change and notifies
// the observers. It returns the previous state. The caller must hold mut and
// have checked the current state with expect; a move the state machine does
// not allow is a bug and panics.
func (b *base) transition(ctx context.Context, to State, cause error) State {
	b.obsMut.Lock()
	defer b.obsMut.Unlock()

	from := b.State()
	if !CanTransition(from, to) {
		panic(fmt.Sprintf("component %q: illegal transition from %s to %s",
			b.name, from, to))
	}
	b.state.Store(uint32(to))
	if to != from {
		b.info("transitioned to state", "to", to.String(), "from",
			from.String())
	}

	event := Event{
		Context: ctx,
		Name:    b.name,
		Error:   cause,
		From:    from,
		To:      to,
	}
	isFinalState := to == Stopped
	for _, observer := range b.observers {
		observer <- event
		if isFinalState {
			close(observer)
		}
	}
	if isFinalState {
		b.observers = nil
	}

	return from
}

// info logs an information message.
func (b *base) info(msg string, keysAndValues ...interface{}) {
	if b.opts.Logger != nil {
		b.opts.Logger.Info(msg, append(keysAndValues, "name", b.name)...)
	}
}

// error logs an error
func (b *base) error(err error, msg string, keysAndValues ...interface{}) {
	if b.opts.Logger != nil {
		b.opts.Logger.Error(err, msg, append(keysAndValues, "name",
			b.name)...)
	}
}
