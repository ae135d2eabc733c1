package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// history records the hooks invoked across a test, in order.
type history struct {
	mut    sync.Mutex
	events []string
}

func (h *history) add(event string) {
	h.mut.Lock()
	defer h.mut.Unlock()
	h.events = append(h.events, event)
}

func (h *history) get() []string {
	h.mut.Lock()
	defer h.mut.Unlock()
	return append([]string(nil), h.events...)
}

// recordingListener appends "I<n>" to the history when initialized and
// "D<n>" when torn down, and optionally fails either hook.
type recordingListener struct {
	history     *history
	id          int
	initErr     error
	teardownErr error
}

func (l *recordingListener) Initialize(ctx context.Context) error {
	l.history.add(fmt.Sprintf("I%d", l.id))
	return l.initErr
}

func (l *recordingListener) Teardown(ctx context.Context) error {
	l.history.add(fmt.Sprintf("D%d", l.id))
	return l.teardownErr
}

// sessionListener is a listener of a distinct type, used by queries.
type sessionListener struct{}

func (sessionListener) Initialize(ctx context.Context) error { return nil }
func (sessionListener) Teardown(ctx context.Context) error   { return nil }

// newRecordingContainer registers n recording listeners on a new container.
func newRecordingContainer(name string, h *history, n int) (*Container,
	[]*recordingListener) {
	c := NewContainer(name, &Options{Logger: simpleLogger{}})
	listeners := make([]*recordingListener, n)
	for i := range listeners {
		listeners[i] = &recordingListener{history: h, id: i}
		if err := c.Register(listeners[i]); err != nil {
			panic(err)
		}
	}
	return c, listeners
}

// rootCause walks the cause chain of err down to its last link.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

type simpleLogger struct{}

func (s simpleLogger) Info(msg string, keysAndValues ...interface{}) {
	fmt.Println(msg, keysAndValues)
}

func (s simpleLogger) Error(err error, msg string,
	keysAndValues ...interface{}) {
	fmt.Println(msg, append(keysAndValues, "error", err))
}

// Event observer
type eventObserver struct {
	events []Event
	ch     chan Event
	wg     sync.WaitGroup
}

func newEventObserver() *eventObserver {
	ch := make(chan Event)

	e := &eventObserver{
		ch: ch,
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for event := range ch {
			e.events = append(e.events, event)
		}
	}()

	return e
}

func (e *eventObserver) ObserverChan() chan<- Event {
	return e.ch
}

// ObserverEvents waits for the observed component to be stopped and returns
// the events it posted.
func (e *eventObserver) ObserverEvents() []Event {
	e.wg.Wait()
	return e.events
}

func (e *eventObserver) ObserverEventSequence() []State {
	events := e.ObserverEvents()
	res := make([]State, len(events))
	for i, event := range events {
		res[i] = event.To
	}
	return res
}
