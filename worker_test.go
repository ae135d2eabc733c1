package component

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWorker struct {
	*Worker
	*eventObserver
	history *history
}

func newTestWorker(name string, startErr, stopErr error) *testWorker {
	h := &history{}
	s := &testWorker{
		Worker: NewWorkerWithOptions(
			&Hooks{
				Name: name,
				Start: func(ctx context.Context) error {
					h.add("start")
					return startErr
				},
				Stop: func(ctx context.Context) error {
					h.add("stop")
					return stopErr
				},
				Error: func(event Event) error {
					if event.Error != nil && event.Error.Error() == "ignore" {
						return nil
					}
					return event.Error
				},
			},
			&Options{
				Logger: simpleLogger{},
			},
		),
		eventObserver: newEventObserver(),
		history:       h,
	}
	s.Observe(s.ObserverChan())

	return s
}

func TestWorkerStartStop(t *testing.T) {
	s := newTestWorker("worker", nil, nil)
	assert.Equal(t, "worker", s.Name())
	require.NoError(t, s.Start())
	assert.Equal(t, Started, s.State())
	require.NoError(t, s.Stop())
	assert.Equal(t, []State{Starting, Started, Stopping, Stopped},
		s.ObserverEventSequence())
	assert.Equal(t, []string{"start", "stop"}, s.history.get())
}

func TestWorkerStartError(t *testing.T) {
	s := newTestWorker("worker", errors.New("oops"), nil)
	assert.EqualError(t, s.Start(), "oops")
	assert.Equal(t, Failed, s.State())
	require.NoError(t, s.Stop())
	assert.Equal(t, []State{Starting, Failed, Stopping, Stopped},
		s.ObserverEventSequence())
	assert.Equal(t, []string{"start"}, s.history.get())
}

func TestWorkerStartIgnoredError(t *testing.T) {
	s := newTestWorker("worker", errors.New("ignore"), nil)
	require.NoError(t, s.Start())
	assert.Equal(t, Started, s.State())
	require.NoError(t, s.Stop())
}

func TestWorkerStopError(t *testing.T) {
	s := newTestWorker("worker", nil, errors.New("oops"))
	require.NoError(t, s.Start())
	assert.EqualError(t, s.Stop(), "oops")
	assert.Equal(t, Stopped, s.State())

	events := s.ObserverEvents()
	require.Len(t, events, 4)
	assert.EqualError(t, events[3].Error, "oops")
}

func TestWorkerStopIgnoredError(t *testing.T) {
	s := newTestWorker("worker", nil, errors.New("ignore"))
	require.NoError(t, s.Start())
	require.NoError(t, s.Stop())
	assert.Equal(t, []State{Starting, Started, Stopping, Stopped},
		s.ObserverEventSequence())
}

func TestWorkerInvalidState(t *testing.T) {
	s := newTestWorker("worker", nil, nil)
	require.NoError(t, s.Start())
	assert.True(t, IsInvalidState(s.Start()))
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
	assert.True(t, IsInvalidState(s.Start()))
	assert.Equal(t, []string{"start", "stop"}, s.history.get())
}

func TestWorkerStopIdle(t *testing.T) {
	s := newTestWorker("worker", nil, nil)
	require.NoError(t, s.Stop())
	assert.Equal(t, []State{Stopped}, s.ObserverEventSequence())
	assert.Empty(t, s.history.get())
}

func TestNewWorkerInvalidHooks(t *testing.T) {
	assert.Nil(t, NewWorker(nil))
	assert.Nil(t, NewWorker(&Hooks{Name: "worker"}))
	assert.NotNil(t, NewWorker(&Hooks{
		Start: DropContext(func() error { return nil }),
	}))
}
