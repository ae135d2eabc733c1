package component

import (
	"errors"
	"fmt"
)

var (
	errInvalidState      = errors.New("invalid state")
	errNotRegistered     = errors.New("not registered")
	errAlreadyRegistered = errors.New("already registered")
)

// IsInvalidState returns true if the cause of the error is an invalid initial
// state. This can be for example trying to start a started component, or
// registering a listener on a stopped container.
func IsInvalidState(err error) bool {
	return errors.Is(err, errInvalidState)
}

// IsNotRegistered returns true if the error was caused by deregistering a
// listener or child that is unknown to the container.
func IsNotRegistered(err error) bool {
	return errors.Is(err, errNotRegistered)
}

// IsAlreadyRegistered returns true if the error was caused by registering the
// same listener or child twice on a container.
func IsAlreadyRegistered(err error) bool {
	return errors.Is(err, errAlreadyRegistered)
}

func invalidState(op string, current State) error {
	return fmt.Errorf("cannot %s in state %s: %w", op, current, errInvalidState)
}

// InitializationError describes the listener whose Initialize hook aborted a
// container start. Start returns the hook's error unchanged; the
// InitializationError is kept by the container and exposed by Failure.
type InitializationError struct {
	// Container is the name of the container that failed to start.
	Container string
	// Index is the registration index of the failing listener.
	Index int
	// Listener is the listener, or child component, that failed.
	Listener interface{}
	// Err is the raw error returned by the hook.
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("%s: listener %d failed to initialize: %v",
		e.Container, e.Index, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}
