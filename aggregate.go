package component

import (
	"github.com/hashicorp/go-multierror"
)

// Aggregator collects the errors raised while a multi-step operation keeps
// going past individual failures. The zero value is ready to use.
type Aggregator struct {
	merr *multierror.Error
}

// Record appends err to the recorded failures as a single item, even when it
// aggregates several errors itself. Nil errors are ignored.
func (a *Aggregator) Record(err error) {
	if err == nil {
		return
	}
	if a.merr == nil {
		a.merr = &multierror.Error{}
	}
	a.merr.Errors = append(a.merr.Errors, err)
}

// HasFailures reports whether at least one error was recorded.
func (a *Aggregator) HasFailures() bool {
	return a.Len() > 0
}

// Len returns the number of recorded errors.
func (a *Aggregator) Len() int {
	if a.merr == nil {
		return 0
	}
	return len(a.merr.Errors)
}

// IntoReportedError builds a single *TeardownError out of the recorded
// errors. It returns nil if nothing was recorded.
func (a *Aggregator) IntoReportedError() error {
	if !a.HasFailures() {
		return nil
	}
	errs := make([]error, len(a.merr.Errors))
	copy(errs, a.merr.Errors)
	return &TeardownError{merr: &multierror.Error{Errors: errs}}
}

// TeardownError reports one or more failures encountered while tearing down
// the activated listeners of a container. Its message is the message of the
// first failure. Unwrapping it walks every recorded failure in the order they
// were encountered, so errors.Is and errors.As see all of them.
type TeardownError struct {
	merr *multierror.Error
}

func (e *TeardownError) Error() string {
	return e.merr.Errors[0].Error()
}

// Unwrap returns the cause chain. Each step of the chain reports the next
// recorded failure.
func (e *TeardownError) Unwrap() error {
	return e.merr.Unwrap()
}

// Primary returns the first recorded failure.
func (e *TeardownError) Primary() error {
	return e.merr.Errors[0]
}

// Suppressed returns the failures recorded after the primary one.
func (e *TeardownError) Suppressed() []error {
	return e.Errors()[1:]
}

// Errors returns a copy of every recorded failure in encounter order.
func (e *TeardownError) Errors() []error {
	errs := make([]error, len(e.merr.Errors))
	copy(errs, e.merr.Errors)
	return errs
}

// Detail renders every recorded failure, one per line.
func (e *TeardownError) Detail() string {
	return multierror.ListFormatFunc(e.merr.Errors)
}
