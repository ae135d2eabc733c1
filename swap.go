package component

import (
	"context"
	"sync"
)

// SwapSlot is a Component holding at most one active child, which can be
// replaced at runtime. Starting the slot starts the active child if it is
// Idle, and stopping the slot stops it.
type SwapSlot struct {
	base
	// Guards active, which can be swapped while the slot is started
	activeMut sync.RWMutex
	active    Component
}

// NewSwapSlot creates an Idle slot without active child.
func NewSwapSlot(name string, opts *Options) *SwapSlot {
	s := &SwapSlot{}
	s.setup(name, opts)
	return s
}

// Current returns the active child, or nil if there is none.
func (s *SwapSlot) Current() Component {
	s.activeMut.RLock()
	defer s.activeMut.RUnlock()
	return s.active
}

// Listeners returns the active child, if any, so that queries can reach
// through the slot.
func (s *SwapSlot) Listeners() []interface{} {
	if active := s.Current(); active != nil {
		return []interface{}{active}
	}
	return nil
}

// Replace swaps the active child. See ReplaceCtx.
func (s *SwapSlot) Replace(next Component) error {
	return s.ReplaceCtx(context.Background(), next)
}

// ReplaceCtx installs next as the active child, then stops the child that was
// active before, if any. next may be nil to leave the slot empty. The new child
// is not started: this remains the responsibility of the caller. The swap is
// committed before the previous child is stopped, so an error returned by its
// StopCtx is passed to the caller but never reverts the swap. Replacing a child
// with itself is a no-op. The swap waits for a start or stop of the slot in
// progress, so that the slot never acts on a child it no longer holds.
func (s *SwapSlot) ReplaceCtx(ctx context.Context, next Component) error {
	s.mut.Lock()
	s.activeMut.Lock()
	prev := s.active
	if (prev == nil && next == nil) || sameValue(prev, next) {
		s.activeMut.Unlock()
		s.mut.Unlock()
		return nil
	}
	s.active = next
	s.activeMut.Unlock()
	s.mut.Unlock()

	s.info("replaced active child", "from", nameOf(prev), "to", nameOf(next))
	if prev == nil {
		return nil
	}
	if err := prev.StopCtx(ctx); err != nil {
		s.error(err, "previous child failed to stop", "child", prev.Name())
		return err
	}
	return nil
}

// Start starts the slot. See StartCtx.
func (s *SwapSlot) Start() error {
	return s.StartCtx(context.Background())
}

// StartCtx starts the slot, and its active child if the child is Idle. An
// error returned by the child is returned unchanged and leaves the slot Failed.
func (s *SwapSlot) StartCtx(ctx context.Context) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if err := s.expect("start", Idle); err != nil {
		return err
	}
	s.transition(ctx, Starting, nil)

	if child := s.Current(); child != nil && child.State() == Idle {
		if err := child.StartCtx(ctx); err != nil {
			s.error(err, "active child failed to start", "child", child.Name())
			s.transition(ctx, Failed, err)
			return err
		}
	}

	s.transition(ctx, Started, nil)
	return nil
}

// Stop stops the slot. See StopCtx.
func (s *SwapSlot) Stop() error {
	return s.StopCtx(context.Background())
}

// StopCtx stops the slot and its active child. The child remains installed.
func (s *SwapSlot) StopCtx(ctx context.Context) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	switch s.State() {
	case Stopped:
		return nil
	case Idle:
		s.transition(ctx, Stopped, nil)
		return nil
	}
	if err := s.expect("stop", Started, Failed); err != nil {
		return err
	}
	s.transition(ctx, Stopping, nil)

	var err error
	if child := s.Current(); child != nil {
		if err = child.StopCtx(ctx); err != nil {
			s.error(err, "active child failed to stop", "child", child.Name())
		}
	}

	s.transition(ctx, Stopped, err)
	return err
}

func nameOf(c Component) string {
	if c == nil {
		return "<none>"
	}
	return c.Name()
}
