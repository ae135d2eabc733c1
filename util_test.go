package component

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropContext(t *testing.T) {
	assert.Nil(t, DropContext(nil))

	called := false
	hook := DropContext(func() error {
		called = true
		return errors.New("oops")
	})
	assert.EqualError(t, hook(context.TODO()), "oops")
	assert.True(t, called)
}

func TestStopComponent(t *testing.T) {
	var missing *Container
	assert.NoError(t, StopComponent(nil))
	assert.NoError(t, StopComponent(missing))
	assert.NoError(t, StopComponent("not a component"))

	c := NewContainer("server", nil)
	require.NoError(t, c.Start())
	require.NoError(t, StopComponent(c))
	assert.Equal(t, Stopped, c.State())
}
