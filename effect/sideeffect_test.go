package effect_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petomat/zio/effect"
)

func TestAttempt(t *testing.T) {
	t.Run("returning thunk succeeds", func(t *testing.T) {
		x := run(t, effect.Attempt(func() (string, error) { return "ok", nil }))
		require.True(t, x.Succeeded())
		assert.Equal(t, "ok", x.Value())
	})

	t.Run("returned error becomes a typed failure", func(t *testing.T) {
		errIO := errors.New("io down")
		x := run(t, effect.Attempt(func() (string, error) { return "", errIO }))
		require.False(t, x.Succeeded())
		failure, ok := x.Cause().Failed()
		require.True(t, ok)
		assert.ErrorIs(t, failure, errIO)
	})

	t.Run("panic is caught onto the typed channel", func(t *testing.T) {
		errDeep := errors.New("deep fault")
		x := run(t, effect.Attempt(func() (string, error) { panic(errDeep) }))
		require.False(t, x.Succeeded())
		failure, ok := x.Cause().Failed()
		require.True(t, ok)

		var pe *effect.PanicError
		require.ErrorAs(t, failure, &pe)
		assert.ErrorIs(t, failure, errDeep)
	})

	t.Run("thunk runs once per run", func(t *testing.T) {
		var invoked atomic.Int64
		eff := effect.Attempt(func() (int64, error) { return invoked.Add(1), nil })
		run(t, eff)
		run(t, eff)
		assert.Equal(t, int64(2), invoked.Load())
	})
}

func TestTotal_PanicBecomesDefect(t *testing.T) {
	x := run(t, effect.Total(func() int { panic("contract violated") }))
	require.False(t, x.Succeeded())

	_, failed := x.Cause().Failed()
	assert.False(t, failed, "a violated total contract must not surface as a typed failure")

	defect, died := x.Cause().Died()
	require.True(t, died)
	assert.Equal(t, "Total", defect.Op)
	assert.Equal(t, "contract violated", defect.Value)
	assert.NotEmpty(t, defect.Stack, "a defect must stay diagnosable")
}

func TestZeroValueEffect_Dies(t *testing.T) {
	var eff effect.Effect[any, error, int]
	x := run(t, eff)
	_, died := x.Cause().Died()
	assert.True(t, died, "the zero value is not a constructed effect")
}

func TestSucceedLazy_PanicBecomesDefect(t *testing.T) {
	x := run(t, effect.SucceedLazy(func() int { panic("lazy lied") }))
	defect, died := x.Cause().Died()
	require.True(t, died)
	assert.Equal(t, "SucceedLazy", defect.Op)
}
