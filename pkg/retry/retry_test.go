package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestContextSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Context(context.Background(), func(_ context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestContextAbort(t *testing.T) {
	calls := 0
	err := Context(context.Background(), func(_ context.Context) error {
		calls++
		return ErrAbort
	})
	require.ErrorIs(t, err, ErrAbort)
	require.Equal(t, 1, calls)
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Context(ctx, func(_ context.Context) error {
		return nil
	})
	require.Error(t, err)
}

func TestTimes(t *testing.T) {
	oldInterval := Interval
	Interval = time.Millisecond
	defer func() { Interval = oldInterval }()

	calls := 0
	err := Times(context.Background(), 3, func(_ context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("nope")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestTimesSingleAttempt(t *testing.T) {
	oldInterval := Interval
	Interval = time.Millisecond
	defer func() { Interval = oldInterval }()

	calls := 0
	err := Times(context.Background(), 1, func(_ context.Context) error {
		calls++
		return errors.New("nope")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestTimesExceeded(t *testing.T) {
	oldInterval := Interval
	Interval = time.Millisecond
	defer func() { Interval = oldInterval }()

	calls := 0
	err := Times(context.Background(), 3, func(_ context.Context) error {
		calls++
		return errors.New("nope")
	})
	require.Error(t, err)
	require.Equal(t, 3, calls)
}
