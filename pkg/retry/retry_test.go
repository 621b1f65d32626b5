package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maydel/storefront/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxAttempts int) retry.Config {
	return retry.Config{
		MaxAttempts: maxAttempts,
		Backoff:     retry.LinearBackoff(time.Millisecond),
	}
}

func TestDoWithResult(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstAttemptSucceeds", func(t *testing.T) {
		calls := 0
		got, err := retry.DoWithResult(ctx, fastConfig(3), func() (int, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		calls := 0
		got, err := retry.DoWithResult(ctx, fastConfig(5), func() (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("not yet")
			}
			return "done", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "done", got)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustedAttemptsReturnLastError", func(t *testing.T) {
		wantErr := errors.New("persistent failure")
		calls := 0
		_, err := retry.DoWithResult(ctx, fastConfig(3), func() (int, error) {
			calls++
			return 0, wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("NonRetryableErrorStopsImmediately", func(t *testing.T) {
		fatal := errors.New("fatal")
		c := fastConfig(5)
		c.ShouldRetry = func(err error) bool { return !errors.Is(err, fatal) }

		calls := 0
		_, err := retry.DoWithResult(ctx, c, func() (int, error) {
			calls++
			return 0, fatal
		})
		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		calls := 0
		_, err := retry.DoWithResult(canceled, fastConfig(3), func() (int, error) {
			calls++
			return 0, errors.New("never seen")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})

	t.Run("CancelBetweenAttempts", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		attemptErr := errors.New("try again")

		_, err := retry.DoWithResult(cctx, fastConfig(5), func() (int, error) {
			cancel()
			return 0, attemptErr
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, attemptErr)
	})
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := retry.Do(ctx, fastConfig(2), func() error {
		calls++
		return errors.New("nope")
	})
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}
