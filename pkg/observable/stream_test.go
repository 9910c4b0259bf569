package observable_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/streamhub/pkg/observable"
)

func TestStream(t *testing.T) {
	t.Parallel()

	t.Run("current value then changes", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		v := observable.New(1)
		sub := observable.Stream(ctx, v, true)
		defer sub.Close()

		v.Set(2)
		v.Set(3)
		for _, want := range []int{1, 2, 3} {
			got, err := sub.Next(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("changes only", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		v := observable.New(1)
		sub := observable.Stream(ctx, v, false)
		defer sub.Close()

		v.Set(5)
		got, err := sub.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, got)
	})

	t.Run("slow consumer does not block set", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		v := observable.New(0)
		sub := observable.Stream(ctx, v, false)
		defer sub.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 1; i <= 100; i++ {
				v.Set(i)
			}
		}()
		select {
		case <-done:
		case <-ctx.Done():
			t.Fatal("Set blocked on an unread stream")
		}

		for want := 1; want <= 100; want++ {
			got, err := sub.Next(ctx)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("observer removed when subscription closes", func(t *testing.T) {
		t.Parallel()

		v := observable.New(0)
		sub := observable.Stream(context.Background(), v, true)
		require.Equal(t, 1, v.Observers())

		require.NoError(t, sub.Close())
		require.Eventually(t, func() bool { return v.Observers() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("observer removed when context is done", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		v := observable.New(0)
		_ = observable.Stream(ctx, v, false)

		cancel()
		require.Eventually(t, func() bool { return v.Observers() == 0 }, time.Second, 5*time.Millisecond)
	})
}
