package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/streamhub/pkg/broadcast"
)

func collect[T any](t *testing.T, sub *broadcast.Subscription[T], n int) []T {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out := make([]T, 0, n)
	for len(out) < n {
		v, err := sub.Next(ctx)
		require.NoError(t, err, "received %d of %d values", len(out), n)
		out = append(out, v)
	}
	return out
}

func TestHub_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("returns initial value", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(10)
		defer hub.Close()

		assert.Equal(t, 10, hub.Get())
	})

	t.Run("get after set returns new value", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(10)
		defer hub.Close()

		hub.Set(42)
		assert.Equal(t, 42, hub.Get())
	})

	t.Run("optional value", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub[*int](nil)
		defer hub.Close()

		assert.Nil(t, hub.Get())

		v := 42
		hub.Set(&v)
		require.NotNil(t, hub.Get())
		assert.Equal(t, 42, *hub.Get())

		hub.Set(nil)
		assert.Nil(t, hub.Get())
	})
}

func TestHub_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("with current value receives initial and updates", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		sub := hub.Subscribe(context.Background(), broadcast.WithCurrentValue())
		defer sub.Close()

		for i := 1; i <= 5; i++ {
			hub.Set(i)
		}

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, collect(t, sub, 6))
	})

	t.Run("without current value receives only updates", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		sub := hub.Subscribe(context.Background())
		defer sub.Close()

		for i := 1; i <= 5; i++ {
			hub.Set(i)
		}

		assert.Equal(t, []int{1, 2, 3, 4, 5}, collect(t, sub, 5))
	})

	t.Run("yield flag", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub("a")
		defer hub.Close()

		with := hub.Subscribe(context.Background(), broadcast.YieldCurrentValue(true))
		without := hub.Subscribe(context.Background(), broadcast.YieldCurrentValue(false))
		hub.Set("b")

		assert.Equal(t, []string{"a", "b"}, collect(t, with, 2))
		assert.Equal(t, []string{"b"}, collect(t, without, 1))
	})

	t.Run("two subscribers scenario", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		a := hub.Subscribe(context.Background(), broadcast.WithCurrentValue())
		b := hub.Subscribe(context.Background())

		done := make(chan struct{})
		go func() {
			defer close(done)
			hub.Set(1)
			hub.Set(2)
		}()

		gotA := collect(t, a, 3)
		gotB := collect(t, b, 2)
		<-done

		assert.Equal(t, []int{0, 1, 2}, gotA)
		assert.Equal(t, []int{1, 2}, gotB)
	})

	t.Run("late subscriber receives suffix", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		early := hub.Subscribe(context.Background())
		hub.Set(1)
		hub.Set(2)
		late := hub.Subscribe(context.Background(), broadcast.WithCurrentValue())
		hub.Set(3)

		assert.Equal(t, []int{1, 2, 3}, collect(t, early, 3))
		assert.Equal(t, []int{2, 3}, collect(t, late, 2))
	})

	t.Run("slow consumer does not affect others", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		slow := hub.Subscribe(context.Background())
		fast := hub.Subscribe(context.Background())

		const n = 1000
		for i := 1; i <= n; i++ {
			hub.Set(i)
		}

		got := collect(t, fast, n)
		assert.Equal(t, 1, got[0])
		assert.Equal(t, n, got[n-1])

		// Nothing was read from slow yet, everything is still buffered.
		got = collect(t, slow, n)
		for i, v := range got {
			assert.Equal(t, i+1, v)
		}
	})

	t.Run("independent subscriptions from the same caller", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		s1 := hub.Subscribe(context.Background())
		s2 := hub.Subscribe(context.Background())
		assert.NotEqual(t, s1.ID(), s2.ID())
		assert.Equal(t, 2, hub.Len())

		hub.Set(7)
		assert.Equal(t, []int{7}, collect(t, s1, 1))
		assert.Equal(t, []int{7}, collect(t, s2, 1))
	})
}

func TestHub_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub(0)
	defer hub.Close()

	subs := []*broadcast.Subscription[int]{
		hub.Subscribe(context.Background()),
		hub.Subscribe(context.Background()),
		hub.Subscribe(context.Background()),
	}

	const writers, perWriter = 8, 100
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				hub.Set(w*perWriter + i)
			}
		}(w)
	}
	wg.Wait()

	// Every subscription observes the same global order.
	first := collect(t, subs[0], writers*perWriter)
	for _, sub := range subs[1:] {
		assert.Equal(t, first, collect(t, sub, writers*perWriter))
	}
	assert.Equal(t, first[len(first)-1], hub.Get())
}

func TestHub_Close(t *testing.T) {
	t.Parallel()

	t.Run("finishes open subscriptions", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		sub := hub.Subscribe(context.Background())

		require.NoError(t, hub.Close())
		assert.True(t, hub.Closed())
		assert.Equal(t, 0, hub.Len())

		select {
		case <-sub.Done():
		case <-time.After(time.Second):
			t.Fatal("subscription was not finished")
		}

		_, err := sub.Next(context.Background())
		assert.ErrorIs(t, err, broadcast.ErrSubscriptionClosed)
	})

	t.Run("buffered values can be drained after close", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		sub := hub.Subscribe(context.Background())
		hub.Set(1)
		hub.Set(2)
		require.NoError(t, hub.Close())

		assert.Equal(t, []int{1, 2}, collect(t, sub, 2))
		_, err := sub.Next(context.Background())
		assert.ErrorIs(t, err, broadcast.ErrSubscriptionClosed)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		require.NoError(t, hub.Close())
		require.NoError(t, hub.Close())
	})

	t.Run("set after close is a no-op", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(1)
		require.NoError(t, hub.Close())

		hub.Set(2)
		assert.Equal(t, 1, hub.Get())
		assert.ErrorIs(t, hub.TrySet(3), broadcast.ErrHubClosed)
	})

	t.Run("subscribe after close returns finished subscription", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(1)
		require.NoError(t, hub.Close())

		sub := hub.Subscribe(context.Background(), broadcast.WithCurrentValue())
		_, err := sub.Next(context.Background())
		assert.ErrorIs(t, err, broadcast.ErrSubscriptionClosed)
		assert.Equal(t, 0, hub.Len())
		assert.NoError(t, sub.Close())
	})
}
