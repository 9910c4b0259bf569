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

func TestSubscription_Close(t *testing.T) {
	t.Parallel()

	t.Run("unregisters from hub and stops deliveries", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		sub := hub.Subscribe(context.Background())
		require.Equal(t, 1, hub.Len())

		hub.Set(1)
		require.NoError(t, sub.Close())
		assert.Equal(t, 0, hub.Len())

		hub.Set(2)
		hub.Set(3)

		// Pending values are dropped on consumer-initiated close.
		_, err := sub.Next(context.Background())
		assert.ErrorIs(t, err, broadcast.ErrSubscriptionClosed)
		assert.Equal(t, 3, hub.Get())
	})

	t.Run("double close is a no-op", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		sub := hub.Subscribe(context.Background())
		require.NoError(t, sub.Close())
		require.NoError(t, sub.Close())
		assert.Equal(t, 0, hub.Len())
	})

	t.Run("close after hub close", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		sub := hub.Subscribe(context.Background())
		require.NoError(t, hub.Close())
		assert.NoError(t, sub.Close())
	})

	t.Run("close races with set", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		subs := make([]*broadcast.Subscription[int], 50)
		for i := range subs {
			subs[i] = hub.Subscribe(context.Background())
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				hub.Set(i)
			}
		}()
		go func() {
			defer wg.Done()
			for _, sub := range subs {
				_ = sub.Close()
			}
		}()
		wg.Wait()

		assert.Equal(t, 0, hub.Len())
		assert.Equal(t, 499, hub.Get())
	})
}

func TestSubscription_Context(t *testing.T) {
	t.Parallel()

	t.Run("cancelled subscribe context closes subscription", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := hub.Subscribe(ctx)
		require.Equal(t, 1, hub.Len())

		cancel()

		select {
		case <-sub.Done():
		case <-time.After(time.Second):
			t.Fatal("subscription was not closed on context cancellation")
		}
		require.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("next honours its own context", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		sub := hub.Subscribe(context.Background())
		defer sub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := sub.Next(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		// The subscription itself is still alive.
		hub.Set(5)
		assert.Equal(t, []int{5}, collect(t, sub, 1))
	})

	t.Run("next wakes up on set", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		sub := hub.Subscribe(context.Background())
		defer sub.Close()

		got := make(chan int, 1)
		go func() {
			v, err := sub.Next(context.Background())
			if err == nil {
				got <- v
			}
		}()

		time.Sleep(10 * time.Millisecond)
		hub.Set(9)

		select {
		case v := <-got:
			assert.Equal(t, 9, v)
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for value")
		}
	})
}

func TestSubscription_Receive(t *testing.T) {
	t.Parallel()

	t.Run("emits values in order and closes with hub", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		sub := hub.Subscribe(context.Background(), broadcast.WithCurrentValue())

		ch := sub.Receive(context.Background())
		hub.Set(1)
		hub.Set(2)
		require.NoError(t, hub.Close())

		var got []int
		for v := range ch {
			got = append(got, v)
		}
		assert.Equal(t, []int{0, 1, 2}, got)
	})

	t.Run("closes when context is cancelled", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub(0)
		defer hub.Close()

		sub := hub.Subscribe(context.Background())
		defer sub.Close()

		ctx, cancel := context.WithCancel(context.Background())
		ch := sub.Receive(ctx)
		cancel()

		select {
		case _, ok := <-ch:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("receive channel was not closed")
		}
	})
}
