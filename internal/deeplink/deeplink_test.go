package deeplink_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/streamhub/internal/deeplink"
	"github.com/dmitrymomot/streamhub/pkg/broadcast"
)

func TestLink_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		link deeplink.Link
		want string
	}{
		{"async stream tab", deeplink.TabAsyncStream(), "demoapp://?screen=async_stream"},
		{"combine tab", deeplink.TabCombine(), "demoapp://?screen=combine"},
		{"navigation tab", deeplink.TabNavigation(), "demoapp://?screen=navigation"},
		{"full screen", deeplink.FullScreen("31241512"), "demoapp://?screen=screen/fullscreen&id=31241512"},
		{"sheet with escaped id", deeplink.Sheet("a b&c"), "demoapp://?screen=screen/sheet&id=a+b%26c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.link.String())
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round trips every link", func(t *testing.T) {
		t.Parallel()

		links := []deeplink.Link{
			deeplink.TabAsyncStream(),
			deeplink.TabCombine(),
			deeplink.TabNavigation(),
			deeplink.FullScreen("1"),
			deeplink.Sheet("a b&c"),
		}
		for _, l := range links {
			got, err := deeplink.Parse(l.String())
			require.NoError(t, err)
			assert.True(t, l.Equal(got), "%s != %s", l, got)
		}
	})

	t.Run("accepts escaped slash in screen", func(t *testing.T) {
		t.Parallel()

		got, err := deeplink.Parse("demoapp://?screen=screen%2Fsheet&id=9")
		require.NoError(t, err)
		assert.Equal(t, deeplink.Sheet("9"), got)
	})

	t.Run("ignores id for tabs", func(t *testing.T) {
		t.Parallel()

		got, err := deeplink.Parse("demoapp://?screen=combine&id=9")
		require.NoError(t, err)
		assert.Equal(t, deeplink.TabCombine(), got)
	})

	errCases := []struct {
		name string
		raw  string
		err  error
	}{
		{"no query", "demoapp://", deeplink.ErrEmptyQuery},
		{"no screen", "demoapp://?id=1", deeplink.ErrMissingScreen},
		{"unknown screen", "demoapp://?screen=news", deeplink.ErrUnknownScreen},
		{"missing id", "demoapp://?screen=screen/sheet", deeplink.ErrMissingID},
		{"invalid url", "demoapp://?screen=%zz", deeplink.ErrInvalidURL},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := deeplink.Parse(tc.raw)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestHolder(t *testing.T) {
	t.Parallel()

	t.Run("postpones until ready", func(t *testing.T) {
		t.Parallel()

		h := deeplink.NewHolder(deeplink.WithClearAfter(0))
		defer h.Close()

		require.NoError(t, h.Handle(deeplink.TabCombine().String()))
		require.NoError(t, h.Handle(deeplink.Sheet("2").String()))
		_, ok := h.Current()
		assert.False(t, ok)

		require.NoError(t, h.Ready())
		got, ok := h.Current()
		require.True(t, ok)
		assert.Equal(t, deeplink.Sheet("2"), got)
	})

	t.Run("invalid url clears current", func(t *testing.T) {
		t.Parallel()

		h := deeplink.NewHolder(deeplink.WithClearAfter(0))
		defer h.Close()
		require.NoError(t, h.Ready())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		sub := h.Subscribe(ctx)

		require.NoError(t, h.Handle(deeplink.TabNavigation().String()))
		assert.ErrorIs(t, h.Handle("demoapp://?screen=unknown"), deeplink.ErrUnknownScreen)

		_, ok := h.Current()
		assert.False(t, ok)

		handled, err := sub.Next(ctx)
		require.NoError(t, err)
		require.NotNil(t, handled)
		cleared, err := sub.Next(ctx)
		require.NoError(t, err)
		assert.Nil(t, cleared)
	})

	t.Run("invalid postponed url is reported by ready", func(t *testing.T) {
		t.Parallel()

		h := deeplink.NewHolder(deeplink.WithClearAfter(0))
		defer h.Close()

		require.NoError(t, h.Handle("demoapp://?screen=screen/sheet"))
		assert.ErrorIs(t, h.Ready(), deeplink.ErrMissingID)
		_, ok := h.Current()
		assert.False(t, ok)
	})

	t.Run("invalid url stops pending clear", func(t *testing.T) {
		t.Parallel()

		h := deeplink.NewHolder(deeplink.WithClearAfter(20 * time.Millisecond))
		defer h.Close()
		require.NoError(t, h.Ready())

		require.NoError(t, h.Handle(deeplink.TabCombine().String()))
		require.Error(t, h.Handle("not a url"))
		require.NoError(t, h.Handle(deeplink.TabNavigation().String()))

		// The first link's timer must not clear the third one early.
		time.Sleep(10 * time.Millisecond)
		got, ok := h.Current()
		require.True(t, ok)
		assert.Equal(t, deeplink.TabNavigation(), got)
	})

	t.Run("link handled while becoming ready wins over postponed one", func(t *testing.T) {
		t.Parallel()

		for range 100 {
			h := deeplink.NewHolder(deeplink.WithClearAfter(0))
			require.NoError(t, h.Handle(deeplink.TabCombine().String()))

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				assert.NoError(t, h.Ready())
			}()
			go func() {
				defer wg.Done()
				assert.NoError(t, h.Handle(deeplink.Sheet("9").String()))
			}()
			wg.Wait()

			got, ok := h.Current()
			require.True(t, ok)
			require.Equal(t, deeplink.Sheet("9"), got)
			require.NoError(t, h.Close())
		}
	})

	t.Run("publishes and clears", func(t *testing.T) {
		t.Parallel()

		h := deeplink.NewHolder(deeplink.WithClearAfter(20 * time.Millisecond))
		defer h.Close()
		require.NoError(t, h.Ready())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		sub := h.Subscribe(ctx, broadcast.WithCurrentValue())

		first, err := sub.Next(ctx)
		require.NoError(t, err)
		assert.Nil(t, first)

		require.NoError(t, h.Handle(deeplink.FullScreen("7").String()))

		handled, err := sub.Next(ctx)
		require.NoError(t, err)
		require.NotNil(t, handled)
		assert.Equal(t, deeplink.FullScreen("7"), *handled)

		cleared, err := sub.Next(ctx)
		require.NoError(t, err)
		assert.Nil(t, cleared)
	})

	t.Run("newer link is not cleared by older timer", func(t *testing.T) {
		t.Parallel()

		h := deeplink.NewHolder(deeplink.WithClearAfter(50 * time.Millisecond))
		defer h.Close()
		require.NoError(t, h.Ready())

		require.NoError(t, h.Handle(deeplink.TabCombine().String()))
		time.Sleep(30 * time.Millisecond)
		require.NoError(t, h.Handle(deeplink.TabNavigation().String()))
		time.Sleep(30 * time.Millisecond)

		got, ok := h.Current()
		require.True(t, ok)
		assert.Equal(t, deeplink.TabNavigation(), got)

		require.Eventually(t, func() bool {
			_, ok := h.Current()
			return !ok
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("closed holder rejects links", func(t *testing.T) {
		t.Parallel()

		h := deeplink.NewHolder()
		require.NoError(t, h.Ready())
		require.NoError(t, h.Close())

		assert.ErrorIs(t, h.Handle(deeplink.TabCombine().String()), deeplink.ErrHolderClosed)
	})
}
