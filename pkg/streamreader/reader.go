package streamreader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/streamhub/core/logger"
)

// Source is a pull-based sequence of values, such as *broadcast.Subscription.
type Source[T any] interface {
	// Next blocks until the next value is available.
	// Any error ends the read loop.
	Next(ctx context.Context) (T, error)

	// Close releases the source. Must be idempotent.
	Close() error
}

// Readers binds sources to consumer callbacks and owns the goroutines that
// pull from them. A value pulled from a source reaches its callback only if
// the reader claims it before RemoveAll marks the reader removed. A callback
// that claimed its value may still be entering or running when RemoveAll
// returns, but its context is cancelled by then. Close additionally waits for
// such callbacks.
type Readers struct {
	mu      sync.Mutex
	nextID  uint64
	readers map[uint64]*reader
	wg      sync.WaitGroup
	logger  *slog.Logger
}

type reader struct {
	id     uint64
	cancel context.CancelFunc
	source io.Closer
	state  atomic.Int32
}

const (
	stateIdle int32 = iota
	stateRunning
	stateRemoved
)

// claim marks a callback as started. It fails once the reader is removed.
func (rd *reader) claim() bool {
	return rd.state.CompareAndSwap(stateIdle, stateRunning)
}

// release marks the callback as finished. It fails if the reader was removed
// while the callback ran.
func (rd *reader) release() bool {
	return rd.state.CompareAndSwap(stateRunning, stateIdle)
}

func (rd *reader) remove() {
	rd.state.Store(stateRemoved)
	rd.cancel()
	_ = rd.source.Close()
}

// Option configures Readers.
type Option func(*Readers)

// WithLogger configures structured logging for read loops.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Readers) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty set of readers.
func New(opts ...Option) *Readers {
	r := &Readers{
		readers: make(map[uint64]*reader),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Add starts reading src in a background goroutine and calls fn for every
// value. fn is awaited before the next value is pulled, so calls never overlap
// for the same source. Errors returned by fn are logged and reading continues.
// The source is closed when reading stops.
//
// Example:
//
//	readers := streamreader.New()
//	defer readers.Close()
//
//	streamreader.Add(readers, hub.Subscribe(ctx), func(ctx context.Context, v int) error {
//		fmt.Println("value:", v)
//		return nil
//	})
func Add[T any](r *Readers, src Source[T], fn func(context.Context, T) error) {
	ctx, cancel := context.WithCancel(context.Background())

	r.mu.Lock()
	r.nextID++
	rd := &reader{id: r.nextID, cancel: cancel, source: src}
	r.readers[rd.id] = rd
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer r.forget(rd.id)
		defer cancel()
		defer func() { _ = src.Close() }()

		err := read(ctx, rd, src, fn, func(err error, d time.Duration) {
			r.logger.ErrorContext(ctx, "stream reader callback failed",
				slog.Uint64("reader_id", rd.id),
				logger.Duration(d),
				logger.Error(err))
		})

		switch {
		case errors.Is(err, context.Canceled):
			r.logger.Debug("stream reader cancelled", slog.Uint64("reader_id", rd.id))
		default:
			r.logger.Debug("stream reader finished",
				slog.Uint64("reader_id", rd.id),
				logger.Error(err))
		}
	}()
}

func read[T any](ctx context.Context, rd *reader, src Source[T], fn func(context.Context, T) error, onErr func(error, time.Duration)) error {
	for {
		v, err := src.Next(ctx)
		if err != nil {
			return err
		}
		// RemoveAll may have raced with Next.
		if !rd.claim() {
			return context.Canceled
		}

		start := time.Now()
		if err := call(ctx, fn, v); err != nil {
			onErr(err, time.Since(start))
		}
		if !rd.release() {
			return context.Canceled
		}
	}
}

func call[T any](ctx context.Context, fn func(context.Context, T) error, v T) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrCallbackPanicked, p)
		}
	}()
	return fn(ctx, v)
}

// RemoveAll stops every read loop and closes their sources without waiting for
// in-flight callbacks. Callbacks that already claimed a value see a cancelled
// context; no other callback runs afterwards. It is safe to call from within
// a callback and more than once.
func (r *Readers) RemoveAll() {
	r.mu.Lock()
	readers := r.readers
	r.readers = make(map[uint64]*reader)
	r.mu.Unlock()

	for _, rd := range readers {
		rd.remove()
	}

	if len(readers) > 0 {
		r.logger.Debug("stream readers removed", slog.Int("count", len(readers)))
	}
}

// Close removes every reader and waits for their goroutines to exit.
// It must not be called from within a callback owned by r.
func (r *Readers) Close() error {
	r.RemoveAll()
	r.wg.Wait()
	return nil
}

// Len returns the number of active read loops.
func (r *Readers) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.readers)
}

func (r *Readers) forget(id uint64) {
	r.mu.Lock()
	delete(r.readers, id)
	r.mu.Unlock()
}
