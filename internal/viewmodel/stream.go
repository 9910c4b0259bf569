package viewmodel

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/streamhub/internal/model"
	"github.com/dmitrymomot/streamhub/internal/service"
	"github.com/dmitrymomot/streamhub/pkg/broadcast"
	"github.com/dmitrymomot/streamhub/pkg/streamreader"
)

// StreamViewModel mirrors a StreamService model. It re-reads the model from the
// service on every stream notification and republishes it to its own
// subscribers.
type StreamViewModel struct {
	mu      sync.Mutex
	service service.StreamService

	// updateMu makes each read of the service model and its publication atomic.
	updateMu sync.Mutex

	readers *streamreader.Readers
	model   *broadcast.Hub[model.Model]
	logger  *slog.Logger
}

// Option configures a view model.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewStreamViewModel creates a view model that shows initial until a service is injected.
func NewStreamViewModel(initial int, opts ...Option) *StreamViewModel {
	o := newOptions(opts)
	return &StreamViewModel{
		readers: streamreader.New(streamreader.WithLogger(o.logger)),
		model:   broadcast.NewHub(model.New(initial), broadcast.WithLogger(o.logger)),
		logger:  o.logger,
	}
}

// Inject binds the view model to svc. Only the first call has an effect.
// The stream outlives ctx; it is released by Close.
func (vm *StreamViewModel) Inject(ctx context.Context, svc service.StreamService) {
	vm.mu.Lock()
	if vm.service != nil {
		vm.mu.Unlock()
		vm.logger.DebugContext(ctx, "view model already injected")
		return
	}
	vm.service = svc
	vm.mu.Unlock()

	stream := svc.ModelStream(context.WithoutCancel(ctx))
	streamreader.Add(vm.readers, stream, func(ctx context.Context, _ model.Model) error {
		vm.update(ctx)
		return nil
	})

	vm.update(ctx)
}

// Model returns the model currently shown.
func (vm *StreamViewModel) Model() model.Model {
	return vm.model.Get()
}

// Updates streams the shown model, starting with the current one.
func (vm *StreamViewModel) Updates(ctx context.Context) *broadcast.Subscription[model.Model] {
	return vm.model.Subscribe(ctx, broadcast.WithCurrentValue())
}

// ChangeValue asks the service to store v. The shown model follows once the
// service broadcasts the change.
func (vm *StreamViewModel) ChangeValue(ctx context.Context, v int) error {
	svc := vm.injected()
	if svc == nil {
		return ErrNotInjected
	}
	return svc.SetModel(ctx, model.New(v))
}

// Close stops listening to the service and finishes every Updates stream.
func (vm *StreamViewModel) Close() error {
	_ = vm.readers.Close()
	return vm.model.Close()
}

func (vm *StreamViewModel) update(ctx context.Context) {
	svc := vm.injected()
	if svc == nil {
		return
	}
	vm.updateMu.Lock()
	defer vm.updateMu.Unlock()
	vm.model.Set(svc.Model(ctx))
}

func (vm *StreamViewModel) injected() service.StreamService {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.service
}
