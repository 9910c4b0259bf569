package viewmodel

import (
	"sync"

	"github.com/dmitrymomot/streamhub/internal/model"
	"github.com/dmitrymomot/streamhub/internal/service"
	"github.com/dmitrymomot/streamhub/pkg/observable"
)

// ObservableViewModel mirrors an ObservableService model through synchronous
// observers: the shown model changes inside the service's SetModel call.
type ObservableViewModel struct {
	mu      sync.Mutex
	service service.ObservableService

	bag   observable.Bag
	model *observable.Value[model.Model]
}

// NewObservableViewModel creates a view model that shows initial until a service is injected.
func NewObservableViewModel(initial int) *ObservableViewModel {
	return &ObservableViewModel{
		model: observable.New(model.New(initial)),
	}
}

// Inject binds the view model to svc. Only the first call has an effect.
// The first refresh and every later one run under the service value's
// notification order, so a change made while Inject runs is never
// overwritten by the model read at injection.
func (vm *ObservableViewModel) Inject(svc service.ObservableService) {
	vm.mu.Lock()
	if vm.service != nil {
		vm.mu.Unlock()
		return
	}
	vm.service = svc
	vm.mu.Unlock()

	vm.bag.Add(svc.Observable().Sink(func(model.Model) {
		vm.update()
	}))
}

// Model returns the model currently shown.
func (vm *ObservableViewModel) Model() model.Model {
	return vm.model.Get()
}

// Observable exposes the shown model for observers.
func (vm *ObservableViewModel) Observable() *observable.Value[model.Model] {
	return vm.model
}

// ChangeValue stores v in the service.
func (vm *ObservableViewModel) ChangeValue(v int) error {
	vm.mu.Lock()
	svc := vm.service
	vm.mu.Unlock()

	if svc == nil {
		return ErrNotInjected
	}
	svc.SetModel(model.New(v))
	return nil
}

// Close detaches the view model from its service.
func (vm *ObservableViewModel) Close() {
	vm.bag.CancelAll()
}

func (vm *ObservableViewModel) update() {
	vm.mu.Lock()
	svc := vm.service
	vm.mu.Unlock()

	if svc != nil {
		vm.model.Set(svc.Model())
	}
}
