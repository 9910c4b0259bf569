package service

import (
	"github.com/dmitrymomot/streamhub/internal/model"
	"github.com/dmitrymomot/streamhub/pkg/observable"
)

// ObservableService exposes the model as a value with synchronous observers.
type ObservableService interface {
	Model() model.Model
	SetModel(m model.Model)
	Observable() *observable.Value[model.Model]
}

// ValueService implements ObservableService.
type ValueService struct {
	value *observable.Value[model.Model]
}

// NewValueService creates a service holding initial.
func NewValueService(initial model.Model) *ValueService {
	return &ValueService{value: observable.New(initial)}
}

func (s *ValueService) Model() model.Model {
	return s.value.Get()
}

func (s *ValueService) SetModel(m model.Model) {
	s.value.Set(m)
}

func (s *ValueService) Observable() *observable.Value[model.Model] {
	return s.value
}
