// Package model holds the value shared between services and view models.
package model

import "strconv"

// Model is the demo state: a single counter.
type Model struct {
	Value int `json:"value"`
}

// New returns a Model holding v.
func New(v int) Model {
	return Model{Value: v}
}

func (m Model) String() string {
	return "Model(" + strconv.Itoa(m.Value) + ")"
}
