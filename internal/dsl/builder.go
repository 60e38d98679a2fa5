package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/tictactoe/internal/runtime"
	"github.com/aretw0/tictactoe/pkg/domain"
)

// Builder manages the table construction.
type Builder[C any] struct {
	initial domain.StateName
	states  []*StateBuilder[C]
	index   map[domain.StateName]*StateBuilder[C]
	errs    []error
}

// New creates a new table builder whose machine starts in initial.
func New[C any](initial domain.StateName) *Builder[C] {
	return &Builder[C]{
		initial: initial,
		index:   make(map[domain.StateName]*StateBuilder[C]),
	}
}

// Add creates a new state in the table.
// If the state already exists, it returns the existing builder.
// Declaration order is kept for introspection.
func (b *Builder[C]) Add(name domain.StateName) *StateBuilder[C] {
	if sb, ok := b.index[name]; ok {
		return sb
	}
	sb := &StateBuilder[C]{
		def:     runtime.StateDef[C]{Name: name},
		builder: b,
	}
	b.index[name] = sb
	b.states = append(b.states, sb)
	return sb
}

// Build validates and freezes the table.
func (b *Builder[C]) Build() (*runtime.Table[C], error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("failed to build table: %w", errors.Join(b.errs...))
	}
	defs := make([]runtime.StateDef[C], 0, len(b.states))
	for _, sb := range b.states {
		defs = append(defs, sb.def)
	}
	table, err := runtime.NewTable(b.initial, defs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	return table, nil
}
