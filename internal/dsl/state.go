package dsl

import (
	"fmt"

	"github.com/aretw0/tictactoe/internal/runtime"
	"github.com/aretw0/tictactoe/pkg/domain"
)

// StateBuilder provides a fluent API for configuring a state.
// When and Then apply to the rule added last.
type StateBuilder[C any] struct {
	def     runtime.StateDef[C]
	builder *Builder[C]
}

// On adds a transition taken when an event of the given type arrives.
func (s *StateBuilder[C]) On(event domain.EventType, target domain.StateName) *StateBuilder[C] {
	s.def.Rules = append(s.def.Rules, runtime.Rule[C]{Event: event, Target: target})
	return s
}

// Always adds an immediate transition, evaluated after every entry.
func (s *StateBuilder[C]) Always(target domain.StateName) *StateBuilder[C] {
	s.def.Rules = append(s.def.Rules, runtime.Rule[C]{Target: target})
	return s
}

// When guards the last rule.
func (s *StateBuilder[C]) When(guard runtime.Guard[C]) *StateBuilder[C] {
	if r := s.last("When"); r != nil {
		r.Guard = guard
	}
	return s
}

// Then attaches a fallible reducer to the last rule.
func (s *StateBuilder[C]) Then(reduce runtime.Reducer[C]) *StateBuilder[C] {
	if r := s.last("Then"); r != nil {
		r.Reduce = reduce
	}
	return s
}

// Assign attaches an infallible reducer to the last rule.
func (s *StateBuilder[C]) Assign(fn func(C, domain.Event) C) *StateBuilder[C] {
	return s.Then(func(c C, ev domain.Event) (C, error) {
		return fn(c, ev), nil
	})
}

// Invoke starts task every time the engine settles in this state.
func (s *StateBuilder[C]) Invoke(task runtime.Task[C]) *StateBuilder[C] {
	s.def.Invoke = task
	return s
}

// Add is a shortcut to declare the next state.
func (s *StateBuilder[C]) Add(name domain.StateName) *StateBuilder[C] {
	return s.builder.Add(name)
}

func (s *StateBuilder[C]) last(method string) *runtime.Rule[C] {
	if len(s.def.Rules) == 0 {
		s.builder.errs = append(s.builder.errs, fmt.Errorf("state '%s': %s called before On or Always", s.def.Name, method))
		return nil
	}
	return &s.def.Rules[len(s.def.Rules)-1]
}
