package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// Guard decides whether a rule applies. It must not mutate anything.
type Guard[C any] func(ctx C, ev domain.Event) bool

// Reducer derives the next context from the current one and the event.
type Reducer[C any] func(ctx C, ev domain.Event) (C, error)

// Task is the asynchronous work started on entry to an invoked state.
// It receives a copy of the context and must honor cancellation.
type Task[C any] func(ctx context.Context, c C) (any, error)

// Rule is one guarded transition. An empty Event makes it immediate.
type Rule[C any] struct {
	Event  domain.EventType
	Guard  Guard[C]
	Reduce Reducer[C]
	Target domain.StateName
}

// Immediate reports whether the rule is evaluated without an event.
func (r Rule[C]) Immediate() bool {
	return r.Event == ""
}

// StateDef is a state and its ordered rules.
type StateDef[C any] struct {
	Name   domain.StateName
	Rules  []Rule[C]
	Invoke Task[C]
}

// Terminal reports whether the state has no way out.
func (s *StateDef[C]) Terminal() bool {
	return len(s.Rules) == 0 && s.Invoke == nil
}

// Table is an immutable transition table.
type Table[C any] struct {
	initial domain.StateName
	states  map[domain.StateName]*StateDef[C]
	order   []domain.StateName
}

// NewTable validates the definitions and freezes them into a Table.
//
// Validation rejects duplicate or unnamed states, targets that are not
// defined, an undefined initial state, an unguarded immediate rule
// that shadows later immediate rules, and an invoked state whose result
// no rule consumes.
func NewTable[C any](initial domain.StateName, defs ...StateDef[C]) (*Table[C], error) {
	t := &Table[C]{
		initial: initial,
		states:  make(map[domain.StateName]*StateDef[C], len(defs)),
		order:   make([]domain.StateName, 0, len(defs)),
	}

	for i := range defs {
		def := defs[i]
		if def.Name == "" {
			return nil, &TableError{Reason: fmt.Sprintf("state #%d has no name", i)}
		}
		if _, dup := t.states[def.Name]; dup {
			return nil, &TableError{State: def.Name, Reason: "defined twice"}
		}
		def.Rules = append([]Rule[C](nil), def.Rules...)
		t.states[def.Name] = &def
		t.order = append(t.order, def.Name)
	}

	if _, ok := t.states[initial]; !ok {
		return nil, &TableError{State: initial, Reason: "initial state is not defined"}
	}

	for _, name := range t.order {
		def := t.states[name]
		if def.Invoke != nil && !consumes(def.Rules, domain.EventDone) {
			return nil, &TableError{State: name, Reason: "invoked state has no rule for 'done'"}
		}
		fallback := false
		for _, r := range def.Rules {
			if _, ok := t.states[r.Target]; !ok {
				return nil, &TableError{State: name, Reason: fmt.Sprintf("target '%s' is not defined", r.Target)}
			}
			if !r.Immediate() {
				continue
			}
			if fallback {
				return nil, &TableError{State: name, Reason: "immediate rule after an unguarded immediate rule is unreachable"}
			}
			if r.Guard == nil {
				fallback = true
			}
		}
	}

	return t, nil
}

func consumes[C any](rules []Rule[C], ev domain.EventType) bool {
	for _, r := range rules {
		if r.Event == ev {
			return true
		}
	}
	return false
}

// Initial returns the initial state name.
func (t *Table[C]) Initial() domain.StateName {
	return t.initial
}

// State looks up a state definition.
func (t *Table[C]) State(name domain.StateName) (*StateDef[C], bool) {
	def, ok := t.states[name]
	return def, ok
}

// Describe returns the table in declaration order for introspection.
func (t *Table[C]) Describe() []domain.StateInfo {
	infos := make([]domain.StateInfo, 0, len(t.order))
	for _, name := range t.order {
		def := t.states[name]
		info := domain.StateInfo{
			Name:     name,
			Initial:  name == t.initial,
			Invoked:  def.Invoke != nil,
			Terminal: def.Terminal(),
		}
		for _, r := range def.Rules {
			info.Rules = append(info.Rules, domain.RuleInfo{
				Event:   r.Event,
				Target:  r.Target,
				Guarded: r.Guard != nil,
				Reduces: r.Reduce != nil,
			})
		}
		infos = append(infos, info)
	}
	return infos
}
