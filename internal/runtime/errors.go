package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/tictactoe/pkg/domain"
)

var (
	// ErrNotStarted is returned by Send before Start.
	ErrNotStarted = errors.New("engine not started")
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("engine already started")
	// ErrStopped is returned by Send after Stop.
	ErrStopped = errors.New("engine stopped")
	// ErrRuleDefect matches every RuleError.
	ErrRuleDefect = errors.New("rule defect")
)

// RulePhase names the part of a rule that failed.
type RulePhase string

const (
	PhaseGuard   RulePhase = "guard"
	PhaseReducer RulePhase = "reducer"
)

// RuleError reports a guard or reducer that returned an error or panicked.
type RuleError struct {
	State  domain.StateName
	Event  domain.EventType
	Target domain.StateName
	Phase  RulePhase
	Err    error
}

func (e *RuleError) Error() string {
	trigger := string(e.Event)
	if trigger == "" {
		trigger = "<immediate>"
	}
	return fmt.Sprintf("%s failed in state '%s' on %s -> '%s': %v", e.Phase, e.State, trigger, e.Target, e.Err)
}

func (e *RuleError) Unwrap() []error {
	return []error{ErrRuleDefect, e.Err}
}

// ImmediateLoopError reports that immediate resolution exceeded the hop limit,
// which means the table's guards form a cycle.
type ImmediateLoopError struct {
	State domain.StateName
	Hops  int
}

func (e *ImmediateLoopError) Error() string {
	return fmt.Sprintf("immediate transitions did not settle after %d hops (last state '%s')", e.Hops, e.State)
}

// TableError reports an invalid rule table.
type TableError struct {
	State  domain.StateName
	Reason string
}

func (e *TableError) Error() string {
	if e.State == "" {
		return "invalid table: " + e.Reason
	}
	return fmt.Sprintf("invalid table: state '%s': %s", e.State, e.Reason)
}

// InvokeError reports an invocation task that returned an error.
type InvokeError struct {
	State domain.StateName
	Err   error
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("invocation in state '%s' failed: %v", e.State, e.Err)
}

func (e *InvokeError) Unwrap() error {
	return e.Err
}

// panicError wraps a recovered panic value.
type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}
