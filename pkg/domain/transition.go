package domain

// RuleInfo describes one guarded transition.
// An empty Event marks an immediate rule.
type RuleInfo struct {
	Event   EventType `json:"event,omitempty"`
	Target  StateName `json:"target"`
	Guarded bool      `json:"guarded,omitempty"`
	Reduces bool      `json:"reduces,omitempty"`
}

// Immediate reports whether the rule fires without an event.
func (r RuleInfo) Immediate() bool {
	return r.Event == ""
}
