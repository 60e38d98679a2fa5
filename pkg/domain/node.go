package domain

// StateInfo describes one state of a rule table for introspection.
type StateInfo struct {
	Name     StateName  `json:"name"`
	Initial  bool       `json:"initial,omitempty"`
	Invoked  bool       `json:"invoked,omitempty"`
	Terminal bool       `json:"terminal,omitempty"`
	Rules    []RuleInfo `json:"rules,omitempty"`
}
