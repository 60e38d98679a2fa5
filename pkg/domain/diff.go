package domain

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`
	Seq       uint64 `json:"seq"`

	StateName *StateName `json:"state_name,omitempty"`
	Human     *Mark      `json:"human_symbol,omitempty"`
	Active    *Mark      `json:"active_symbol,omitempty"`

	// Cells holds only the cells whose mark changed.
	Cells []CellChange `json:"cells,omitempty"`

	Terminal *bool `json:"terminal,omitempty"`
}

// CellChange is a single board cell update.
type CellChange struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Mark Mark `json:"mark"`
}

// Diff calculates the difference between old and new.
// If old is nil, it returns a diff representing the entire new snapshot (initial load).
// It returns nil when nothing changed.
func Diff(old *Snapshot, new *Snapshot) *SnapshotDiff {
	if new == nil {
		return nil
	}

	diff := &SnapshotDiff{
		SessionID: new.SessionID,
		Seq:       new.Seq,
	}

	if old == nil || old.StateName != new.StateName {
		name := new.StateName
		diff.StateName = &name
	}
	if old == nil || old.Context.Human != new.Context.Human {
		human := new.Context.Human
		diff.Human = &human
	}
	if old == nil || old.Context.Active != new.Context.Active {
		active := new.Context.Active
		diff.Active = &active
	}

	diff.Cells = diffBoard(old, new)

	terminal := new.Terminal()
	if old == nil {
		if terminal {
			diff.Terminal = &terminal
		}
	} else if old.Terminal() != terminal {
		diff.Terminal = &terminal
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffBoard(old *Snapshot, new *Snapshot) []CellChange {
	var cells []CellChange
	for r := range new.Context.Board {
		for c, mark := range new.Context.Board[r] {
			if old != nil && old.Context.Board[r][c] == mark {
				continue
			}
			cells = append(cells, CellChange{Row: r, Col: c, Mark: mark})
		}
	}
	return cells
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.StateName == nil &&
		d.Human == nil &&
		d.Active == nil &&
		len(d.Cells) == 0 &&
		d.Terminal == nil
}
