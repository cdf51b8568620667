package doublestate

// Declaration describes one state of the table: its kind and legal successors
type Declaration struct {
	State      StateID
	Kind       Kind
	Successors []StateID

	// LinearEdge is the successor taken by Machine.RequestLinear.
	// For linear states it defaults to the sole successor.
	LinearEdge StateID

	// Default marks the initial state of the machine
	Default bool
}

// StateOption is a functional option for configuring a Declaration
type StateOption func(*Declaration)

// AsDefault marks the state as the initial state
func AsDefault() StateOption {
	return func(d *Declaration) {
		d.Default = true
	}
}

// WithLinearEdge marks one successor of an arbitrary state as its linear edge.
// The successor is appended if it is not already listed.
func WithLinearEdge(to StateID) StateOption {
	return func(d *Declaration) {
		d.LinearEdge = to
		for _, s := range d.Successors {
			if s == to {
				return
			}
		}
		d.Successors = append(d.Successors, to)
	}
}
