package doublestate

// Table is the validated, immutable transition table.
// It is safe for concurrent use by any number of readers.
type Table struct {
	states  map[StateID]*entry
	order   []StateID
	initial StateID
}

type entry struct {
	kind       Kind
	successors []StateID
	linear     StateID
}

// Initial returns the state a new Machine starts in
func (t *Table) Initial() StateID {
	return t.initial
}

// States returns all declared states in declaration order
func (t *Table) States() []StateID {
	return append([]StateID(nil), t.order...)
}

// Has reports whether the state is declared
func (t *Table) Has(id StateID) bool {
	_, ok := t.states[id]
	return ok
}

// SuccessorsOf returns the ordered successors of a state.
// The result is empty for terminal and undeclared states.
func (t *Table) SuccessorsOf(id StateID) []StateID {
	e, ok := t.states[id]
	if !ok || len(e.successors) == 0 {
		return nil
	}
	return append([]StateID(nil), e.successors...)
}

// KindOf returns the kind of a state, or the zero Kind if it is undeclared
func (t *Table) KindOf(id StateID) Kind {
	if e, ok := t.states[id]; ok {
		return e.kind
	}
	return 0
}

// IsSuccessor reports whether to is a declared successor of from
func (t *Table) IsSuccessor(from, to StateID) bool {
	e, ok := t.states[from]
	if !ok {
		return false
	}
	for _, s := range e.successors {
		if s == to {
			return true
		}
	}
	return false
}

// LinearEdge returns the successor a state follows on a linear transition
func (t *Table) LinearEdge(id StateID) (StateID, bool) {
	e, ok := t.states[id]
	if !ok || e.linear == "" {
		return "", false
	}
	return e.linear, true
}

// Transitions returns every declared edge, grouped by source state in
// declaration order
func (t *Table) Transitions() []Transition {
	var out []Transition
	for _, from := range t.order {
		e := t.states[from]
		for _, to := range e.successors {
			out = append(out, Transition{From: from, To: to, Linear: to == e.linear})
		}
	}
	return out
}
