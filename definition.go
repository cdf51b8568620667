package doublestate

// Definition holds the declared states before building a Table
type Definition struct {
	decls   []Declaration
	initial []StateID
}

// NewDefinition creates a new table definition builder
func NewDefinition() *Definition {
	return &Definition{
		decls: make([]Declaration, 0),
	}
}

// Declare adds raw declarations to the definition
func (d *Definition) Declare(decls ...Declaration) *Definition {
	for _, decl := range decls {
		decl.Successors = append([]StateID(nil), decl.Successors...)
		d.decls = append(d.decls, decl)
	}
	return d
}

// Linear adds a state that advances to next on the following tick
func (d *Definition) Linear(id StateID, next StateID, opts ...StateOption) *Definition {
	return d.add(Declaration{
		State:      id,
		Kind:       KindLinear,
		Successors: []StateID{next},
		LinearEdge: next,
	}, opts)
}

// Arbitrary adds a state that waits for a request to one of its successors
func (d *Definition) Arbitrary(id StateID, successors []StateID, opts ...StateOption) *Definition {
	return d.add(Declaration{
		State:      id,
		Kind:       KindArbitrary,
		Successors: append([]StateID(nil), successors...),
	}, opts)
}

// Terminal adds a state with no outgoing transitions
func (d *Definition) Terminal(id StateID, opts ...StateOption) *Definition {
	return d.add(Declaration{
		State: id,
		Kind:  KindTerminal,
	}, opts)
}

func (d *Definition) add(decl Declaration, opts []StateOption) *Definition {
	for _, opt := range opts {
		opt(&decl)
	}
	d.decls = append(d.decls, decl)
	return d
}

// Initial sets the initial state
func (d *Definition) Initial(id StateID) *Definition {
	d.initial = append(d.initial, id)
	return d
}

// Validate checks the definition for errors. The first problem found, in
// declaration order, is returned as a *ConfigurationError.
func (d *Definition) Validate() error {
	_, err := d.compile()
	return err
}

// Build validates the definition and creates an immutable Table
func (d *Definition) Build() (*Table, error) {
	return d.compile()
}

func (d *Definition) compile() (*Table, error) {
	t := &Table{
		states: make(map[StateID]*entry, len(d.decls)),
		order:  make([]StateID, 0, len(d.decls)),
	}

	initial := append([]StateID(nil), d.initial...)
	for _, decl := range d.decls {
		if _, ok := t.states[decl.State]; ok {
			return nil, configErr(decl.State, ErrDuplicateState, "")
		}
		t.states[decl.State] = &entry{
			kind:       decl.Kind,
			successors: append([]StateID(nil), decl.Successors...),
			linear:     decl.LinearEdge,
		}
		t.order = append(t.order, decl.State)
		if decl.Default {
			initial = append(initial, decl.State)
		}
	}

	for _, id := range t.order {
		if err := t.checkState(id); err != nil {
			return nil, err
		}
	}

	if len(initial) == 0 {
		return nil, configErr("", ErrNoInitial, "")
	}
	for _, id := range initial[1:] {
		if id != initial[0] {
			return nil, configErr(id, ErrMultipleInitial, "already have %q", initial[0])
		}
	}
	if _, ok := t.states[initial[0]]; !ok {
		return nil, configErr(initial[0], ErrUndeclaredState, "initial state")
	}
	t.initial = initial[0]

	for _, id := range t.order {
		if err := t.checkLinearChain(id); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Table) checkState(id StateID) error {
	e := t.states[id]

	seen := make(map[StateID]bool, len(e.successors))
	for _, s := range e.successors {
		if _, ok := t.states[s]; !ok {
			return configErr(id, ErrUndeclaredState, "successor %q", s)
		}
		if seen[s] {
			return configErr(id, ErrDuplicateState, "successor %q listed twice", s)
		}
		seen[s] = true
	}

	switch e.kind {
	case KindLinear:
		if len(e.successors) != 1 {
			return configErr(id, ErrLinearArity, "got %d", len(e.successors))
		}
		if e.linear == "" {
			e.linear = e.successors[0]
		}
	case KindArbitrary:
		if len(e.successors) == 0 {
			return configErr(id, ErrNoSuccessors, "")
		}
	case KindTerminal:
		if len(e.successors) > 0 {
			return configErr(id, ErrTerminalSuccessors, "got %d", len(e.successors))
		}
	default:
		return configErr(id, ErrInvalidKind, "%d", int(e.kind))
	}

	if e.linear != "" && !seen[e.linear] {
		if _, ok := t.states[e.linear]; !ok {
			return configErr(id, ErrUndeclaredState, "linear edge %q", e.linear)
		}
		return configErr(id, ErrLinearEdge, "%q", e.linear)
	}

	return nil
}

// checkLinearChain follows linear states from id and fails if it comes back
// to a state it already visited without passing a steady state.
func (t *Table) checkLinearChain(id StateID) error {
	visited := make(map[StateID]bool)
	current := id
	for t.states[current].kind == KindLinear {
		if visited[current] {
			return configErr(id, ErrLinearCycle, "loops at %q", current)
		}
		visited[current] = true
		current = t.states[current].successors[0]
	}
	return nil
}
