package doublestate

import (
	"log/slog"
	"sync"
)

// Machine is the runtime state: the current state plus an optional pending
// request, committed once per tick by Advance.
type Machine struct {
	table *Table

	mu          sync.Mutex
	current     StateID
	pending     StateID
	hasPending  bool
	ticks       uint64
	dispatching bool

	listeners map[int]Listener
	nextID    int
	onEnter   map[StateID][]Hook
	onExit    map[StateID][]Hook

	logger *slog.Logger
}

// MachineOption is a functional option for configuring a Machine
type MachineOption func(*Machine)

// WithLogger sets the logger for the machine
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithListener subscribes a listener before the machine is used
func WithListener(fn Listener) MachineOption {
	return func(m *Machine) {
		m.subscribe(fn)
	}
}

// NewMachine creates a Machine resting in the table's initial state
func NewMachine(table *Table, opts ...MachineOption) *Machine {
	m := &Machine{
		table:     table,
		current:   table.Initial(),
		listeners: make(map[int]Listener),
		onEnter:   make(map[StateID][]Hook),
		onExit:    make(map[StateID][]Hook),
		logger:    Logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Table returns the transition table the machine validates against
func (m *Machine) Table() *Table {
	return m.table
}

// Current returns the active state
func (m *Machine) Current() StateID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsInState checks if the given state is the current state
func (m *Machine) IsInState(id StateID) bool {
	return m.Current() == id
}

// Pending returns the request waiting for the next Advance, if any
func (m *Machine) Pending() (StateID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending, m.hasPending
}

// Ticks returns how many times Advance has run
func (m *Machine) Ticks() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

// Request stores target as the pending transition if it is a successor of the
// current state. A later request in the same tick replaces an earlier one.
// An illegal request returns an *IllegalTransitionError and keeps any earlier
// pending request.
func (m *Machine) Request(target StateID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestLocked(target)
}

// RequestLinear requests the current state's linear edge
func (m *Machine) RequestLinear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	to, ok := m.table.LinearEdge(m.current)
	if !ok {
		return &IllegalTransitionError{From: m.current}
	}
	return m.requestLocked(to)
}

func (m *Machine) requestLocked(target StateID) error {
	if !m.table.IsSuccessor(m.current, target) {
		m.logger.Debug("rejected transition request", "from", m.current, "to", target)
		return &IllegalTransitionError{From: m.current, To: target}
	}

	if m.hasPending && m.pending != target {
		m.logger.Debug("replacing pending request", "state", m.current, "old", m.pending, "new", target)
	}
	m.pending = target
	m.hasPending = true
	return nil
}

// Advance runs one tick: it commits the pending request if it is still legal,
// otherwise auto-advances a linear state. The committed transition, if any,
// is dispatched to exit hooks, listeners, and enter hooks before returning.
func (m *Machine) Advance() (TransitionEvent, bool) {
	m.mu.Lock()
	if m.dispatching {
		m.mu.Unlock()
		m.logger.Warn("advance called while dispatching a transition, ignoring")
		return TransitionEvent{}, false
	}

	m.ticks++
	from := m.current
	to, linear, ok := m.nextLocked()
	if !ok {
		m.mu.Unlock()
		return TransitionEvent{}, false
	}

	m.current = to
	m.dispatching = true
	ev := TransitionEvent{From: from, To: to, Linear: linear, Tick: m.ticks}
	m.mu.Unlock()

	// Cleared even if a hook or listener panics
	defer func() {
		m.mu.Lock()
		m.dispatching = false
		m.mu.Unlock()
	}()

	m.logger.Debug("transition", "from", from, "to", to, "linear", linear, "tick", ev.Tick)
	m.dispatch(ev)

	return ev, true
}

// nextLocked consumes the pending request and picks the target of this tick
func (m *Machine) nextLocked() (StateID, bool, bool) {
	if m.hasPending {
		target := m.pending
		m.pending = ""
		m.hasPending = false

		if m.table.IsSuccessor(m.current, target) {
			edge, _ := m.table.LinearEdge(m.current)
			return target, target == edge, true
		}
		m.logger.Warn("dropping stale pending request", "state", m.current, "pending", target)
	}

	if m.table.KindOf(m.current) == KindLinear {
		edge, _ := m.table.LinearEdge(m.current)
		return edge, true, true
	}

	return "", false, false
}

func (m *Machine) dispatch(ev TransitionEvent) {
	m.mu.Lock()
	exits := append([]Hook(nil), m.onExit[ev.From]...)
	enters := append([]Hook(nil), m.onEnter[ev.To]...)
	listeners := make([]Listener, 0, len(m.listeners))
	for id := 0; id < m.nextID; id++ {
		if fn, ok := m.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	m.mu.Unlock()

	ctx := &Context{Machine: m, Event: ev, Logger: m.logger}

	for _, h := range exits {
		if err := h(ctx); err != nil {
			m.logger.Error("exit hook failed", "state", ev.From, "error", err)
		}
	}
	for _, fn := range listeners {
		fn(ev)
	}
	for _, h := range enters {
		if err := h(ctx); err != nil {
			m.logger.Error("entry hook failed", "state", ev.To, "error", err)
		}
	}
}

// Subscribe registers a listener for every committed transition.
// The returned function removes it.
func (m *Machine) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.subscribe(fn)

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.listeners, id)
		})
	}
}

func (m *Machine) subscribe(fn Listener) int {
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return id
}

// OnEnter registers a hook that runs each time the state is entered
func (m *Machine) OnEnter(id StateID, fn Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnter[id] = append(m.onEnter[id], fn)
}

// OnExit registers a hook that runs each time the state is exited
func (m *Machine) OnExit(id StateID, fn Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExit[id] = append(m.onExit[id], fn)
}
