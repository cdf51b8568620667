package doublestate

import "log/slog"

// Context is passed to enter and exit hooks
type Context struct {
	Machine *Machine
	Event   TransitionEvent // Transition being dispatched
	Logger  *slog.Logger
}

// FromState returns the state the machine is leaving
func (c *Context) FromState() StateID {
	return c.Event.From
}

// ToState returns the state the machine is entering
func (c *Context) ToState() StateID {
	return c.Event.To
}

// CurrentState returns the current state of the machine
func (c *Context) CurrentState() StateID {
	return c.Machine.Current()
}

// Request asks for a transition on the next tick.
// Hooks run after the commit, so the request is validated against the new state.
func (c *Context) Request(target StateID) error {
	return c.Machine.Request(target)
}
