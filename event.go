package doublestate

// TransitionEvent is emitted exactly once per committed transition
type TransitionEvent struct {
	From   StateID
	To     StateID
	Linear bool   // Transition followed the source state's linear edge
	Tick   uint64 // Machine tick that committed the transition
}

// SelfLoop reports whether the transition re-entered the same state
func (e TransitionEvent) SelfLoop() bool {
	return e.From == e.To
}

// Listener receives every committed transition
type Listener func(TransitionEvent)

// Hook runs when a specific state is entered or exited
type Hook func(ctx *Context) error
