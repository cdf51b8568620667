package doublestate

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// System is per-tick game logic that runs before the machine advances.
// Systems read the current state and request transitions.
type System func(m *Machine) error

// Loop drives a Machine the way a host scheduler does: every tick runs the
// systems in registration order, then calls Advance exactly once.
type Loop struct {
	machine  *Machine
	systems  []System
	interval time.Duration
	maxTicks uint64
	logger   *slog.Logger
}

// LoopOption is a functional option for configuring a Loop
type LoopOption func(*Loop)

// WithTickRate sets how many ticks per second Run performs. Rates that are
// not positive or exceed one tick per nanosecond are ignored.
func WithTickRate(tps int) LoopOption {
	return func(l *Loop) {
		if tps <= 0 {
			return
		}
		if interval := time.Second / time.Duration(tps); interval > 0 {
			l.interval = interval
		}
	}
}

// WithMaxTicks stops Run after n ticks. Zero means no limit.
func WithMaxTicks(n uint64) LoopOption {
	return func(l *Loop) {
		l.maxTicks = n
	}
}

// WithSystems appends systems to the loop
func WithSystems(systems ...System) LoopOption {
	return func(l *Loop) {
		l.systems = append(l.systems, systems...)
	}
}

// NewLoop creates a loop for the machine, ticking 60 times per second by default
func NewLoop(m *Machine, opts ...LoopOption) *Loop {
	l := &Loop{
		machine:  m,
		interval: time.Second / 60,
		logger:   m.logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddSystem appends a system to run on every tick
func (l *Loop) AddSystem(s System) {
	l.systems = append(l.systems, s)
}

// Machine returns the machine driven by the loop
func (l *Loop) Machine() *Machine {
	return l.machine
}

// Tick runs all systems and then advances the machine once.
// A failing system aborts the tick before Advance.
func (l *Loop) Tick() (TransitionEvent, bool, error) {
	for i, s := range l.systems {
		if err := s(l.machine); err != nil {
			return TransitionEvent{}, false, fmt.Errorf("system %d: %w", i, err)
		}
	}
	ev, ok := l.machine.Advance()
	return ev, ok, nil
}

// Run ticks at the configured rate until the context is done, the machine
// rests in a terminal state, or the tick limit is reached.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	var n uint64
	for {
		if l.machine.Table().KindOf(l.machine.Current()) == KindTerminal {
			l.logger.Debug("loop stopped in terminal state", "state", l.machine.Current(), "ticks", n)
			return nil
		}
		if l.maxTicks > 0 && n >= l.maxTicks {
			l.logger.Debug("loop reached tick limit", "state", l.machine.Current(), "ticks", n)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if _, _, err := l.Tick(); err != nil {
			return err
		}
		n++
	}
}
