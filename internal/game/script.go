package game

import (
	"fmt"
	"strings"

	"github.com/librescoot/doublestate"
)

// ParseScript splits a comma separated list of game modes.
func ParseScript(s string) []doublestate.StateID {
	var out []doublestate.StateID
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, doublestate.StateID(part))
		}
	}
	return out
}

// ScriptSystem replays targets in order, requesting the next one whenever the
// machine rests in an arbitrary mode. An illegal step fails the tick.
func ScriptSystem(targets []doublestate.StateID) doublestate.System {
	next := 0
	return func(m *doublestate.Machine) error {
		if next >= len(targets) {
			return nil
		}
		if m.Table().KindOf(m.Current()) != doublestate.KindArbitrary {
			return nil
		}
		if _, ok := m.Pending(); ok {
			return nil
		}
		if err := m.Request(targets[next]); err != nil {
			return fmt.Errorf("script step %d: %w", next, err)
		}
		next++
		return nil
	}
}
