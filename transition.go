package doublestate

// Transition is a declared edge of the table
type Transition struct {
	From   StateID
	To     StateID
	Linear bool // Edge is the source state's linear edge
}

// Kind returns "linear" or "arbitrary" depending on how the edge is taken
func (t Transition) Kind() Kind {
	if t.Linear {
		return KindLinear
	}
	return KindArbitrary
}
