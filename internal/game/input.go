package game

// Input handles keyboard input from the host.
type Input interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads
const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyO // Options
	KeyN // Next level
	KeyQ // Quit to exit
)

// Keys lists every key the game reads, for backends that poll them
var Keys = []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyEnter, KeyEscape, KeyBackspace, KeyO, KeyN, KeyQ}
