package game

// Player represents the player's position on the level.
type Player struct {
	X, Y  float64
	Speed float64
}

// View is a snapshot of what the host should draw this frame.
type View struct {
	Mode   string
	Title  string
	Lines  []string
	Player *Player // Nil outside of gameplay
	Level  int
	Width  int
	Height int
}
