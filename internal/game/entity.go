package game

// Position is an integer grid coordinate.
type Position struct {
	X, Y int
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns |dx| + |dy| between two positions.
func (p Position) Manhattan(q Position) int {
	return absInt(p.X-q.X) + absInt(p.Y-q.Y)
}

// Chebyshev returns max(|dx|, |dy|) between two positions.
func (p Position) Chebyshev(q Position) int {
	return max(absInt(p.X-q.X), absInt(p.Y-q.Y))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the four cardinal grid steps.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// cardinalDirs is indexed by a uniform draw in [0,4) for random steps.
var cardinalDirs = [4]Direction{DirLeft, DirRight, DirUp, DirDown}

// Delta returns the unit (dx, dy) for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// isCardinalStep reports whether (dx, dy) is exactly one cell along one axis.
func isCardinalStep(dx, dy int) bool {
	return absInt(dx)+absInt(dy) == 1
}

// Player is the user-controlled entity. It moves one cell per command and
// never onto a wall.
type Player struct {
	Position
	steps int
}

// NewPlayer places a player at pos.
func NewPlayer(pos Position) *Player {
	return &Player{Position: pos}
}

// Move steps the player by (dx, dy). Diagonal, zero or multi-cell vectors and
// steps into walls are rejected silently; the return value reports whether
// the player moved.
func (p *Player) Move(dx, dy int, m *Maze) bool {
	if !isCardinalStep(dx, dy) {
		return false
	}
	next := p.Add(dx, dy)
	if m.IsWall(next.X, next.Y) {
		return false
	}
	p.Position = next
	p.steps++
	return true
}

// Steps returns how many moves the player has made.
func (p *Player) Steps() int { return p.steps }
