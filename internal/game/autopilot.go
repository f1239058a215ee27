package game

// DefaultAutopilotInterval is the number of ticks between autopilot moves,
// roughly the pace of a player tapping a key four times a second.
const DefaultAutopilotInterval = 15

// Autopilot plays the player side of a round headlessly by walking the BFS
// shortest path to the exit. It ignores enemies entirely.
type Autopilot struct {
	moveEvery int
	wait      int
	path      []Position
	pathIndex int
}

// NewAutopilot returns an autopilot that moves once every moveEvery ticks.
// Values below 1 move every tick.
func NewAutopilot(moveEvery int) *Autopilot {
	if moveEvery < 1 {
		moveEvery = 1
	}
	return &Autopilot{moveEvery: moveEvery, wait: moveEvery}
}

// Reset drops the cached route, e.g. after Round.Restart.
func (a *Autopilot) Reset() {
	a.path = nil
	a.pathIndex = 0
	a.wait = a.moveEvery
}

// Step is called once per simulation tick. When the interval has elapsed it
// issues one MovePlayer toward the exit and reports whether the player moved.
func (a *Autopilot) Step(r *Round) bool {
	if r.State().Terminal() {
		return false
	}
	a.wait--
	if a.wait > 0 {
		return false
	}
	a.wait = a.moveEvery

	next, ok := a.nextCell(r)
	if !ok {
		return false
	}
	cur := r.Player()
	if !r.MovePlayer(next.X-cur.X, next.Y-cur.Y) {
		a.path = nil
		return false
	}
	a.pathIndex++
	return true
}

// nextCell returns the next waypoint, recomputing the route when the player
// is no longer where the cached path expects.
func (a *Autopilot) nextCell(r *Round) (Position, bool) {
	cur := r.Player()
	if a.path == nil || a.pathIndex >= len(a.path) || !a.onRoute(cur) {
		a.path = r.Maze().ShortestPath(cur, r.Maze().Exit())
		a.pathIndex = 0
	}
	if a.pathIndex >= len(a.path) {
		return Position{}, false
	}
	return a.path[a.pathIndex], true
}

// onRoute reports whether cur is the cell just before the next waypoint.
func (a *Autopilot) onRoute(cur Position) bool {
	return a.path[a.pathIndex].Manhattan(cur) == 1
}
