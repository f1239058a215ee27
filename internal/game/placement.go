package game

import (
	"image/color"
	"math/rand"
	"time"
)

const (
	playerSafeRadius     = 5   // enemies spawn at Chebyshev distance >= 5 from the player
	enemySpacing         = 3   // and >= 3 from each other
	spawnMargin          = 2   // candidate cells keep this many cells from each edge
	placementMaxAttempts = 500 // random draws per enemy before the exhaustive scan
)

// spawnRequest carries everything placement needs besides the RNG.
type spawnRequest struct {
	maze   *Maze
	player Position
	placed []*Enemy
}

// valid reports whether pos is a path cell far enough from the player and
// every enemy placed so far.
func (sr *spawnRequest) valid(pos Position) bool {
	if sr.maze.IsWall(pos.X, pos.Y) {
		return false
	}
	if pos.Chebyshev(sr.player) < playerSafeRadius {
		return false
	}
	for _, other := range sr.placed {
		if pos.Chebyshev(other.Position) < enemySpacing {
			return false
		}
	}
	return true
}

// sample draws up to placementMaxAttempts random candidates, then falls back
// to a row-major scan of the candidate window so placement always terminates.
func (sr *spawnRequest) sample(rng *rand.Rand) (Position, bool) {
	w := sr.maze.Cols() - 2*spawnMargin
	h := sr.maze.Rows() - 2*spawnMargin
	if w <= 0 || h <= 0 {
		return Position{}, false
	}
	for i := 0; i < placementMaxAttempts; i++ {
		pos := Position{X: rng.Intn(w) + spawnMargin, Y: rng.Intn(h) + spawnMargin}
		if sr.valid(pos) {
			return pos, true
		}
	}
	for y := spawnMargin; y < spawnMargin+h; y++ {
		for x := spawnMargin; x < spawnMargin+w; x++ {
			pos := Position{X: x, Y: y}
			if sr.valid(pos) {
				return pos, true
			}
		}
	}
	return Position{}, false
}

// PlaceEnemies spawns up to count enemies on the maze. Each enemy gets a
// red-dominant colour and a uniformly random personality from rng. When no
// valid cell is left the remaining enemies are skipped, so the result may be
// shorter than count.
func PlaceEnemies(m *Maze, player Position, count int, speed float64, rng *rand.Rand, now time.Duration) []*Enemy {
	sr := &spawnRequest{maze: m, player: player}
	for i := 0; i < count; i++ {
		pos, ok := sr.sample(rng)
		if !ok {
			break
		}
		col := color.RGBA{
			R: uint8(200 + rng.Intn(55)),
			G: uint8(rng.Intn(100)),
			B: uint8(rng.Intn(100)),
			A: 255,
		}
		personality := Personality(rng.Intn(int(personalityCount)))
		e := NewEnemy(i, pos, speed, personality, now)
		e.Color = col
		sr.placed = append(sr.placed, e)
	}
	return sr.placed
}
