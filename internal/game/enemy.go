package game

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strings"
	"time"
)

const (
	wandererChaseChance = 0.2  // probability a wanderer pursues on a given decision
	randomStepAttempts  = 4    // direction draws before a random step gives up
	animationStep       = 0.05 // cosmetic phase advance per update call
)

// Personality is an enemy's fixed movement strategy.
type Personality int

const (
	PersonalityChaser   Personality = iota // direct pursuit
	PersonalityWanderer                    // mostly random, occasionally pursues
	PersonalityAmbusher                    // steers toward a point ahead of the player
	personalityCount                       // sentinel
)

func (p Personality) String() string {
	switch p {
	case PersonalityChaser:
		return "chaser"
	case PersonalityWanderer:
		return "wanderer"
	case PersonalityAmbusher:
		return "ambusher"
	default:
		return "unknown"
	}
}

// ParsePersonality maps a name produced by String back to a Personality.
func ParsePersonality(s string) (Personality, error) {
	for p := Personality(0); p < personalityCount; p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown personality %q", s)
}

// Enemy is an autonomous pursuer. Its personality is chosen at creation and
// never changes; its decisions are rate limited by Speed.
type Enemy struct {
	Position
	ID          int
	Speed       float64 // moves per second
	Personality Personality
	Color       color.RGBA

	lastMove time.Duration // simulated time of the last executed decision
	phase    float64       // animation phase, cosmetic only
	moves    int
}

// NewEnemy creates an enemy whose cooldown starts counting at now.
func NewEnemy(id int, pos Position, speed float64, personality Personality, now time.Duration) *Enemy {
	return &Enemy{
		Position:    pos,
		ID:          id,
		Speed:       speed,
		Personality: personality,
		Color:       color.RGBA{R: 220, G: 40, B: 40, A: 255},
		lastMove:    now,
	}
}

// Label returns a short identifier such as "E0" for logs.
func (e *Enemy) Label() string {
	return fmt.Sprintf("E%d", e.ID)
}

// Cooldown is the minimum simulated time between two decisions, 1000/speed ms.
// A non-positive speed never becomes ready.
func (e *Enemy) Cooldown() time.Duration {
	if e.Speed <= 0 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(float64(time.Second) / e.Speed)
}

// Ready reports whether the cooldown has elapsed at simulated time now.
func (e *Enemy) Ready(now time.Duration) bool {
	return now-e.lastMove >= e.Cooldown()
}

// Phase returns the cosmetic animation phase.
func (e *Enemy) Phase() float64 { return e.phase }

// Moves returns how many times the enemy has changed cell.
func (e *Enemy) Moves() int { return e.moves }

// Update advances the animation and, once the cooldown has elapsed, runs one
// movement decision for the enemy's personality. It reports whether a decision
// ran. The cooldown restarts whenever a decision runs, even if every step was
// blocked; calls made before it elapses change nothing but the animation.
func (e *Enemy) Update(now time.Duration, player Position, m *Maze, rng *rand.Rand) bool {
	e.phase += animationStep
	if !e.Ready(now) {
		return false
	}
	e.lastMove = now

	before := e.Position
	switch e.Personality {
	case PersonalityChaser:
		e.pursue(player, m, rng)
	case PersonalityWanderer:
		if rng.Float64() < wandererChaseChance {
			e.pursue(player, m, rng)
		} else {
			e.wander(m, rng)
		}
	case PersonalityAmbusher:
		e.pursue(e.interceptPoint(player), m, rng)
	}
	if e.Position != before {
		e.moves++
	}
	return true
}

// pursue takes one step toward target, or a random step if no step toward it
// is open.
func (e *Enemy) pursue(target Position, m *Maze, rng *rand.Rand) {
	if dir, ok := e.stepToward(target, m); ok {
		dx, dy := dir.Delta()
		e.Position = e.Add(dx, dy)
		return
	}
	e.wander(m, rng)
}

// stepToward picks the first open step that closes the gap to target, trying
// left, right, up, down in that order. Only one axis is corrected per step.
func (e *Enemy) stepToward(target Position, m *Maze) (Direction, bool) {
	switch {
	case target.X < e.X && !m.IsWall(e.X-1, e.Y):
		return DirLeft, true
	case target.X > e.X && !m.IsWall(e.X+1, e.Y):
		return DirRight, true
	case target.Y < e.Y && !m.IsWall(e.X, e.Y-1):
		return DirUp, true
	case target.Y > e.Y && !m.IsWall(e.X, e.Y+1):
		return DirDown, true
	}
	return 0, false
}

// wander draws up to randomStepAttempts uniform directions and takes the first
// one that is open. If every draw hits a wall the enemy stays put.
func (e *Enemy) wander(m *Maze, rng *rand.Rand) {
	for i := 0; i < randomStepAttempts; i++ {
		dx, dy := cardinalDirs[rng.Intn(len(cardinalDirs))].Delta()
		if !m.IsWall(e.X+dx, e.Y+dy) {
			e.Position = e.Add(dx, dy)
			return
		}
	}
}

// interceptPoint projects half the enemy-to-player offset past the player.
// Integer division truncates toward zero.
func (e *Enemy) interceptPoint(player Position) Position {
	return Position{
		X: player.X + (player.X-e.X)/2,
		Y: player.Y + (player.Y-e.Y)/2,
	}
}
