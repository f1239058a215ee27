package game

import (
	"fmt"
	"time"
)

// TestSim is a headless simulation harness used by tests and the report
// binary. It mirrors Game.Update without any Ebiten dependency: the autopilot
// moves first, then enemies tick, and the countdown fires on simulated time.
type TestSim struct {
	Round  *Round
	SimLog *SimLog

	params    LevelParams
	mazeRows  []string
	openMaze  bool
	playerAt  *Position
	enemies   []enemySpec
	noEnemies bool
	countdown bool
	autopilot *Autopilot

	nextCountdown time.Duration
}

type enemySpec struct {
	pos         Position
	personality Personality
	speed       float64
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptLevel  simOptionKind = iota // pick the base level, applied first
	simOptParams                      // tweak level parameters
	simOptLayout                      // override maze and entities after generation
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithLevel starts from the built-in parameters of level n.
func WithLevel(n int) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		p, err := LevelByNumber(n)
		if err != nil {
			panic(fmt.Sprintf("test harness: %v", err))
		}
		ts.params = p
	}}
}

// WithParams starts from explicit level parameters.
func WithParams(p LevelParams) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.params = p
	}}
}

// WithMazeSize sets the grid dimensions.
func WithMazeSize(rows, cols int) SimOption {
	return SimOption{simOptParams, func(ts *TestSim) {
		ts.params.Rows = rows
		ts.params.Cols = cols
	}}
}

// WithMazeSeed sets the maze generation seed.
func WithMazeSeed(seed int64) SimOption {
	return SimOption{simOptParams, func(ts *TestSim) {
		ts.params.Seed = seed
	}}
}

// WithEnemySeed sets the placement and behaviour seed.
func WithEnemySeed(seed int64) SimOption {
	return SimOption{simOptParams, func(ts *TestSim) {
		ts.params.EnemySeed = seed
	}}
}

// WithDensity sets the path density percentage.
func WithDensity(d int) SimOption {
	return SimOption{simOptParams, func(ts *TestSim) {
		ts.params.PathDensity = d
	}}
}

// WithTimeLimit sets the countdown in seconds.
func WithTimeLimit(seconds int) SimOption {
	return SimOption{simOptParams, func(ts *TestSim) {
		ts.params.TimeLimit = seconds
	}}
}

// WithoutCountdown stops the harness from ever calling TickCountdown.
func WithoutCountdown() SimOption {
	return SimOption{simOptParams, func(ts *TestSim) {
		ts.countdown = false
	}}
}

// WithVerbose enables per-decision logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptParams, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithAutopilot lets the autopilot drive the player, moving every moveEvery ticks.
func WithAutopilot(moveEvery int) SimOption {
	return SimOption{simOptParams, func(ts *TestSim) {
		ts.autopilot = NewAutopilot(moveEvery)
	}}
}

// WithOpenMaze replaces the generated maze with a walled box whose interior
// is all path.
func WithOpenMaze() SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.openMaze = true
	}}
}

// WithMazeLayout replaces the generated maze with a hand-drawn one ('#' wall).
func WithMazeLayout(rows ...string) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.mazeRows = rows
	}}
}

// WithPlayerAt moves the player to (x, y) instead of the start cell.
func WithPlayerAt(x, y int) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.playerAt = &Position{X: x, Y: y}
	}}
}

// WithEnemy adds a hand-placed enemy. Any WithEnemy replaces the placed ones.
func WithEnemy(x, y int, personality Personality, speed float64) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.enemies = append(ts.enemies, enemySpec{pos: Position{X: x, Y: y}, personality: personality, speed: speed})
	}}
}

// WithNoEnemies removes every placed enemy.
func WithNoEnemies() SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.noEnemies = true
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Base level (default: level 1)
//  2. Parameter tweaks (size, seeds, density, timer, verbose, autopilot)
//  3. Round construction
//  4. Layout overrides, re-applied on every Restart
//
// Invalid parameters panic; the harness is for scenarios the caller controls.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		params:    BeginnerLevel(1),
		SimLog:    NewSimLog(false),
		countdown: true,
	}
	for _, kind := range []simOptionKind{simOptLevel, simOptParams, simOptLayout} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}

	r, err := NewRound(ts.params, WithSimLog(ts.SimLog), withLayout(ts.applyLayout))
	if err != nil {
		panic(fmt.Sprintf("test harness: %v", err))
	}
	ts.Round = r
	ts.nextCountdown = CountdownInterval
	return ts
}

// applyLayout runs after every Round reset.
func (ts *TestSim) applyLayout(r *Round) {
	switch {
	case ts.mazeRows != nil:
		m, err := ParseMaze(ts.mazeRows)
		if err != nil {
			panic(fmt.Sprintf("test harness: %v", err))
		}
		r.maze = m
	case ts.openMaze:
		r.maze = NewOpenMaze(r.maze.Rows(), r.maze.Cols())
	}
	if ts.playerAt != nil {
		r.player = NewPlayer(*ts.playerAt)
	}
	switch {
	case ts.noEnemies:
		r.enemies = nil
	case len(ts.enemies) > 0:
		r.enemies = make([]*Enemy, 0, len(ts.enemies))
		for i, spec := range ts.enemies {
			r.enemies = append(r.enemies, NewEnemy(i, spec.pos, spec.speed, spec.personality, r.now))
		}
	}
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the round tick at which the predicate was satisfied,
// or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.Round.Tick()
		}
	}
	return -1
}

// RunToEnd advances until the round is terminal or maxTicks pass, and
// reports whether it ended.
func (ts *TestSim) RunToEnd(maxTicks int) bool {
	return ts.RunUntil(func(s *TestSim) bool { return s.Round.State().Terminal() }, maxTicks) >= 0
}

// runOneTick mirrors Game.Update for the headless harness.
func (ts *TestSim) runOneTick() {
	r := ts.Round

	// 1. INPUT
	if ts.autopilot != nil {
		ts.autopilot.Step(r)
	}

	// 2. ENEMIES + TERMINATION
	r.TickEnemies()

	// 3. COUNTDOWN
	if ts.countdown && r.Elapsed() >= ts.nextCountdown {
		r.TickCountdown()
		ts.nextCountdown += CountdownInterval
	}
}

// Restart restarts the round and the harness clocks.
func (ts *TestSim) Restart() {
	ts.Round.Restart()
	ts.nextCountdown = CountdownInterval
	if ts.autopilot != nil {
		ts.autopilot.Reset()
	}
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Round.Tick()
}

// SimSnapshot is a lightweight state summary.
type SimSnapshot struct {
	Tick          int
	Player        Position
	State         RoundState
	Outcome       Outcome
	TimeRemaining int
	Enemies       []EnemySnapshot
}

// EnemySnapshot is a lightweight copy of an enemy's state at a tick.
type EnemySnapshot struct {
	ID          int
	Label       string
	Personality Personality
	Pos         Position
	Moves       int
}

// Snapshot returns the current state of the round.
func (ts *TestSim) Snapshot() SimSnapshot {
	r := ts.Round
	snap := SimSnapshot{
		Tick:          r.Tick(),
		Player:        r.Player(),
		State:         r.State(),
		Outcome:       r.Outcome(),
		TimeRemaining: r.TimeRemaining(),
	}
	for _, e := range r.enemies {
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			ID:          e.ID,
			Label:       e.Label(),
			Personality: e.Personality,
			Pos:         e.Position,
			Moves:       e.Moves(),
		})
	}
	return snap
}
