package game

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"
)

const (
	// TickInterval is the simulated time one TickEnemies call advances, matching
	// the 60 Hz update rate of the frontends.
	TickInterval = 16 * time.Millisecond
	// CountdownInterval is the wall-clock period between TickCountdown calls.
	CountdownInterval = time.Second
)

var (
	eventColPlayer = color.RGBA{R: 80, G: 140, B: 255, A: 255}
	eventColExit   = color.RGBA{R: 60, G: 200, B: 90, A: 255}
	eventColRound  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	eventColClock  = color.RGBA{R: 230, G: 200, B: 60, A: 255}
)

// RoundOption configures a Round at construction.
type RoundOption func(*Round)

// WithSimLog records structured events into sl.
func WithSimLog(sl *SimLog) RoundOption {
	return func(r *Round) { r.log = sl }
}

// WithEventLog mirrors notable events into the on-screen ring buffer.
func WithEventLog(el *EventLog) RoundOption {
	return func(r *Round) { r.events = el }
}

// withLayout installs a hook that runs after every (re)initialisation, used by
// the test harness to override the generated maze and entities.
func withLayout(fn func(*Round)) RoundOption {
	return func(r *Round) { r.layout = fn }
}

// Round is one attempt at a level: the maze, the player, the enemies, the
// countdown and the terminal state. It is single-threaded; callers drive it
// with MovePlayer, TickEnemies and TickCountdown from one goroutine.
type Round struct {
	params LevelParams

	maze    *Maze
	player  *Player
	enemies []*Enemy
	rng     *rand.Rand

	timeRemaining int
	state         RoundState
	outcome       Outcome
	now           time.Duration
	tick          int
	closest       int // minimum enemy Manhattan distance seen this round, -1 if no enemies

	log    *SimLog
	events *EventLog
	layout func(*Round)
}

// NewRound validates params and builds a fresh round from them.
func NewRound(params LevelParams, opts ...RoundOption) (*Round, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	r := &Round{params: params}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = NewSimLog(false)
	}
	r.reset()
	return r, nil
}

// reset regenerates every entity from the level parameters. Identical
// parameters always produce an identical starting position.
func (r *Round) reset() {
	p := r.params
	r.maze = NewMaze(p.Rows, p.Cols, p.PathDensity, p.Seed)
	r.rng = rand.New(rand.NewSource(p.EnemySeed)) // #nosec G404 -- deterministic enemy placement and behaviour
	r.player = NewPlayer(r.maze.Start())
	r.now = 0
	r.tick = 0
	r.timeRemaining = p.TimeLimit
	r.state = RoundRunning
	r.outcome = OutcomeNone
	r.enemies = PlaceEnemies(r.maze, r.player.Position, p.EnemyCount, p.EnemySpeed, r.rng, r.now)

	if r.layout != nil {
		r.layout(r)
	}
	r.closest = r.nearestEnemy()

	r.log.Add(0, "--", logCatMaze, logKeyGenerated,
		fmt.Sprintf("%dx%d density=%d seed=%d paths=%d", r.maze.Cols(), r.maze.Rows(), r.maze.PathDensity(), p.Seed, r.maze.PathCount()),
		float64(r.maze.PathCount()))
	for _, e := range r.enemies {
		r.log.Add(0, e.Label(), logCatSpawn, logKeyPlaced,
			fmt.Sprintf("%s at (%d,%d) speed=%.2f", e.Personality, e.X, e.Y, e.Speed), e.Speed)
	}
	if short := p.EnemyCount - len(r.enemies); short > 0 && r.layout == nil {
		r.log.Add(0, "--", logCatSpawn, logKeyShortfall,
			fmt.Sprintf("placed %d of %d enemies", len(r.enemies), p.EnemyCount), float64(short))
		r.event("--", eventColRound, fmt.Sprintf("only %d/%d enemies fit", len(r.enemies), p.EnemyCount))
	}
	r.log.Add(0, "--", logCatRound, logKeyStart, r.params.Label(), float64(r.timeRemaining))
	r.event("--", eventColRound, r.params.Label())
}

// Restart reinitialises the maze and every entity from the same level
// parameters, returning the round to Running.
func (r *Round) Restart() {
	r.log.Add(r.tick, "--", logCatRound, logKeyRestart,
		fmt.Sprintf("after %s", r.outcome), 0)
	r.reset()
}

// MovePlayer applies one player move command. Only unit cardinal vectors onto
// path cells are accepted; anything else, or any move after the round ended,
// is ignored. Termination is evaluated by the next TickEnemies.
func (r *Round) MovePlayer(dx, dy int) bool {
	if r.state.Terminal() {
		return false
	}
	from := r.player.Position
	if !r.player.Move(dx, dy, r.maze) {
		r.log.AddVerbose(r.tick, "P", logCatPlayer, logKeyBlocked,
			fmt.Sprintf("(%d,%d) + (%d,%d)", from.X, from.Y, dx, dy), 0)
		return false
	}
	r.log.Add(r.tick, "P", logCatPlayer, logKeyMove,
		fmt.Sprintf("(%d,%d) → (%d,%d)", from.X, from.Y, r.player.X, r.player.Y), float64(r.player.Steps()))
	return true
}

// TickEnemies runs one simulation step: the clock advances by TickInterval,
// every enemy gets one gated decision in creation order, then termination is
// evaluated with the exit checked before enemy contact.
func (r *Round) TickEnemies() {
	if r.state.Terminal() {
		return
	}
	r.tick++
	r.now += TickInterval

	player := r.player.Position
	for _, e := range r.enemies {
		from := e.Position
		if !e.Update(r.now, player, r.maze, r.rng) {
			continue
		}
		switch {
		case e.Position != from:
			r.log.Add(r.tick, e.Label(), logCatEnemy, logKeyMove,
				fmt.Sprintf("(%d,%d) → (%d,%d)", from.X, from.Y, e.X, e.Y), float64(e.Manhattan(player)))
		default:
			r.log.Add(r.tick, e.Label(), logCatEnemy, logKeyBlocked,
				fmt.Sprintf("%s stayed at (%d,%d)", e.Personality, e.X, e.Y), 0)
		}
		r.log.AddVerbose(r.tick, e.Label(), logCatEnemy, logKeyDecision, e.Personality.String(), r.now.Seconds())
	}

	if d := r.nearestEnemy(); d >= 0 && (r.closest < 0 || d < r.closest) {
		r.closest = d
	}
	r.checkTerminal()
}

// checkTerminal applies the termination rules. Exit-reached wins a tie with
// enemy contact.
func (r *Round) checkTerminal() {
	p := r.player.Position
	if p == r.maze.Exit() {
		r.finish(OutcomeExitReached, "P", eventColExit, "reached the exit")
		return
	}
	for _, e := range r.enemies {
		if e.Position == p {
			r.finish(OutcomeCaught, e.Label(), e.Color, fmt.Sprintf("%s caught the player", e.Personality))
			return
		}
	}
}

// TickCountdown decrements the remaining time by one second. Reaching zero
// while still running ends the round with OutcomeTimeExpired.
func (r *Round) TickCountdown() {
	if r.state.Terminal() {
		return
	}
	if r.timeRemaining > 0 {
		r.timeRemaining--
	}
	r.log.AddVerbose(r.tick, "--", logCatClock, logKeyCountdown,
		fmt.Sprintf("%ds left", r.timeRemaining), float64(r.timeRemaining))
	if r.timeRemaining <= 10 && r.timeRemaining > 0 {
		r.event("--", eventColClock, fmt.Sprintf("%ds left", r.timeRemaining))
	}
	if r.timeRemaining == 0 {
		r.finish(OutcomeTimeExpired, "--", eventColClock, "time expired")
	}
}

func (r *Round) finish(o Outcome, label string, col color.RGBA, msg string) {
	r.outcome = o
	r.state = o.State()
	r.log.Add(r.tick, label, logCatRound, logKeyEnd,
		fmt.Sprintf("%s: %s", o, msg), float64(r.timeRemaining))
	r.event(label, col, msg)
}

func (r *Round) event(label string, col color.RGBA, msg string) {
	if r.events != nil {
		r.events.Add(r.tick, label, col, msg)
	}
}

// nearestEnemy returns the smallest Manhattan distance from the player to any
// enemy, or -1 when there are none.
func (r *Round) nearestEnemy() int {
	best := -1
	for _, e := range r.enemies {
		if d := e.Manhattan(r.player.Position); best < 0 || d < best {
			best = d
		}
	}
	return best
}

// Level returns the parameters the round was built from.
func (r *Round) Level() LevelParams { return r.params }

// Maze returns the shared read-only grid.
func (r *Round) Maze() *Maze { return r.maze }

// Player returns the player's current position.
func (r *Round) Player() Position { return r.player.Position }

// PlayerSteps returns how many moves the player has made this round.
func (r *Round) PlayerSteps() int { return r.player.Steps() }

// Enemies returns copies of every enemy, in creation order.
func (r *Round) Enemies() []Enemy {
	out := make([]Enemy, len(r.enemies))
	for i, e := range r.enemies {
		out[i] = *e
	}
	return out
}

// TimeRemaining returns the countdown in whole seconds.
func (r *Round) TimeRemaining() int { return r.timeRemaining }

// State returns the lifecycle state.
func (r *Round) State() RoundState { return r.state }

// Outcome returns why the round ended, or OutcomeNone while running.
func (r *Round) Outcome() Outcome { return r.outcome }

// Elapsed returns the simulated time advanced by TickEnemies.
func (r *Round) Elapsed() time.Duration { return r.now }

// Tick returns how many simulation steps have run.
func (r *Round) Tick() int { return r.tick }

// ClosestApproach returns the smallest enemy-to-player Manhattan distance
// observed this round, or -1 if the round has no enemies.
func (r *Round) ClosestApproach() int { return r.closest }

// Log returns the structured event log.
func (r *Round) Log() *SimLog { return r.log }
