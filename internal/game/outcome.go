package game

// RoundState is the lifecycle of a round. Running moves to exactly one of the
// two terminal states and stays there until Restart.
type RoundState int

const (
	RoundRunning RoundState = iota
	RoundLevelComplete
	RoundGameOver
)

func (s RoundState) String() string {
	switch s {
	case RoundRunning:
		return "running"
	case RoundLevelComplete:
		return "level_complete"
	case RoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state accepts no further simulation.
func (s RoundState) Terminal() bool {
	return s != RoundRunning
}

// Outcome records why a round ended.
type Outcome int

const (
	OutcomeNone        Outcome = iota // still running
	OutcomeExitReached                // player stood on the exit
	OutcomeCaught                     // player shared a cell with an enemy
	OutcomeTimeExpired                // countdown reached zero
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeExitReached:
		return "exit_reached"
	case OutcomeCaught:
		return "caught_by_enemy"
	case OutcomeTimeExpired:
		return "time_expired"
	default:
		return "unknown"
	}
}

// State returns the terminal state an outcome leads to.
func (o Outcome) State() RoundState {
	switch o {
	case OutcomeExitReached:
		return RoundLevelComplete
	case OutcomeCaught, OutcomeTimeExpired:
		return RoundGameOver
	default:
		return RoundRunning
	}
}
