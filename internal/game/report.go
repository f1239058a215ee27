package game

import (
	"fmt"
	"sort"
	"strings"
)

// RunReport captures one finished (or abandoned) round.
type RunReport struct {
	Level           int
	Tier            Tier
	Ticks           int
	Seconds         float64 // simulated
	Outcome         Outcome
	TimeRemaining   int
	PlayerSteps     int
	ExitDistance    int // BFS steps from the player to the exit at report time
	EnemyCount      int
	EnemyMoves      map[Personality]int
	ClosestApproach int // -1 when the round had no enemies
}

// NewRunReport builds a report from the round's current state.
func NewRunReport(r *Round) RunReport {
	rep := RunReport{
		Level:           r.params.Number,
		Tier:            r.params.Tier,
		Ticks:           r.Tick(),
		Seconds:         r.Elapsed().Seconds(),
		Outcome:         r.Outcome(),
		TimeRemaining:   r.TimeRemaining(),
		PlayerSteps:     r.PlayerSteps(),
		ExitDistance:    r.maze.Distance(r.Player(), r.maze.Exit()),
		EnemyCount:      len(r.enemies),
		EnemyMoves:      make(map[Personality]int),
		ClosestApproach: r.ClosestApproach(),
	}
	for _, e := range r.enemies {
		rep.EnemyMoves[e.Personality] += e.Moves()
	}
	return rep
}

// Format returns a one-paragraph description suitable for a clipboard or log.
func (rr RunReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Level %d (%s): %s after %d ticks (%.1fs), %ds left\n",
		rr.Level, rr.Tier, rr.Outcome, rr.Ticks, rr.Seconds, rr.TimeRemaining)
	fmt.Fprintf(&sb, "  player steps=%d  exit distance=%d  enemies=%d  closest approach=%d\n",
		rr.PlayerSteps, rr.ExitDistance, rr.EnemyCount, rr.ClosestApproach)
	if rr.EnemyCount > 0 {
		sb.WriteString("  enemy moves:")
		for p := Personality(0); p < personalityCount; p++ {
			if n, ok := rr.EnemyMoves[p]; ok {
				fmt.Fprintf(&sb, " %s=%d", p, n)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Reporter ---

// RunReporter collects run reports and summarises them per level.
type RunReporter struct {
	history []RunReport
}

// NewRunReporter creates an empty reporter.
func NewRunReporter() *RunReporter {
	return &RunReporter{}
}

// Collect records the round's current state.
func (rp *RunReporter) Collect(r *Round) RunReport {
	rep := NewRunReport(r)
	rp.history = append(rp.history, rep)
	return rep
}

// Add records an already built report.
func (rp *RunReporter) Add(rep RunReport) {
	rp.history = append(rp.history, rep)
}

// Latest returns the most recent report, or nil if none collected yet.
func (rp *RunReporter) Latest() *RunReport {
	if len(rp.history) == 0 {
		return nil
	}
	return &rp.history[len(rp.history)-1]
}

// History returns all collected reports.
func (rp *RunReporter) History() []RunReport {
	return rp.history
}

// LevelSummary aggregates every run of one level.
type LevelSummary struct {
	Level       int
	Runs        int
	Wins        int
	Caught      int
	TimedOut    int
	Unfinished  int
	AvgTicks    float64
	AvgSteps    float64
	MinApproach int // -1 when no run had enemies
}

// WinRate returns wins as a fraction of runs.
func (ls LevelSummary) WinRate() float64 {
	if ls.Runs == 0 {
		return 0
	}
	return float64(ls.Wins) / float64(ls.Runs)
}

// ByLevel groups the history by level number, in ascending order.
func (rp *RunReporter) ByLevel() []LevelSummary {
	acc := map[int]*LevelSummary{}
	for _, rep := range rp.history {
		ls, ok := acc[rep.Level]
		if !ok {
			ls = &LevelSummary{Level: rep.Level, MinApproach: -1}
			acc[rep.Level] = ls
		}
		ls.Runs++
		switch rep.Outcome {
		case OutcomeExitReached:
			ls.Wins++
		case OutcomeCaught:
			ls.Caught++
		case OutcomeTimeExpired:
			ls.TimedOut++
		default:
			ls.Unfinished++
		}
		ls.AvgTicks += float64(rep.Ticks)
		ls.AvgSteps += float64(rep.PlayerSteps)
		if rep.ClosestApproach >= 0 && (ls.MinApproach < 0 || rep.ClosestApproach < ls.MinApproach) {
			ls.MinApproach = rep.ClosestApproach
		}
	}

	out := make([]LevelSummary, 0, len(acc))
	for _, ls := range acc {
		n := float64(ls.Runs)
		ls.AvgTicks /= n
		ls.AvgSteps /= n
		out = append(out, *ls)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// Format returns a human-readable table of per-level summaries.
func (rp *RunReporter) Format() string {
	summaries := rp.ByLevel()
	if len(summaries) == 0 {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Run Report (%d runs) ===\n", len(rp.history))
	fmt.Fprintf(&sb, "%-6s %5s %6s %6s %7s %6s %9s %9s %8s\n",
		"level", "runs", "wins", "caught", "timeout", "open", "avg_ticks", "avg_steps", "closest")
	for _, ls := range summaries {
		fmt.Fprintf(&sb, "%-6d %5d %6d %6d %7d %6d %9.1f %9.1f %8d\n",
			ls.Level, ls.Runs, ls.Wins, ls.Caught, ls.TimedOut, ls.Unfinished, ls.AvgTicks, ls.AvgSteps, ls.MinApproach)
	}
	return sb.String()
}
