package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Maze-Adventure/internal/game"
	"github.com/Garsondee/Maze-Adventure/internal/levels"
)

type runStats struct {
	runID     string
	runIndex  int
	level     int
	enemySeed int64

	report game.RunReport

	firstEnemyMoveTick int
	firstBlockedTick   int
	endTick            int

	playerMoves  int
	enemyMoves   int
	blockedMoves int
	movers       map[string]struct{}
}

type options struct {
	runs      int
	fromLevel int
	toLevel   int
	maxTicks  int
	moveEvery int
	seedBase  int64
	seedStep  int64
	parallel  int
	levels    game.LevelSource
}

func main() {
	var opts options
	var levelsPath string

	flag.IntVar(&opts.runs, "runs", 5, "headless runs per level")
	flag.IntVar(&opts.fromLevel, "from", 1, "first level to play")
	flag.IntVar(&opts.toLevel, "to", game.MaxLevel, "last level to play")
	flag.IntVar(&opts.maxTicks, "ticks", 7200, "tick cap per run")
	flag.IntVar(&opts.moveEvery, "move-every", game.DefaultAutopilotInterval, "ticks between autopilot moves")
	flag.Int64Var(&opts.seedBase, "seed-base", 42, "enemy seed for run 1")
	flag.Int64Var(&opts.seedStep, "seed-step", 1, "enemy seed increment between runs")
	flag.IntVar(&opts.parallel, "parallel", 4, "runs played concurrently")
	flag.StringVar(&levelsPath, "levels", "", "optional YAML level table")
	flag.Parse()

	if err := opts.validate(); err != nil {
		fmt.Println("error:", err)
		os.Exit(2)
	}
	src, err := levels.Source(levelsPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	opts.levels = src

	fmt.Printf("=== Headless Maze Report ===\n")
	fmt.Printf("levels=%d..%d runs=%d ticks=%d move_every=%d seed_base=%d seed_step=%d\n\n",
		opts.fromLevel, opts.toLevel, opts.runs, opts.maxTicks, opts.moveEvery, opts.seedBase, opts.seedStep)

	all, err := runAll(opts)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(rs)
	}
	printAggregate(all)
}

func (o options) validate() error {
	switch {
	case o.runs <= 0:
		return fmt.Errorf("-runs must be > 0")
	case o.maxTicks <= 0:
		return fmt.Errorf("-ticks must be > 0")
	case o.fromLevel < 1 || o.toLevel < o.fromLevel:
		return fmt.Errorf("invalid level range %d..%d", o.fromLevel, o.toLevel)
	case o.parallel <= 0:
		return fmt.Errorf("-parallel must be > 0")
	}
	return nil
}

// runAll plays every (level, run) pair. Each round is single-threaded; rounds
// run concurrently and results land in a fixed slot so output order is stable.
func runAll(o options) ([]runStats, error) {
	var jobs []func() (runStats, error)
	for lvl := o.fromLevel; lvl <= o.toLevel; lvl++ {
		params, err := o.levels(lvl)
		if err != nil {
			return nil, err
		}
		for i := 0; i < o.runs; i++ {
			seed := o.seedBase + int64(i)*o.seedStep
			runIndex := i + 1
			jobs = append(jobs, func() (runStats, error) {
				return runLevel(runIndex, params, seed, o.moveEvery, o.maxTicks), nil
			})
		}
	}

	out := make([]runStats, len(jobs))
	var g errgroup.Group
	g.SetLimit(o.parallel)
	for i, job := range jobs {
		g.Go(func() error {
			rs, err := job()
			if err != nil {
				return err
			}
			out[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func runLevel(runIndex int, params game.LevelParams, enemySeed int64, moveEvery, maxTicks int) runStats {
	ts := game.NewTestSim(
		game.WithParams(params),
		game.WithEnemySeed(enemySeed),
		game.WithAutopilot(moveEvery),
	)
	ts.RunToEnd(maxTicks)

	entries := ts.SimLog.Entries()
	movers := map[string]struct{}{}
	for _, e := range entries {
		if e.Category == "enemy" && e.Key == "move" {
			movers[e.Entity] = struct{}{}
		}
	}

	return runStats{
		runID:              uuid.NewString(),
		runIndex:           runIndex,
		level:              params.Number,
		enemySeed:          enemySeed,
		report:             game.NewRunReport(ts.Round),
		firstEnemyMoveTick: firstTick(entries, "enemy", "move", ""),
		firstBlockedTick:   firstTick(entries, "enemy", "blocked", ""),
		endTick:            firstTick(entries, "round", "end", ""),
		playerMoves:        ts.SimLog.CountCategory("player", "move"),
		enemyMoves:         ts.SimLog.CountCategory("enemy", "move"),
		blockedMoves:       ts.SimLog.CountCategory("enemy", "blocked"),
		movers:             movers,
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectCloseCall flags wins where an enemy got within one cell of the
// player, and losses that happened within a few steps of the exit.
func detectCloseCall(rs runStats) (bool, string) {
	rep := rs.report
	switch rep.Outcome {
	case game.OutcomeExitReached:
		if rep.ClosestApproach >= 0 && rep.ClosestApproach <= 1 {
			return true, fmt.Sprintf("won_with_enemy_adjacent(closest=%d)", rep.ClosestApproach)
		}
	case game.OutcomeCaught, game.OutcomeTimeExpired:
		if rep.ExitDistance >= 0 && rep.ExitDistance <= 3 {
			return true, fmt.Sprintf("lost_near_exit(distance=%d)", rep.ExitDistance)
		}
	}
	return false, "none"
}

func printRun(rs runStats) {
	fmt.Printf("--- Level %d run %d (enemy_seed=%d id=%s) ---\n", rs.level, rs.runIndex, rs.enemySeed, rs.runID)
	fmt.Print(rs.report.Format())
	fmt.Printf("markers: first_enemy_move=%d first_blocked=%d end=%d\n",
		rs.firstEnemyMoveTick, rs.firstBlockedTick, rs.endTick)
	fmt.Printf("event_totals: player_move=%d enemy_move=%d enemy_blocked=%d movers=[%s]\n",
		rs.playerMoves, rs.enemyMoves, rs.blockedMoves, joinSet(rs.movers))
	if ok, reason := detectCloseCall(rs); ok {
		fmt.Printf("close_call: %s\n", reason)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	reporter := game.NewRunReporter()
	closeCalls := map[int]int{}
	for _, rs := range all {
		reporter.Add(rs.report)
		if ok, _ := detectCloseCall(rs); ok {
			closeCalls[rs.level]++
		}
	}

	fmt.Print(reporter.Format())

	fmt.Println("\n=== Win Rate & Close Calls ===")
	for _, ls := range reporter.ByLevel() {
		fmt.Printf("  level %-3d win_rate=%5.1f%%  close_calls=%d\n", ls.Level, ls.WinRate()*100, closeCalls[ls.Level])
	}
	fmt.Printf("avg_events_per_run: enemy_move=%.1f enemy_blocked=%.1f player_move=%.1f\n",
		avg(sumOf(all, func(rs runStats) int { return rs.enemyMoves }), len(all)),
		avg(sumOf(all, func(rs runStats) int { return rs.blockedMoves }), len(all)),
		avg(sumOf(all, func(rs runStats) int { return rs.playerMoves }), len(all)))
	fmt.Printf("end_tick_avg=%s\n", avgTickString(endTicks(all)))
}

func endTicks(all []runStats) []int {
	out := make([]int, 0, len(all))
	for _, rs := range all {
		if rs.endTick >= 0 {
			out = append(out, rs.endTick)
		}
	}
	return out
}

func sumOf(all []runStats, field func(runStats) int) int {
	total := 0
	for _, rs := range all {
		total += field(rs)
	}
	return total
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
