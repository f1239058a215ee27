package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Maze-Adventure/internal/game"
)

func newTestFrontend(t *testing.T, src game.LevelSource) (*Frontend, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	f, err := New(screen, src, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f, screen
}

func keyFor(d game.Direction) *tcell.EventKey {
	switch d {
	case game.DirLeft:
		return tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)
	case game.DirRight:
		return tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)
	case game.DirUp:
		return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	default:
		return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	}
}

func dirBetween(from, to game.Position) game.Direction {
	switch {
	case to.X < from.X:
		return game.DirLeft
	case to.X > from.X:
		return game.DirRight
	case to.Y < from.Y:
		return game.DirUp
	default:
		return game.DirDown
	}
}

func TestFrontend_ArrowKeyMovesPlayer(t *testing.T) {
	f, _ := newTestFrontend(t, game.LevelByNumber)
	m := f.Round().Maze()
	start := f.Round().Player()
	path := m.ShortestPath(start, m.Exit())
	if len(path) == 0 {
		t.Fatalf("expected a route to the exit")
	}
	if !f.HandleEvent(keyFor(dirBetween(start, path[0]))) {
		t.Fatalf("expected the frontend to keep running after a move key")
	}
	if got := f.Round().Player(); got != path[0] {
		t.Fatalf("expected player at %v, got %v", path[0], got)
	}
}

func TestFrontend_QuitKeys(t *testing.T) {
	f, _ := newTestFrontend(t, game.LevelByNumber)
	if f.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("expected Escape to stop the frontend")
	}
	if f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("expected q to stop the frontend")
	}
}

func TestFrontend_DrawPlacesPlayerAndExit(t *testing.T) {
	f, screen := newTestFrontend(t, game.LevelByNumber)
	f.draw()

	p := f.Round().Player()
	if r, _, _, _ := screen.GetContent(p.X*cellWidth, p.Y); r != '@' {
		t.Fatalf("expected '@' at the player cell, got %q", r)
	}
	exit := f.Round().Maze().Exit()
	if r, _, _, _ := screen.GetContent(exit.X*cellWidth, exit.Y); r != '[' {
		t.Fatalf("expected '[' at the exit cell, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != '█' {
		t.Fatalf("expected a wall glyph at the corner, got %q", r)
	}
}

func TestFrontend_WinThenSpaceAdvances(t *testing.T) {
	f, _ := newTestFrontend(t, game.LevelByNumber)
	m := f.Round().Maze()
	cur := f.Round().Player()
	for _, next := range m.ShortestPath(cur, m.Exit()) {
		f.HandleEvent(keyFor(dirBetween(cur, next)))
		cur = next
	}
	f.Step()
	if f.Round().State() != game.RoundLevelComplete {
		t.Fatalf("expected level complete, got %s", f.Round().State())
	}
	if n := len(f.Reporter().History()); n != 1 {
		t.Fatalf("expected 1 report, got %d", n)
	}

	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if got := f.Round().Level().Number; got != 2 {
		t.Fatalf("expected level 2 after space, got %d", got)
	}
	if f.Round().State() != game.RoundRunning {
		t.Fatalf("expected a running round, got %s", f.Round().State())
	}
}

func TestFrontend_TimeoutThenSpaceRestarts(t *testing.T) {
	short := func(n int) (game.LevelParams, error) {
		p, err := game.LevelByNumber(n)
		p.TimeLimit = 1
		return p, err
	}
	f, _ := newTestFrontend(t, short)
	f.Countdown()
	if f.Round().Outcome() != game.OutcomeTimeExpired {
		t.Fatalf("expected time_expired, got %s", f.Round().Outcome())
	}

	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if f.Round().State() != game.RoundRunning || f.Round().TimeRemaining() != 1 {
		t.Fatalf("expected a restarted round with 1s, got %s with %ds", f.Round().State(), f.Round().TimeRemaining())
	}
	if got := f.Round().Level().Number; got != 1 {
		t.Fatalf("expected to stay on level 1, got %d", got)
	}
}

func TestFrontend_LastLevelWrapsToFirst(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	f, err := New(screen, game.LevelByNumber, game.MaxLevel, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.firstLevel = 1

	// Enemies do not act between key presses, and the exit wins ties.
	m := f.Round().Maze()
	cur := f.Round().Player()
	for _, next := range m.ShortestPath(cur, m.Exit()) {
		f.HandleEvent(keyFor(dirBetween(cur, next)))
		cur = next
	}
	f.Step()
	if f.Round().State() != game.RoundLevelComplete {
		t.Fatalf("expected level complete, got %s", f.Round().Outcome())
	}
	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if got := f.Round().Level().Number; got != 1 {
		t.Fatalf("expected wrap to level 1, got %d", got)
	}
	if f.message == "" {
		t.Fatalf("expected a wrap message")
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	if _, err := New(screen, game.LevelByNumber, 99, nil); err == nil {
		t.Fatalf("expected an error for level 99")
	}
}
