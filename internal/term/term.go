// Package term is a terminal frontend for the maze game built on tcell. It
// drives the same Round as the windowed game with two tickers: one for the
// simulation step and one for the countdown.
package term

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Maze-Adventure/internal/game"
)

const (
	cellWidth   = 2  // terminal columns per maze cell
	warnSeconds = 10 // countdown seconds that turn the timer red and beep
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 96, 120)).Background(tcell.NewRGBColor(52, 56, 70))
	styleExit   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(40, 180, 70)).Bold(true)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 220, 255)).Background(tcell.NewRGBColor(40, 90, 230)).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleWin    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// personalityGlyph is the letter drawn for each enemy personality.
func personalityGlyph(p game.Personality) rune {
	switch p {
	case game.PersonalityChaser:
		return 'C'
	case game.PersonalityWanderer:
		return 'W'
	case game.PersonalityAmbusher:
		return 'A'
	default:
		return '?'
	}
}

// Frontend renders a round to a tcell screen and maps keys to moves.
type Frontend struct {
	screen     tcell.Screen
	levels     game.LevelSource
	firstLevel int
	round      *game.Round
	reporter   *game.RunReporter
	reported   bool
	sound      *Sounder
	message    string
}

// New starts level start on an initialised screen. sound may be nil.
func New(screen tcell.Screen, levels game.LevelSource, start int, sound *Sounder) (*Frontend, error) {
	f := &Frontend{
		screen:     screen,
		levels:     levels,
		firstLevel: start,
		reporter:   game.NewRunReporter(),
		sound:      sound,
	}
	if err := f.load(start); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Frontend) load(n int) error {
	params, err := f.levels(n)
	if err != nil {
		return err
	}
	r, err := game.NewRound(params)
	if err != nil {
		return fmt.Errorf("start level %d: %w", n, err)
	}
	f.round = r
	f.reported = false
	return nil
}

// Round returns the active round.
func (f *Frontend) Round() *game.Round { return f.round }

// Reporter returns the reports of every round finished or abandoned so far.
func (f *Frontend) Reporter() *game.RunReporter { return f.reporter }

// Run polls events and drives the round until the player quits or ctx is
// cancelled. Events are read on a separate goroutine; every state change
// happens on the calling goroutine.
func (f *Frontend) Run(ctx context.Context) error {
	simTicker := time.NewTicker(game.TickInterval)
	defer simTicker.Stop()
	clockTicker := time.NewTicker(game.CountdownInterval)
	defer clockTicker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	f.draw()
	for {
		select {
		case <-ctx.Done():
			f.collect()
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok {
				f.collect()
				return nil
			}
			if !f.HandleEvent(ev) {
				f.collect()
				return nil
			}
			f.draw()

		case <-simTicker.C:
			f.Step()
			f.draw()

		case <-clockTicker.C:
			f.Countdown()
			f.draw()
		}
	}
}

// Step runs one simulation tick and plays the end-of-round cue once.
func (f *Frontend) Step() {
	before := f.round.State()
	f.round.TickEnemies()
	f.afterTick(before)
}

// Countdown runs one countdown tick.
func (f *Frontend) Countdown() {
	before := f.round.State()
	f.round.TickCountdown()
	if t := f.round.TimeRemaining(); !f.round.State().Terminal() && t > 0 && t <= warnSeconds {
		f.sound.Play(CueWarning)
	}
	f.afterTick(before)
}

func (f *Frontend) afterTick(before game.RoundState) {
	now := f.round.State()
	if before.Terminal() || !now.Terminal() {
		return
	}
	f.collect()
	if now == game.RoundLevelComplete {
		f.sound.Play(CueWin)
	} else {
		f.sound.Play(CueLose)
	}
}

// collect records a report for the current round if not yet done.
func (f *Frontend) collect() {
	if f.reported {
		return
	}
	f.reporter.Collect(f.round)
	f.reported = true
}

// HandleEvent applies one terminal event and reports whether to keep running.
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return f.handleKey(ev)
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

func (f *Frontend) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		f.move(game.DirLeft)
	case tcell.KeyRight:
		f.move(game.DirRight)
	case tcell.KeyUp:
		f.move(game.DirUp)
	case tcell.KeyDown:
		f.move(game.DirDown)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'h', 'a':
			f.move(game.DirLeft)
		case 'l', 'd':
			f.move(game.DirRight)
		case 'k', 'w':
			f.move(game.DirUp)
		case 'j', 's':
			f.move(game.DirDown)
		case 'r':
			f.restart()
		case ' ':
			f.proceed()
		}
	}
	return true
}

func (f *Frontend) move(d game.Direction) {
	if f.round.State().Terminal() {
		return
	}
	dx, dy := d.Delta()
	if !f.round.MovePlayer(dx, dy) {
		f.sound.Play(CueBump)
	}
}

func (f *Frontend) restart() {
	f.collect()
	f.round.Restart()
	f.reported = false
	f.message = ""
}

// proceed restarts after a loss and advances after a win, wrapping to the
// first level when the table runs out.
func (f *Frontend) proceed() {
	switch f.round.State() {
	case game.RoundGameOver:
		f.restart()
	case game.RoundLevelComplete:
		next := f.round.Level().Number + 1
		err := f.load(next)
		if errors.Is(err, game.ErrUnknownLevel) {
			f.message = "All levels cleared! Starting over."
			err = f.load(f.firstLevel)
		} else {
			f.message = ""
		}
		if err != nil {
			f.message = err.Error()
		}
	}
}

func (f *Frontend) draw() {
	f.screen.Clear()
	r := f.round
	m := r.Maze()
	bg := rgb(r.Level().Background)

	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			if m.IsWall(x, y) {
				f.putCell(x, y, "██", styleWall)
				continue
			}
			f.putCell(x, y, "  ", tcell.StyleDefault.Background(bg))
		}
	}
	exit := m.Exit()
	f.putCell(exit.X, exit.Y, "[]", styleExit)

	for _, e := range r.Enemies() {
		st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(rgb(e.Color)).Bold(true)
		glyph := personalityGlyph(e.Personality)
		f.putCell(e.X, e.Y, string(glyph)+" ", st)
	}
	p := r.Player()
	f.putCell(p.X, p.Y, "@ ", stylePlayer)

	f.drawStatus(m.Rows())
	f.screen.Show()
}

func (f *Frontend) putCell(x, y int, s string, st tcell.Style) {
	col := x * cellWidth
	for i, ch := range []rune(s) {
		f.screen.SetContent(col+i, y, ch, nil, st)
	}
}

func (f *Frontend) drawStatus(row int) {
	r := f.round
	timeStyle := styleText
	if r.TimeRemaining() <= warnSeconds {
		timeStyle = styleAlert
	}
	x := f.putText(0, row, r.Level().Label(), styleText)
	x = f.putText(x+3, row, fmt.Sprintf("Time: %d", r.TimeRemaining()), timeStyle)
	f.putText(x+3, row, fmt.Sprintf("Enemies: %d", len(r.Enemies())), styleText)

	line, st := "arrows/hjkl/wasd move  r restart  q quit", styleDim
	switch r.State() {
	case game.RoundLevelComplete:
		line, st = "LEVEL COMPLETE  space: next level", styleWin
	case game.RoundGameOver:
		line, st = fmt.Sprintf("GAME OVER (%s)  space: try again", r.Outcome()), styleAlert
	}
	if f.message != "" && r.State() == game.RoundRunning {
		line, st = f.message, styleText
	}
	f.putText(0, row+1, line, st)
}

// putText writes s at (x, y) and returns the column after it.
func (f *Frontend) putText(x, y int, s string, st tcell.Style) int {
	for _, ch := range s {
		f.screen.SetContent(x, y, ch, nil, st)
		x++
	}
	return x
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
