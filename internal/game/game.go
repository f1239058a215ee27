package game

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// tileSize is the pixel edge of one maze cell.
	tileSize = 32
	// borderWidth is the pixel gap between the window edge and the maze.
	borderWidth = 16
	// hudHeight is the status bar above the maze.
	hudHeight = 40

	hudFontSize    = 16
	bannerFontSize = 30

	// Held movement keys repeat after keyRepeatDelay frames, every keyRepeatInterval frames.
	keyRepeatDelay    = 18
	keyRepeatInterval = 6

	statusFrames = 180 // how long a status message stays visible
)

var (
	wallCol   = color.RGBA{R: 52, G: 56, B: 70, A: 255}
	wallEdge  = color.RGBA{R: 74, G: 80, B: 98, A: 255}
	exitCol   = color.RGBA{R: 40, G: 180, B: 70, A: 255}
	playerCol = color.RGBA{R: 40, G: 90, B: 230, A: 255}
	hudBg     = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	hudText   = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	dimText   = color.RGBA{R: 150, G: 150, B: 170, A: 255}
)

// moveKeys maps each direction to the keys that issue it.
var moveKeys = [4]struct {
	dir  Direction
	keys []ebiten.Key
}{
	{DirLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{DirRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{DirUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{DirDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
}

// Game is the Ebiten frontend: it owns one Round at a time and drives it at
// 60 TPS, with the countdown advanced every DefaultTPS updates.
type Game struct {
	width  int
	height int
	offX   int // pixel offset from window left to maze left
	offY   int // pixel offset from window top to maze top

	levels     LevelSource
	firstLevel int
	round      *Round
	events     *EventLog
	reporter   *RunReporter
	reported   bool
	tick       int // frames since the round started

	hudFace    *text.GoTextFace
	bannerFace *text.GoTextFace

	status      string
	statusTicks int
}

// New builds a game starting at level start, looked up through levels.
func New(levels LevelSource, start int) (*Game, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load hud font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load banner font: %w", err)
	}

	g := &Game{
		levels:     levels,
		firstLevel: start,
		events:     NewEventLog(),
		reporter:   NewRunReporter(),
		hudFace:    &text.GoTextFace{Source: regular, Size: hudFontSize},
		bannerFace: &text.GoTextFace{Source: bold, Size: bannerFontSize},
	}
	if err := g.loadLevel(start); err != nil {
		return nil, err
	}
	return g, nil
}

// loadLevel replaces the current round with a fresh round of level n.
func (g *Game) loadLevel(n int) error {
	params, err := g.levels(n)
	if err != nil {
		return err
	}
	r, err := NewRound(params, WithEventLog(g.events))
	if err != nil {
		return fmt.Errorf("start level %d: %w", n, err)
	}
	g.round = r
	g.tick = 0
	g.reported = false
	g.resize()
	return nil
}

func (g *Game) resize() {
	m := g.round.Maze()
	g.offX = borderWidth
	g.offY = hudHeight + borderWidth
	g.width = borderWidth + m.Cols()*tileSize + borderWidth + logPanelWidth
	g.height = hudHeight + borderWidth + m.Rows()*tileSize + borderWidth
}

// Size returns the window size needed for the current level.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleInput()
	g.simTick()
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

// simTick runs one simulation tick.
func (g *Game) simTick() {
	g.tick++

	// 1. ENEMIES + TERMINATION.
	g.round.TickEnemies()

	// 2. COUNTDOWN: once per second of updates.
	if g.tick%ebiten.DefaultTPS == 0 {
		g.round.TickCountdown()
	}

	// 3. ANALYTICS: one report per finished round.
	if g.round.State().Terminal() && !g.reported {
		g.reporter.Collect(g.round)
		g.reported = true
	}
}

// handleInput processes movement (with key repeat) and edge-triggered commands.
func (g *Game) handleInput() {
	for _, mk := range moveKeys {
		for _, k := range mk.keys {
			if keyRepeats(k) {
				dx, dy := mk.dir.Delta()
				g.round.MovePlayer(dx, dy)
				break
			}
		}
	}

	// SPACE: restart after a loss, next level after a win.
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		switch g.round.State() {
		case RoundGameOver:
			g.restart()
		case RoundLevelComplete:
			g.advance()
		}
	}

	// R: restart the current level at any time.
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}

	// C: copy the latest run report.
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySummary()
	}
}

// keyRepeats reports whether k was just pressed or is being held long enough
// to auto-repeat this frame.
func keyRepeats(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	if d == 1 {
		return true
	}
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}

func (g *Game) restart() {
	if !g.reported {
		g.reporter.Collect(g.round)
	}
	g.round.Restart()
	g.tick = 0
	g.reported = false
}

// advance loads the next level, wrapping to the first when the table ends.
func (g *Game) advance() {
	next := g.round.Level().Number + 1
	err := g.loadLevel(next)
	if errors.Is(err, ErrUnknownLevel) {
		g.setStatus("All levels cleared! Starting over.")
		err = g.loadLevel(g.firstLevel)
	}
	if err != nil {
		g.setStatus(err.Error())
	}
}

func (g *Game) copySummary() {
	rep := NewRunReport(g.round)
	if latest := g.reporter.Latest(); latest != nil && g.reported {
		rep = *latest
	}
	summary := rep.Format() + g.round.Log().Summary(g.round)
	if err := clipboard.WriteAll(summary); err != nil {
		g.setStatus("clipboard: " + err.Error())
		return
	}
	g.setStatus("Run summary copied to clipboard")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = statusFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 14, A: 255})

	g.drawMaze(screen)
	g.drawEnemies(screen)
	g.drawPlayer(screen)

	// Maze border frame.
	m := g.round.Maze()
	mw := float32(m.Cols() * tileSize)
	mh := float32(m.Rows() * tileSize)
	vector.StrokeRect(screen, float32(g.offX)-2, float32(g.offY)-2, mw+4, mh+4, 2.0, wallEdge, false)

	g.drawHUD(screen)
	if g.round.State().Terminal() {
		g.drawBanner(screen)
	}

	logX := g.offX + m.Cols()*tileSize + borderWidth
	g.events.Draw(screen, logX, g.height)
}

func (g *Game) drawMaze(screen *ebiten.Image) {
	m := g.round.Maze()
	bg := g.round.Level().Background
	ts := float32(tileSize)
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			px := float32(g.offX + x*tileSize)
			py := float32(g.offY + y*tileSize)
			if m.IsWall(x, y) {
				vector.FillRect(screen, px, py, ts, ts, wallCol, false)
				vector.StrokeLine(screen, px, py+0.5, px+ts, py+0.5, 1.0, wallEdge, false)
				continue
			}
			vector.FillRect(screen, px, py, ts, ts, bg, false)
		}
	}

	exit := m.Exit()
	ex := float32(g.offX + exit.X*tileSize)
	ey := float32(g.offY + exit.Y*tileSize)
	vector.FillRect(screen, ex+2, ey+2, ts-4, ts-4, exitCol, false)
	vector.StrokeRect(screen, ex+2, ey+2, ts-4, ts-4, 1.5, color.RGBA{R: 20, G: 110, B: 40, A: 255}, true)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.round.Player()
	cx, cy := g.cellCentre(p)
	vector.FillCircle(screen, cx, cy, tileSize*0.36, playerCol, true)
	vector.StrokeCircle(screen, cx, cy, tileSize*0.36, 1.5, color.RGBA{R: 200, G: 220, B: 255, A: 255}, true)
}

// drawEnemies renders each personality as a distinct shape: chasers are
// squares, wanderers diamonds, ambushers triangles. The animation phase adds
// a small bob.
func (g *Game) drawEnemies(screen *ebiten.Image) {
	for _, e := range g.round.Enemies() {
		cx, cy := g.cellCentre(e.Position)
		cy += float32(math.Sin(e.Phase()*2*math.Pi) * 2)
		r := float32(tileSize) * 0.36

		var path vector.Path
		switch e.Personality {
		case PersonalityChaser:
			path.MoveTo(cx-r, cy-r)
			path.LineTo(cx+r, cy-r)
			path.LineTo(cx+r, cy+r)
			path.LineTo(cx-r, cy+r)
		case PersonalityWanderer:
			path.MoveTo(cx, cy-r)
			path.LineTo(cx+r, cy)
			path.LineTo(cx, cy+r)
			path.LineTo(cx-r, cy)
		default:
			path.MoveTo(cx, cy-r)
			path.LineTo(cx+r, cy+r)
			path.LineTo(cx-r, cy+r)
		}
		path.Close()

		opts := &vector.DrawPathOptions{AntiAlias: true}
		opts.ColorScale.ScaleWithColor(e.Color)
		vector.FillPath(screen, &path, &vector.FillOptions{}, opts)
	}
}

func (g *Game) cellCentre(p Position) (float32, float32) {
	return float32(g.offX+p.X*tileSize) + tileSize/2, float32(g.offY+p.Y*tileSize) + tileSize/2
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(g.width-logPanelWidth), hudHeight, hudBg, false)

	r := g.round
	timeCol := hudText
	if r.TimeRemaining() <= 10 {
		timeCol = color.RGBA{R: 240, G: 90, B: 70, A: 255}
	}
	g.drawText(screen, r.Level().Label(), g.hudFace, float64(borderWidth), 10, hudText)
	g.drawText(screen, fmt.Sprintf("Time: %d", r.TimeRemaining()), g.hudFace, float64(borderWidth)+230, 10, timeCol)
	g.drawText(screen, fmt.Sprintf("Enemies: %d", len(r.enemies)), g.hudFace, float64(borderWidth)+340, 10, hudText)

	legend := "arrows/WASD move  R restart  C copy  Esc quit"
	if g.statusTicks > 0 {
		legend = g.status
	}
	lw, _ := text.Measure(legend, g.hudFace, 0)
	g.drawText(screen, legend, g.hudFace, float64(g.width-logPanelWidth-borderWidth)-lw, 10, dimText)
}

func (g *Game) drawBanner(screen *ebiten.Image) {
	m := g.round.Maze()
	mw := float32(m.Cols() * tileSize)
	mh := float32(m.Rows() * tileSize)
	vector.FillRect(screen, float32(g.offX), float32(g.offY), mw, mh, color.RGBA{A: 150}, false)

	title, hint := "LEVEL COMPLETE", "SPACE for the next level"
	titleCol := exitCol
	if g.round.State() == RoundGameOver {
		title, hint = "GAME OVER", "SPACE to try again"
		titleCol = color.RGBA{R: 230, G: 60, B: 60, A: 255}
		if g.round.Outcome() == OutcomeTimeExpired {
			title = "TIME'S UP"
		}
	}
	cx := float64(g.offX) + float64(mw)/2
	cy := float64(g.offY) + float64(mh)/2
	g.drawCentred(screen, title, g.bannerFace, cx, cy-24, titleCol)
	g.drawCentred(screen, hint, g.hudFace, cx, cy+20, hudText)
}

func (g *Game) drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, s, face, op)
}

func (g *Game) drawCentred(screen *ebiten.Image, s string, face text.Face, cx, cy float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Round exposes the active round, e.g. for a final report on exit.
func (g *Game) Round() *Round {
	return g.round
}

// Reporter returns the collected run reports.
func (g *Game) Reporter() *RunReporter {
	return g.reporter
}
