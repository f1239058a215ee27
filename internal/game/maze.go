package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// Cell identifies the content of one maze grid unit.
type Cell uint8

const (
	CellWall Cell = iota // Impassable
	CellPath             // Walkable by the player and enemies
)

func (c Cell) String() string {
	switch c {
	case CellWall:
		return "wall"
	case CellPath:
		return "path"
	default:
		return "unknown"
	}
}

const (
	// DefaultRows and DefaultCols are the playfield dimensions used by every level.
	DefaultRows = 15
	DefaultCols = 20

	// minMazeSide is the smallest side length for which the interior carve and the
	// staircase walk are well defined.
	minMazeSide = 4
)

// Maze is a rows×cols grid of walls and paths. Once generated it is never
// mutated, so it can be shared read-only by the player and every enemy.
type Maze struct {
	rows    int
	cols    int
	density int
	cells   []Cell
}

// NewMaze generates a maze from a seed. The same (rows, cols, pathDensity, seed)
// always yields the same grid.
func NewMaze(rows, cols, pathDensity int, seed int64) *Maze {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic level layout
	return GenerateMaze(rows, cols, pathDensity, rng)
}

// GenerateMaze builds a maze using rng for every random choice.
//
// The carve runs in five passes:
//  1. every cell starts as a wall
//  2. odd/odd interior cells form a fixed lattice of paths
//  3. each interior cell independently becomes a path with probability pathDensity/100
//  4. the start (1,1) and exit (cols-2, rows-2) are forced open
//  5. a monotone staircase walk from start to exit is carved, which guarantees
//     the exit is reachable regardless of what the density pass produced
//
// rows and cols below 4 are a caller error and panic.
func GenerateMaze(rows, cols, pathDensity int, rng *rand.Rand) *Maze {
	if rows < minMazeSide || cols < minMazeSide {
		panic(fmt.Sprintf("game: maze must be at least %dx%d, got %dx%d", minMazeSide, minMazeSide, cols, rows))
	}
	m := &Maze{
		rows:    rows,
		cols:    cols,
		density: pathDensity,
		cells:   make([]Cell, rows*cols), // zero value is CellWall
	}

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			m.set(x, y, CellPath)
		}
	}

	for y := 1; y < rows-1; y++ {
		for x := 1; x < cols-1; x++ {
			if rng.Intn(100) < pathDensity {
				m.set(x, y, CellPath)
			}
		}
	}

	start, exit := m.Start(), m.Exit()
	m.set(start.X, start.Y, CellPath)
	m.set(exit.X, exit.Y, CellPath)

	m.carveStaircase(rng)
	return m
}

// carveStaircase walks from the start to the exit moving only right or down,
// flipping a coin for x while both axes still have distance to cover.
func (m *Maze) carveStaircase(rng *rand.Rand) {
	pos := m.Start()
	exit := m.Exit()
	for pos.X < exit.X || pos.Y < exit.Y {
		switch {
		case pos.X < exit.X && rng.Intn(2) == 0:
			pos.X++
		case pos.Y < exit.Y:
			pos.Y++
		default:
			pos.X++
		}
		m.set(pos.X, pos.Y, CellPath)
	}
}

// NewOpenMaze returns a maze whose border is wall and whose interior is entirely
// path. Used for open-field scenarios and tests.
func NewOpenMaze(rows, cols int) *Maze {
	if rows < minMazeSide || cols < minMazeSide {
		panic(fmt.Sprintf("game: maze must be at least %dx%d, got %dx%d", minMazeSide, minMazeSide, cols, rows))
	}
	m := &Maze{rows: rows, cols: cols, density: 100, cells: make([]Cell, rows*cols)}
	for y := 1; y < rows-1; y++ {
		for x := 1; x < cols-1; x++ {
			m.set(x, y, CellPath)
		}
	}
	return m
}

// ParseMaze builds a maze from text rows where '#' is a wall and any other
// byte is a path. All rows must have the same width.
func ParseMaze(lines []string) (*Maze, error) {
	if len(lines) < minMazeSide {
		return nil, fmt.Errorf("maze needs at least %d rows, got %d", minMazeSide, len(lines))
	}
	cols := len(lines[0])
	if cols < minMazeSide {
		return nil, fmt.Errorf("maze needs at least %d columns, got %d", minMazeSide, cols)
	}
	m := &Maze{rows: len(lines), cols: cols, density: -1, cells: make([]Cell, len(lines)*cols)}
	for y, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(line), cols)
		}
		for x := 0; x < cols; x++ {
			if line[x] != '#' {
				m.set(x, y, CellPath)
			}
		}
	}
	return m, nil
}

func (m *Maze) set(x, y int, c Cell) {
	m.cells[y*m.cols+x] = c
}

// Rows returns the grid height.
func (m *Maze) Rows() int { return m.rows }

// Cols returns the grid width.
func (m *Maze) Cols() int { return m.cols }

// PathDensity returns the density percentage the maze was carved with, or -1
// for hand-built layouts.
func (m *Maze) PathDensity() int { return m.density }

// Start is the fixed player spawn cell.
func (m *Maze) Start() Position { return Position{X: 1, Y: 1} }

// Exit is the fixed goal cell.
func (m *Maze) Exit() Position { return Position{X: m.cols - 2, Y: m.rows - 2} }

// InBounds reports whether (x, y) lies inside the grid.
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.cols && y < m.rows
}

// IsWall reports whether (x, y) blocks movement. Every coordinate outside the
// grid counts as a wall.
func (m *Maze) IsWall(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.cells[y*m.cols+x] == CellWall
}

// Cell returns the content at (x, y); out-of-bounds reads return CellWall.
func (m *Maze) Cell(x, y int) Cell {
	if !m.InBounds(x, y) {
		return CellWall
	}
	return m.cells[y*m.cols+x]
}

// PathCount returns the number of walkable cells.
func (m *Maze) PathCount() int {
	n := 0
	for _, c := range m.cells {
		if c == CellPath {
			n++
		}
	}
	return n
}

// Equal reports whether two mazes have identical dimensions and cells.
func (m *Maze) Equal(o *Maze) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid with '#' for walls, '.' for paths, 'S' for the start
// and 'E' for the exit.
func (m *Maze) String() string {
	var sb strings.Builder
	start, exit := m.Start(), m.Exit()
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			switch {
			case x == start.X && y == start.Y:
				sb.WriteByte('S')
			case x == exit.X && y == exit.Y:
				sb.WriteByte('E')
			case m.IsWall(x, y):
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
