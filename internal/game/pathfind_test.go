package game

import "testing"

func mustParse(t *testing.T, rows ...string) *Maze {
	t.Helper()
	m, err := ParseMaze(rows)
	if err != nil {
		t.Fatalf("parse maze: %v", err)
	}
	return m
}

// (3,3) is sealed off on every side.
var pocketLayout = []string{
	"#######",
	"#.....#",
	"#.###.#",
	"#.#.#.#",
	"#######",
}

func TestDistance(t *testing.T) {
	m := mustParse(t, pocketLayout...)
	cases := []struct {
		from, to Position
		want     int
	}{
		{Position{1, 1}, Position{1, 1}, 0},
		{Position{1, 1}, Position{1, 3}, 2},
		{Position{1, 1}, Position{5, 3}, 6},
		{Position{1, 3}, Position{5, 3}, 8},
		{Position{1, 1}, Position{3, 3}, -1},
		{Position{1, 1}, Position{0, 0}, -1},
		{Position{1, 1}, Position{-1, 9}, -1},
		{Position{0, 0}, Position{1, 1}, -1},
	}
	for _, c := range cases {
		if got := m.Distance(c.from, c.to); got != c.want {
			t.Fatalf("Distance(%v, %v): expected %d, got %d", c.from, c.to, c.want, got)
		}
		if got := m.Reachable(c.from, c.to); got != (c.want >= 0) {
			t.Fatalf("Reachable(%v, %v): expected %v, got %v", c.from, c.to, c.want >= 0, got)
		}
	}
}

func TestDistanceMap_WallOrigin(t *testing.T) {
	m := mustParse(t, pocketLayout...)
	for i, d := range m.DistanceMap(Position{X: 0, Y: 0}) {
		if d != -1 {
			t.Fatalf("index %d: expected -1 from a wall origin, got %d", i, d)
		}
	}
}

func TestShortestPath(t *testing.T) {
	m := mustParse(t, pocketLayout...)
	from, to := Position{X: 1, Y: 3}, Position{X: 5, Y: 3}
	path := m.ShortestPath(from, to)
	if len(path) != 8 {
		t.Fatalf("expected 8 steps, got %d: %v", len(path), path)
	}
	if path[len(path)-1] != to {
		t.Fatalf("expected path to end at %v, got %v", to, path[len(path)-1])
	}
	prev := from
	for _, p := range path {
		if prev.Manhattan(p) != 1 {
			t.Fatalf("non-adjacent step %v -> %v", prev, p)
		}
		if m.IsWall(p.X, p.Y) {
			t.Fatalf("path crosses wall at %v", p)
		}
		prev = p
	}
}

func TestShortestPath_EdgeCases(t *testing.T) {
	m := mustParse(t, pocketLayout...)
	if p := m.ShortestPath(Position{1, 1}, Position{1, 1}); p == nil || len(p) != 0 {
		t.Fatalf("same cell: expected empty non-nil path, got %v", p)
	}
	if p := m.ShortestPath(Position{1, 1}, Position{3, 3}); p != nil {
		t.Fatalf("sealed cell: expected nil, got %v", p)
	}
	if p := m.ShortestPath(Position{-1, 1}, Position{1, 1}); p != nil {
		t.Fatalf("out-of-bounds origin: expected nil, got %v", p)
	}
}

func TestShortestPath_MatchesDistanceOnGeneratedMazes(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m := NewMaze(15, 20, 40+int(seed), seed*1000)
		want := m.Distance(m.Start(), m.Exit())
		got := m.ShortestPath(m.Start(), m.Exit())
		if len(got) != want {
			t.Fatalf("seed %d: path has %d steps, distance is %d", seed, len(got), want)
		}
	}
}
