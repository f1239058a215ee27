package game

// unreachable marks cells a distance map could not reach.
const unreachable = -1

// neighbours4 lists the cardinal offsets in the order searches expand them.
var neighbours4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// DistanceMap returns the BFS step count from `from` to every cell, indexed
// y*cols+x. Walls and unreachable cells hold -1. A wall origin yields a map
// of all -1.
func (m *Maze) DistanceMap(from Position) []int {
	dist := make([]int, m.rows*m.cols)
	for i := range dist {
		dist[i] = unreachable
	}
	if m.IsWall(from.X, from.Y) {
		return dist
	}

	queue := []Position{from}
	dist[from.Y*m.cols+from.X] = 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[cur.Y*m.cols+cur.X]
		for _, n := range neighbours4 {
			nx, ny := cur.X+n[0], cur.Y+n[1]
			if m.IsWall(nx, ny) {
				continue
			}
			k := ny*m.cols + nx
			if dist[k] != unreachable {
				continue
			}
			dist[k] = d + 1
			queue = append(queue, Position{X: nx, Y: ny})
		}
	}
	return dist
}

// Distance returns the walking distance between two cells, or -1 if no
// cardinal path over path cells connects them.
func (m *Maze) Distance(from, to Position) int {
	if !m.InBounds(to.X, to.Y) {
		return unreachable
	}
	return m.DistanceMap(from)[to.Y*m.cols+to.X]
}

// Reachable reports whether `to` can be reached from `from` by single
// cardinal steps over path cells (flood fill).
func (m *Maze) Reachable(from, to Position) bool {
	return m.Distance(from, to) >= 0
}

// ShortestPath returns the cells of a shortest walk from `from` to `to`,
// excluding `from` and including `to`. It returns nil when `to` is unreachable
// and an empty, non-nil slice when from == to.
func (m *Maze) ShortestPath(from, to Position) []Position {
	if !m.InBounds(to.X, to.Y) || !m.InBounds(from.X, from.Y) {
		return nil
	}
	// Search backwards so the walk can be read off by descending distance.
	dist := m.DistanceMap(to)
	if dist[from.Y*m.cols+from.X] == unreachable {
		return nil
	}

	path := make([]Position, 0, dist[from.Y*m.cols+from.X])
	cur := from
	for cur != to {
		d := dist[cur.Y*m.cols+cur.X]
		for _, n := range neighbours4 {
			nx, ny := cur.X+n[0], cur.Y+n[1]
			if !m.InBounds(nx, ny) {
				continue
			}
			if dist[ny*m.cols+nx] == d-1 {
				cur = Position{X: nx, Y: ny}
				break
			}
		}
		path = append(path, cur)
	}
	return path
}
