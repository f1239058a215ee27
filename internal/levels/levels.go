// Package levels loads level tables from YAML. A table overrides the
// built-in tier formulas level by level and may add levels past the
// built-in range.
package levels

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Maze-Adventure/internal/game"
)

// ErrDuplicateLevel is returned when a table lists the same number twice.
var ErrDuplicateLevel = errors.New("duplicate level")

// Table is the on-disk level list.
type Table struct {
	Levels []Entry `yaml:"levels"`

	byNumber map[int]game.LevelParams
}

// Entry overrides one level. Unset fields keep the value the tier formula
// gives for that level number.
type Entry struct {
	Number      int      `yaml:"number"`
	Tier        string   `yaml:"tier"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	TimeLimit   *int     `yaml:"time_limit"`
	EnemyCount  *int     `yaml:"enemy_count"`
	EnemySpeed  *float64 `yaml:"enemy_speed"`
	PathDensity *int     `yaml:"path_density"`
	Background  *RGB     `yaml:"background"`
	Seed        *int64   `yaml:"seed"`
	EnemySeed   *int64   `yaml:"enemy_seed"`
}

// RGB is a colour written as [r, g, b] or [r, g, b, a].
type RGB color.RGBA

func (c *RGB) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: colour must be a list [r, g, b]", value.Line)
	}
	if n := len(value.Content); n != 3 && n != 4 {
		return fmt.Errorf("line %d: colour needs 3 or 4 components, got %d", value.Line, n)
	}
	ch := [4]uint8{0, 0, 0, 255}
	for i, node := range value.Content {
		var v int
		if err := node.Decode(&v); err != nil {
			return err
		}
		if v < 0 || v > 255 {
			return fmt.Errorf("line %d: colour component %d outside 0..255", node.Line, v)
		}
		ch[i] = uint8(v)
	}
	*c = RGB{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	return nil
}

// Load reads and validates a table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a table.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode level table: %w", err)
	}
	t.byNumber = make(map[int]game.LevelParams, len(t.Levels))
	for _, e := range t.Levels {
		if _, dup := t.byNumber[e.Number]; dup {
			return nil, fmt.Errorf("level %d: %w", e.Number, ErrDuplicateLevel)
		}
		p, err := e.params()
		if err != nil {
			return nil, err
		}
		t.byNumber[e.Number] = p
	}
	return &t, nil
}

func (e Entry) params() (game.LevelParams, error) {
	if e.Number < 1 {
		return game.LevelParams{}, fmt.Errorf("level number must be positive, got %d", e.Number)
	}
	tier := game.TierFor(e.Number)
	if e.Tier != "" {
		t, err := game.ParseTier(e.Tier)
		if err != nil {
			return game.LevelParams{}, fmt.Errorf("level %d: %w", e.Number, err)
		}
		tier = t
	}
	p := game.TierLevel(tier, e.Number)

	if e.Name != "" {
		p.Name = e.Name
	}
	if e.Description != "" {
		p.Description = e.Description
	}
	if e.TimeLimit != nil {
		p.TimeLimit = *e.TimeLimit
	}
	if e.EnemyCount != nil {
		p.EnemyCount = *e.EnemyCount
	}
	if e.EnemySpeed != nil {
		p.EnemySpeed = *e.EnemySpeed
	}
	if e.PathDensity != nil {
		p.PathDensity = *e.PathDensity
	}
	if e.Background != nil {
		p.Background = color.RGBA(*e.Background)
	}
	if e.Seed != nil {
		p.Seed = *e.Seed
	}
	if e.EnemySeed != nil {
		p.EnemySeed = *e.EnemySeed
	}
	if err := p.Validate(); err != nil {
		return game.LevelParams{}, err
	}
	return p, nil
}

// Level returns level n from the table, falling back to the built-in
// levels. It satisfies game.LevelSource.
func (t *Table) Level(n int) (game.LevelParams, error) {
	if p, ok := t.byNumber[n]; ok {
		return p, nil
	}
	return game.LevelByNumber(n)
}

// Numbers lists every level the table can serve, built-in ones included.
func (t *Table) Numbers() []int {
	seen := make(map[int]bool, game.MaxLevel+len(t.byNumber))
	for n := 1; n <= game.MaxLevel; n++ {
		seen[n] = true
	}
	for n := range t.byNumber {
		seen[n] = true
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Source returns the level source for an optional table path: the built-in
// levels when path is empty, the loaded table otherwise.
func Source(path string) (game.LevelSource, error) {
	if path == "" {
		return game.LevelByNumber, nil
	}
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	return t.Level, nil
}
