package levels

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Maze-Adventure/internal/game"
)

func TestParse_OverridesOnlySetFields(t *testing.T) {
	tbl, err := Parse([]byte(`
levels:
  - number: 2
    time_limit: 99
    background: [1, 2, 3]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := tbl.Level(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	builtin, _ := game.LevelByNumber(2)
	if p.TimeLimit != 99 {
		t.Fatalf("expected time limit 99, got %d", p.TimeLimit)
	}
	if p.Background != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Fatalf("expected background (1,2,3,255), got %v", p.Background)
	}
	if p.EnemyCount != builtin.EnemyCount || p.EnemySpeed != builtin.EnemySpeed || p.PathDensity != builtin.PathDensity {
		t.Fatalf("expected unset fields to match the built-in level, got %+v vs %+v", p, builtin)
	}
	if p.Seed != builtin.Seed {
		t.Fatalf("expected seed %d, got %d", builtin.Seed, p.Seed)
	}
}

func TestParse_TierChangesFormula(t *testing.T) {
	tbl, err := Parse([]byte("levels:\n  - number: 2\n    tier: advanced\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := tbl.Level(2)
	want := game.AdvancedLevel(2)
	if p.Tier != game.TierAdvanced || p.EnemyCount != want.EnemyCount || p.PathDensity != want.PathDensity {
		t.Fatalf("expected advanced formulas for level 2, got %+v", p)
	}
}

func TestParse_ExtraLevelBeyondBuiltins(t *testing.T) {
	tbl, err := Parse([]byte("levels:\n  - number: 12\n    enemy_count: 3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := tbl.Level(12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Tier != game.TierAdvanced || p.EnemyCount != 3 {
		t.Fatalf("expected advanced level 12 with 3 enemies, got %+v", p)
	}
	nums := tbl.Numbers()
	if nums[len(nums)-1] != 12 || len(nums) != game.MaxLevel+1 {
		t.Fatalf("expected 1..10 plus 12, got %v", nums)
	}
}

func TestLevel_FallsBackToBuiltin(t *testing.T) {
	tbl, err := Parse([]byte("levels: []\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := tbl.Level(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != game.IntermediateLevel(5) {
		t.Fatalf("expected built-in level 5, got %+v", p)
	}
	if _, err := tbl.Level(11); !errors.Is(err, game.ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"duplicate":      "levels:\n  - number: 1\n  - number: 1\n",
		"density":        "levels:\n  - number: 1\n    path_density: 101\n",
		"negative count": "levels:\n  - number: 1\n    enemy_count: -1\n",
		"zero speed":     "levels:\n  - number: 3\n    enemy_speed: 0\n",
		"bad tier":       "levels:\n  - number: 1\n    tier: expert\n",
		"bad colour":     "levels:\n  - number: 1\n    background: [1, 2]\n",
		"colour range":   "levels:\n  - number: 1\n    background: [1, 2, 300]\n",
		"number":         "levels:\n  - number: 0\n",
		"time":           "levels:\n  - number: 1\n    time_limit: 0\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected an error, got nil", name)
		}
	}
	_, err := Parse([]byte(cases["duplicate"]))
	if !errors.Is(err, ErrDuplicateLevel) {
		t.Fatalf("expected ErrDuplicateLevel, got %v", err)
	}
}

func TestLoadAndSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	if err := os.WriteFile(path, []byte("levels:\n  - number: 3\n    time_limit: 7\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := Source(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := src(3)
	if err != nil || p.TimeLimit != 7 {
		t.Fatalf("expected time limit 7, got %d (err %v)", p.TimeLimit, err)
	}

	builtin, err := Source("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, _ := builtin(3); p.TimeLimit != game.BeginnerLevel(3).TimeLimit {
		t.Fatalf("expected built-in time limit, got %d", p.TimeLimit)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestBundledTableLoads(t *testing.T) {
	tbl, err := Load(filepath.Join("..", "..", "configs", "levels.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := tbl.Level(11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Gauntlet" || p.EnemyCount != 5 {
		t.Fatalf("expected the Gauntlet level, got %+v", p)
	}
}
