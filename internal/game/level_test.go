package game

import (
	"errors"
	"math"
	"testing"
)

func TestLevelByNumber_Formulas(t *testing.T) {
	want := []struct {
		tier      Tier
		timeLimit int
		enemies   int
		speed     float64
		density   int
	}{
		{TierBeginner, 57, 0, 0.65, 42},
		{TierBeginner, 54, 1, 0.8, 44},
		{TierBeginner, 51, 2, 0.95, 46},
		{TierBeginner, 48, 3, 1.1, 48},
		{TierIntermediate, 40, 5, 1.6, 50},
		{TierIntermediate, 37, 6, 1.8, 53},
		{TierIntermediate, 34, 7, 2.0, 56},
		{TierAdvanced, 26, 9, 2.7, 62},
		{TierAdvanced, 23, 10, 2.95, 66},
		{TierAdvanced, 20, 11, 3.2, 70},
	}
	for i, w := range want {
		n := i + 1
		p, err := LevelByNumber(n)
		if err != nil {
			t.Fatalf("level %d: unexpected error %v", n, err)
		}
		if p.Number != n || p.Tier != w.tier {
			t.Fatalf("level %d: expected tier %s, got number=%d tier=%s", n, w.tier, p.Number, p.Tier)
		}
		if p.TimeLimit != w.timeLimit || p.EnemyCount != w.enemies || p.PathDensity != w.density {
			t.Fatalf("level %d: expected time=%d enemies=%d density=%d, got %d %d %d",
				n, w.timeLimit, w.enemies, w.density, p.TimeLimit, p.EnemyCount, p.PathDensity)
		}
		if math.Abs(p.EnemySpeed-w.speed) > 1e-9 {
			t.Fatalf("level %d: expected speed %g, got %g", n, w.speed, p.EnemySpeed)
		}
		if p.Seed != int64(n)*1000 || p.EnemySeed != int64(n)*2000 {
			t.Fatalf("level %d: expected seeds %d/%d, got %d/%d", n, n*1000, n*2000, p.Seed, p.EnemySeed)
		}
		if p.Rows != DefaultRows || p.Cols != DefaultCols {
			t.Fatalf("level %d: expected %dx%d grid, got %dx%d", n, DefaultCols, DefaultRows, p.Cols, p.Rows)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("level %d: built-in parameters invalid: %v", n, err)
		}
	}
}

func TestLevelByNumber_Unknown(t *testing.T) {
	for _, n := range []int{0, -1, MaxLevel + 1, 99} {
		if _, err := LevelByNumber(n); !errors.Is(err, ErrUnknownLevel) {
			t.Fatalf("level %d: expected ErrUnknownLevel, got %v", n, err)
		}
	}
}

func TestTierLevel_IgnoresNaturalTier(t *testing.T) {
	p := TierLevel(TierAdvanced, 2)
	if p.Tier != TierAdvanced || p.EnemyCount != 3 || p.TimeLimit != 44 {
		t.Fatalf("expected advanced formulas for n=2, got tier=%s enemies=%d time=%d", p.Tier, p.EnemyCount, p.TimeLimit)
	}
	if TierFor(4) != TierBeginner || TierFor(5) != TierIntermediate || TierFor(8) != TierAdvanced {
		t.Fatal("tier boundaries are 4 and 7")
	}
}

func TestLevelParams_Validate(t *testing.T) {
	base := BeginnerLevel(2)
	cases := map[string]func(*LevelParams){
		"small grid":     func(p *LevelParams) { p.Rows = 3 },
		"density high":   func(p *LevelParams) { p.PathDensity = 101 },
		"density low":    func(p *LevelParams) { p.PathDensity = -1 },
		"negative count": func(p *LevelParams) { p.EnemyCount = -2 },
		"zero speed":     func(p *LevelParams) { p.EnemySpeed = 0 },
		"no time":        func(p *LevelParams) { p.TimeLimit = 0 },
	}
	for name, mutate := range cases {
		p := base
		mutate(&p)
		if err := p.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	calm := BeginnerLevel(1)
	calm.EnemySpeed = 0
	if err := calm.Validate(); err != nil {
		t.Fatalf("speed is irrelevant without enemies, got %v", err)
	}
}

func TestParseTier(t *testing.T) {
	for tier := Tier(0); tier < tierCount; tier++ {
		got, err := ParseTier(tier.String())
		if err != nil || got != tier {
			t.Fatalf("%s: expected round trip, got %v %v", tier, got, err)
		}
	}
	if got, err := ParseTier("ADVANCED"); err != nil || got != TierAdvanced {
		t.Fatalf("expected case-insensitive parse, got %v %v", got, err)
	}
	if _, err := ParseTier("expert"); err == nil {
		t.Fatal("expected error for unknown tier")
	}
}

func TestAllLevels(t *testing.T) {
	levels := AllLevels()
	if len(levels) != MaxLevel {
		t.Fatalf("expected %d levels, got %d", MaxLevel, len(levels))
	}
	if got := levels[0].Label(); got != "Level 1 - Beginner" {
		t.Fatalf("unexpected label %q", got)
	}
}
