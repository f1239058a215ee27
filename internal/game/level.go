package game

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

const (
	// MaxLevel is the highest built-in level number.
	MaxLevel = 10

	minTimeLimit     = 20   // seconds; intermediate and advanced tiers never go below this
	mazeSeedStep     = 1000 // maze seed = level * mazeSeedStep
	enemySeedStep    = 2000 // placement/behaviour seed = level * enemySeedStep
	beginnerLast     = 4
	intermediateLast = 7
)

// ErrUnknownLevel is returned for level numbers outside 1..MaxLevel.
var ErrUnknownLevel = errors.New("unknown level")

// Tier groups levels that share parameter formulas.
type Tier int

const (
	TierBeginner Tier = iota
	TierIntermediate
	TierAdvanced
	tierCount // sentinel
)

func (t Tier) String() string {
	switch t {
	case TierBeginner:
		return "beginner"
	case TierIntermediate:
		return "intermediate"
	case TierAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// ParseTier maps a name produced by String back to a Tier.
func ParseTier(s string) (Tier, error) {
	for t := Tier(0); t < tierCount; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// LevelParams is the read-only configuration of one level.
type LevelParams struct {
	Number      int
	Tier        Tier
	Name        string
	Description string
	Difficulty  string

	Rows, Cols  int
	TimeLimit   int     // seconds
	EnemyCount  int
	EnemySpeed  float64 // moves per second
	PathDensity int     // 0..100
	Background  color.RGBA
	Seed        int64 // maze generation
	EnemySeed   int64 // placement, personalities and behaviour rolls
}

// Label returns e.g. "Level 3 - Beginner".
func (p LevelParams) Label() string {
	return fmt.Sprintf("Level %d - %s", p.Number, p.Name)
}

// Validate checks the parameters a round depends on.
func (p LevelParams) Validate() error {
	switch {
	case p.Rows < minMazeSide || p.Cols < minMazeSide:
		return fmt.Errorf("level %d: grid %dx%d is smaller than %dx%d", p.Number, p.Cols, p.Rows, minMazeSide, minMazeSide)
	case p.PathDensity < 0 || p.PathDensity > 100:
		return fmt.Errorf("level %d: path density %d outside 0..100", p.Number, p.PathDensity)
	case p.EnemyCount < 0:
		return fmt.Errorf("level %d: negative enemy count %d", p.Number, p.EnemyCount)
	case p.EnemyCount > 0 && p.EnemySpeed <= 0:
		return fmt.Errorf("level %d: enemy speed must be positive, got %g", p.Number, p.EnemySpeed)
	case p.TimeLimit <= 0:
		return fmt.Errorf("level %d: time limit must be positive, got %d", p.Number, p.TimeLimit)
	}
	return nil
}

func baseLevel(n int) LevelParams {
	return LevelParams{
		Number:    n,
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		Seed:      int64(n) * mazeSeedStep,
		EnemySeed: int64(n) * enemySeedStep,
	}
}

// BeginnerLevel builds the parameters for level n with the beginner formulas.
func BeginnerLevel(n int) LevelParams {
	p := baseLevel(n)
	p.Tier = TierBeginner
	p.Name = "Beginner"
	p.Description = "Easy maze with few enemies"
	p.Difficulty = "Easy - Perfect for new players"
	p.TimeLimit = 60 - n*3
	p.EnemyCount = n - 1
	p.EnemySpeed = 0.5 + float64(n)*0.15
	p.PathDensity = 40 + n*2
	p.Background = color.RGBA{R: 200, G: 230, B: 255, A: 255}
	return p
}

// IntermediateLevel builds the parameters for level n with the intermediate formulas.
func IntermediateLevel(n int) LevelParams {
	p := baseLevel(n)
	p.Tier = TierIntermediate
	p.Name = "Intermediate"
	p.Description = "Challenging maze with more enemies"
	p.Difficulty = "Medium - For experienced players"
	p.TimeLimit = max(minTimeLimit, 55-n*3)
	p.EnemyCount = n
	p.EnemySpeed = 0.6 + float64(n)*0.2
	p.PathDensity = 35 + n*3
	p.Background = color.RGBA{R: 255, G: 240, B: 200, A: 255}
	return p
}

// AdvancedLevel builds the parameters for level n with the advanced formulas.
func AdvancedLevel(n int) LevelParams {
	p := baseLevel(n)
	p.Tier = TierAdvanced
	p.Name = "Advanced"
	p.Description = "Complex maze with aggressive enemies"
	p.Difficulty = "Hard - For maze masters only!"
	p.TimeLimit = max(minTimeLimit, 50-n*3)
	p.EnemyCount = n + 1
	p.EnemySpeed = 0.7 + float64(n)*0.25
	p.PathDensity = 30 + n*4
	p.Background = color.RGBA{R: 255, G: 200, B: 200, A: 255}
	return p
}

// TierFor returns the tier a built-in level number belongs to.
func TierFor(n int) Tier {
	switch {
	case n <= beginnerLast:
		return TierBeginner
	case n <= intermediateLast:
		return TierIntermediate
	default:
		return TierAdvanced
	}
}

// TierLevel builds level n using the formulas of tier t, regardless of which
// tier n would normally fall in.
func TierLevel(t Tier, n int) LevelParams {
	switch t {
	case TierIntermediate:
		return IntermediateLevel(n)
	case TierAdvanced:
		return AdvancedLevel(n)
	default:
		return BeginnerLevel(n)
	}
}

// LevelByNumber returns the built-in parameters for level n (1..MaxLevel).
func LevelByNumber(n int) (LevelParams, error) {
	if n < 1 || n > MaxLevel {
		return LevelParams{}, fmt.Errorf("level %d: %w", n, ErrUnknownLevel)
	}
	return TierLevel(TierFor(n), n), nil
}

// AllLevels returns the built-in levels in order.
func AllLevels() []LevelParams {
	out := make([]LevelParams, 0, MaxLevel)
	for n := 1; n <= MaxLevel; n++ {
		out = append(out, TierLevel(TierFor(n), n))
	}
	return out
}

// LevelSource looks up level parameters by number. LevelByNumber is the
// built-in source; internal/levels provides a file-backed one.
type LevelSource func(n int) (LevelParams, error)
