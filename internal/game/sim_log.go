package game

import (
	"fmt"
	"strings"
)

// Log categories and keys written by Round.
const (
	logCatMaze   = "maze"
	logCatSpawn  = "spawn"
	logCatEnemy  = "enemy"
	logCatPlayer = "player"
	logCatRound  = "round"
	logCatClock  = "clock"

	logKeyGenerated = "generated"
	logKeyPlaced    = "placed"
	logKeyShortfall = "shortfall"
	logKeyDecision  = "decision"
	logKeyMove      = "move"
	logKeyBlocked   = "blocked"
	logKeyStart     = "start"
	logKeyEnd       = "end"
	logKeyRestart   = "restart"
	logKeyCountdown = "countdown"
)

// SimLogEntry is one recorded event during a round.
type SimLogEntry struct {
	Tick     int
	Entity   string  // label e.g. "P", "E2", or "--" for global events
	Category string  // maze, spawn, enemy, player, round, clock
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E1   enemy     move             (5,5) → (4,5)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a round.
// Unlike EventLog (UI ring-buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, every enemy decision is
// recorded too, not only the ones that changed cell.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether per-decision entries are recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Add records a new entry.
func (sl *SimLog) Add(tick int, entity, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Entity:   entity,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, entity, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, entity, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterEntity returns entries for a specific entity label.
func (sl *SimLog) FilterEntity(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Entity == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the round.
func (sl *SimLog) Summary(r *Round) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", r.Tick())
	fmt.Fprintf(&sb, "%s  state=%s  outcome=%s  time_left=%ds\n",
		r.Level().Label(), r.State(), r.Outcome(), r.TimeRemaining())

	p := r.Player()
	fmt.Fprintf(&sb, "Player: (%d,%d)  exit_distance=%d\n", p.X, p.Y, r.Maze().Distance(p, r.Maze().Exit()))

	byPersonality := map[Personality]int{}
	for _, e := range r.enemies {
		byPersonality[e.Personality]++
	}
	sb.WriteString("Enemies: ")
	for pers := Personality(0); pers < personalityCount; pers++ {
		if n := byPersonality[pers]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", pers, n)
		}
	}
	sb.WriteByte('\n')

	for _, e := range r.enemies {
		fmt.Fprintf(&sb, "  %s %-8s at (%d,%d)  moves=%d  manhattan=%d\n",
			e.Label(), e.Personality, e.X, e.Y, e.moves, e.Manhattan(p))
	}
	fmt.Fprintf(&sb, "Moves logged: %d  blocked decisions: %d\n",
		sl.CountCategory(logCatEnemy, logKeyMove), sl.CountCategory(logCatEnemy, logKeyBlocked))
	return sb.String()
}
