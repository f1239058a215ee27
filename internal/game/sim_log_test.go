package game

import (
	"image/color"
	"strings"
	"testing"
)

func TestSimLog_VerboseGate(t *testing.T) {
	quiet := NewSimLog(false)
	quiet.Add(1, "E0", "enemy", "move", "(1,1) → (2,1)", 3)
	quiet.AddVerbose(1, "E0", "enemy", "decision", "chaser", 0.5)
	if len(quiet.Entries()) != 1 {
		t.Fatalf("expected verbose entry to be dropped, got %d entries", len(quiet.Entries()))
	}

	loud := NewSimLog(true)
	loud.AddVerbose(1, "E0", "enemy", "decision", "chaser", 0.5)
	if !loud.Verbose() || len(loud.Entries()) != 1 {
		t.Fatalf("expected verbose entry to be kept, got %d entries", len(loud.Entries()))
	}
}

func TestSimLog_Queries(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(0, "--", "round", "start", "Level 2 - Beginner", 54)
	sl.Add(3, "E0", "enemy", "move", "(5,5) → (4,5)", 6)
	sl.Add(7, "E1", "enemy", "move", "(9,9) → (9,8)", 9)
	sl.Add(7, "E1", "enemy", "blocked", "wanderer stayed at (9,8)", 0)
	sl.Add(9, "--", "round", "end", "caught_by_enemy: chaser caught the player", 40)

	if got := len(sl.Filter("enemy", "move")); got != 2 {
		t.Fatalf("expected 2 enemy moves, got %d", got)
	}
	if got := len(sl.FilterEntity("E1")); got != 2 {
		t.Fatalf("expected 2 E1 entries, got %d", got)
	}
	if got := len(sl.FilterTickRange(3, 7)); got != 3 {
		t.Fatalf("expected 3 entries in ticks 3..7, got %d", got)
	}
	if got := sl.CountCategory("enemy", "blocked"); got != 1 {
		t.Fatalf("expected 1 blocked entry, got %d", got)
	}
	last, ok := sl.LastOf("enemy", "move")
	if !ok || last.Entity != "E1" {
		t.Fatalf("expected last move by E1, got %+v %v", last, ok)
	}
	if _, ok := sl.LastOf("clock", "countdown"); ok {
		t.Fatal("expected no countdown entry")
	}
	if !sl.HasEntry("round", "end", "caught") || sl.HasEntry("round", "end", "exit") {
		t.Fatal("HasEntry matched the wrong value")
	}
	if !strings.Contains(sl.Format(), "[T=007] E1") {
		t.Fatalf("unexpected format:\n%s", sl.Format())
	}
	if strings.Contains(sl.FormatRange(0, 3), "caught") {
		t.Fatal("FormatRange leaked entries past its range")
	}
}

func TestSimLog_Summary(t *testing.T) {
	ts := NewTestSim(
		WithOpenMaze(),
		WithEnemy(10, 10, PersonalityWanderer, 2),
		WithEnemy(15, 4, PersonalityAmbusher, 2),
	)
	s := ts.SimLog.Summary(ts.Round)
	for _, want := range []string{"Level 1 - Beginner", "wanderer=1", "ambusher=1", "E0", "E1"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestEventLog_RingBuffer(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		el.Add(i, "--", color.RGBA{A: 255}, "event")
	}
	if el.Len() != logMaxEntries {
		t.Fatalf("expected %d entries, got %d", logMaxEntries, el.Len())
	}
	recent := el.Recent()
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != logMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d oldest first, got %d..%d", logMaxEntries+4, recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestOutcomeStates(t *testing.T) {
	cases := map[Outcome]RoundState{
		OutcomeNone:        RoundRunning,
		OutcomeExitReached: RoundLevelComplete,
		OutcomeCaught:      RoundGameOver,
		OutcomeTimeExpired: RoundGameOver,
	}
	for o, want := range cases {
		if o.State() != want {
			t.Fatalf("%s: expected %s, got %s", o, want, o.State())
		}
	}
	if RoundRunning.Terminal() || !RoundLevelComplete.Terminal() || !RoundGameOver.Terminal() {
		t.Fatal("only LevelComplete and GameOver are terminal")
	}
}
