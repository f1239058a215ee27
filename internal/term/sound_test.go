package term

import (
	"math"
	"testing"
)

func TestCueStreamers_FiniteAndBounded(t *testing.T) {
	for _, c := range []Cue{CueWin, CueLose, CueWarning, CueBump} {
		st, err := cueStreamer(c)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c, err)
		}
		want := 0
		for _, n := range cueNotes[c] {
			want += sampleRate.N(n.dur)
		}

		buf := make([][2]float64, 512)
		total := 0
		for i := 0; i < 1000; i++ {
			n, ok := st.Stream(buf)
			for _, s := range buf[:n] {
				if math.Abs(s[0]) > cueVolume+1e-9 || s[0] != s[1] {
					t.Fatalf("%s: sample %v outside ±%v or not mono", c, s, cueVolume)
				}
			}
			total += n
			if !ok {
				break
			}
		}
		if total != want {
			t.Fatalf("%s: expected %d samples, got %d", c, want, total)
		}
	}
}

func TestCueStreamer_Unknown(t *testing.T) {
	if _, err := cueStreamer(Cue(42)); err == nil {
		t.Fatalf("expected an error for an unknown cue")
	}
}

func TestNilSounderIsSilent(t *testing.T) {
	var s *Sounder
	s.Play(CueWin)
	s.Close()
}
