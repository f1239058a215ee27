package term

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	cueVolume  = 0.25
)

// Cue names a short sound played on a round event.
type Cue int

const (
	CueWin Cue = iota
	CueLose
	CueWarning // countdown in its last seconds
	CueBump    // player walked into a wall
)

func (c Cue) String() string {
	switch c {
	case CueWin:
		return "win"
	case CueLose:
		return "lose"
	case CueWarning:
		return "warning"
	case CueBump:
		return "bump"
	default:
		return "unknown"
	}
}

// note is one sine tone of a cue.
type note struct {
	freq float64
	dur  time.Duration
}

// cueNotes lists the tones of each cue in play order.
var cueNotes = map[Cue][]note{
	CueWin:     {{523.25, 90 * time.Millisecond}, {659.25, 90 * time.Millisecond}, {783.99, 180 * time.Millisecond}},
	CueLose:    {{220, 160 * time.Millisecond}, {164.81, 320 * time.Millisecond}},
	CueWarning: {{880, 40 * time.Millisecond}},
	CueBump:    {{110, 30 * time.Millisecond}},
}

// sine returns a finite sine tone of freq Hz lasting dur.
func sine(freq float64, dur time.Duration) beep.Streamer {
	total := sampleRate.N(dur)
	pos := 0
	step := freq / float64(sampleRate)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			v := math.Sin(2 * math.Pi * step * float64(pos))
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}

// cueStreamer builds the streamer for a cue at cueVolume.
func cueStreamer(c Cue) (beep.Streamer, error) {
	notes, ok := cueNotes[c]
	if !ok {
		return nil, fmt.Errorf("no sound for cue %s", c)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, sine(n.freq, n.dur))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: math.Log2(cueVolume)}, nil
}

// Sounder plays cues through the system speaker. A nil *Sounder is silent,
// so callers need not check whether sound was enabled.
type Sounder struct {
	mu    sync.Mutex
	mixer *beep.Mixer
}

// NewSounder initialises the speaker and starts an empty mixer.
func NewSounder() (*Sounder, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Sounder{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play queues cue c on the mixer.
func (s *Sounder) Play(c Cue) {
	if s == nil {
		return
	}
	st, err := cueStreamer(c)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback and releases the speaker.
func (s *Sounder) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Clear()
	speaker.Close()
}
