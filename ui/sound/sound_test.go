package sound

import (
	"testing"

	"gridsnake/game"
)

type recorder struct {
	events []Event
}

func (r *recorder) Play(ev Event) { r.events = append(r.events, ev) }

func snap(round string, score int, over bool) game.Snapshot {
	return game.Snapshot{RoundID: round, Score: score, Over: over}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur game.Snapshot
		want      Event
	}{
		{"unchanged", snap("a", 1, false), snap("a", 1, false), NoEvent},
		{"ate", snap("a", 1, false), snap("a", 2, false), Ate},
		{"died", snap("a", 3, false), snap("a", 3, true), GameOver},
		{"still over", snap("a", 3, true), snap("a", 3, true), NoEvent},
		{"new round", snap("a", 5, true), snap("b", 1, false), NoEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.prev, tt.cur); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCuesObserve(t *testing.T) {
	rec := &recorder{}
	cues := NewCues(rec)

	frames := []game.Snapshot{
		snap("a", 1, false), // first frame never cues
		snap("a", 1, false),
		snap("a", 2, false),
		snap("a", 2, false), // repeated frame
		snap("a", 2, true),
		snap("b", 1, false),
	}
	for _, f := range frames {
		cues.Observe(f)
	}

	want := []Event{Ate, GameOver}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, rec.events[i], want[i])
		}
	}
}

func TestNilCuesIsSafe(t *testing.T) {
	var cues *Cues
	cues.Observe(snap("a", 1, false))
	NewCues(nil).Observe(snap("a", 1, false))
}

func TestStreamerLength(t *testing.T) {
	for ev, tn := range tones {
		s, err := Streamer(ev)
		if err != nil {
			t.Fatalf("Streamer(%v) failed: %v", ev, err)
		}

		total := 0
		buf := make([][2]float64, 512)
		for {
			n, ok := s.Stream(buf)
			total += n
			if !ok {
				break
			}
			for i := 0; i < n; i++ {
				if buf[i][0] < -1 || buf[i][0] > 1 {
					t.Fatalf("%v sample %d out of range: %f", ev, i, buf[i][0])
				}
			}
		}

		if want := sampleRate.N(tn.duration); total != want {
			t.Errorf("%v streamed %d samples, want %d", ev, total, want)
		}
	}

	if _, err := Streamer(NoEvent); err == nil {
		t.Error("expected error for NoEvent")
	}
}
