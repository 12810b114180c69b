package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"gridsnake/game"
)

const sampleRate = beep.SampleRate(44100)

// Event is a round moment worth a sound cue
type Event uint8

const (
	NoEvent Event = iota
	Ate
	GameOver
)

func (e Event) String() string {
	switch e {
	case Ate:
		return "ate"
	case GameOver:
		return "game-over"
	}
	return "none"
}

// Sink plays cues
type Sink interface {
	Play(ev Event)
}

// Detect compares two consecutive snapshots of the board
func Detect(prev, cur game.Snapshot) Event {
	if prev.RoundID != cur.RoundID {
		return NoEvent
	}
	if cur.Over && !prev.Over {
		return GameOver
	}
	if cur.Score > prev.Score {
		return Ate
	}
	return NoEvent
}

// Cues turns a stream of snapshots into sound events
type Cues struct {
	sink Sink
	prev game.Snapshot
	seen bool
}

func NewCues(sink Sink) *Cues {
	return &Cues{sink: sink}
}

// Observe is called once per presented frame
func (c *Cues) Observe(snap game.Snapshot) {
	if c == nil || c.sink == nil {
		return
	}
	if c.seen {
		if ev := Detect(c.prev, snap); ev != NoEvent {
			c.sink.Play(ev)
		}
	}
	c.prev = snap
	c.seen = true
}

type tone struct {
	freq     float64
	duration time.Duration
	volume   float64 // log2 gain
}

var tones = map[Event]tone{
	Ate:      {freq: 880, duration: 50 * time.Millisecond, volume: -2},
	GameOver: {freq: 150, duration: 300 * time.Millisecond, volume: -1},
}

// Streamer builds the finite tone for ev
func Streamer(ev Event) (beep.Streamer, error) {
	t, ok := tones[ev]
	if !ok {
		return nil, fmt.Errorf("no tone for event %s", ev)
	}
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(t.duration), sine),
		Base:     2,
		Volume:   t.volume,
	}, nil
}

// Player plays cues through the system speaker
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Play(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Streamer(ev)
	if err != nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup silences all pending cues
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}
