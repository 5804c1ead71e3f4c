// Package audio synthesizes the garden's sound effects with beep and plays
// them through the system speaker.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes effects onto the speaker. Its zero state is silent: until
// Init succeeds every Play call is a no-op, so a host can run without sound.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	logger      *slog.Logger
	initialized bool
	plays       uint64
}

// NewPlayer creates a player at the given master volume in [0, 1].
func NewPlayer(volume float64, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger.With("component", "audio"),
	}
}

// Init opens the speaker. Hosts treat a failure as non-fatal.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("speaker ready", "sample_rate", int(sampleRate), "volume", p.volume)
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer.Clear()
	p.initialized = false
}

// Pour plays the watering sound.
func (p *Player) Pour() {
	p.play("pour", func() (beep.Streamer, error) {
		return PourSound(sampleRate, p.volume, p.plays)
	})
}

// Chime plays the sprouting chime.
func (p *Player) Chime() {
	p.play("chime", func() (beep.Streamer, error) {
		return ChimeSound(sampleRate, p.volume)
	})
}

func (p *Player) play(name string, build func() (beep.Streamer, error)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := build()
	if err != nil {
		p.logger.Warn("sound unavailable", "sound", name, "error", err)
		return
	}
	p.plays++
	// The mixer is read by the speaker goroutine.
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
