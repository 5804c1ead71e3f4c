package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const (
	PourDuration = 1500 * time.Millisecond
	pourAttack   = 150 * time.Millisecond
	pourRelease  = 400 * time.Millisecond
	pourDrips    = 6
	dripDuration = 40 * time.Millisecond
	dripFreq     = 1320.0

	chimeNote    = 350 * time.Millisecond
	chimeAttack  = 5 * time.Millisecond
	chimeRelease = 300 * time.Millisecond
)

// chimeFreqs is a rising C major arpeggio.
var chimeFreqs = []float64{1046.50, 1318.51, 1567.98}

// noise is white noise of a fixed length.
type noise struct {
	rng      *rand.Rand
	position int
	total    int
}

func newNoise(d time.Duration, rate beep.SampleRate, seed uint64) *noise {
	return &noise{rng: rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15)), total: rate.N(d)}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if n.position >= n.total {
			return i, i > 0
		}
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
		n.position++
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// envelope shapes a stream with a linear attack and release and ends it
// after total samples.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.position >= e.total {
		return 0, false
	}
	if left := e.total - e.position; len(samples) > left {
		samples = samples[:left]
	}
	n, ok := e.streamer.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if rs := e.total - e.release; e.position >= rs && e.release > 0 {
			vol = min(vol, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly by vol. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a sine at freq shaped by an envelope.
func tone(freq float64, d, attack, release time.Duration, rate beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	return newEnvelope(sine, d, attack, release, rate), nil
}

// PourSound is water running from a can: shaped noise with a few drips
// spread over the pour.
func PourSound(rate beep.SampleRate, volume float64, seed uint64) (beep.Streamer, error) {
	water := newEnvelope(newNoise(PourDuration, rate, seed), PourDuration, pourAttack, pourRelease, rate)

	gap := rate.N(PourDuration/pourDrips) - rate.N(dripDuration)
	drips := make([]beep.Streamer, 0, pourDrips*2)
	for range pourDrips {
		drip, err := tone(dripFreq, dripDuration, 2*time.Millisecond, dripDuration/2, rate)
		if err != nil {
			return nil, err
		}
		drips = append(drips, beep.Silence(gap), drip)
	}

	mixed := beep.Mix(
		withVolume(water, 0.25),
		withVolume(beep.Seq(drips...), 0.2),
	)
	return withVolume(beep.Take(rate.N(PourDuration), mixed), volume), nil
}

// ChimeSound is a short rising arpeggio played when the first shoot appears.
func ChimeSound(rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(chimeFreqs))
	for _, f := range chimeFreqs {
		n, err := tone(f, chimeNote, chimeAttack, chimeRelease, rate)
		if err != nil {
			return nil, err
		}
		notes = append(notes, withVolume(n, 0.3))
	}
	return withVolume(beep.Seq(notes...), volume), nil
}

// ChimeDuration is the length of ChimeSound.
var ChimeDuration = time.Duration(len(chimeFreqs)) * chimeNote
