package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/Archer4499/raytracer/ray"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	step      float64 // phase increment per sample
	phase     float64
	remaining int
	wave      WaveType
}

// NewOscillator creates a wave generator that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		step:      freq / float64(rate),
		remaining: rate.N(duration),
		wave:      wave,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.remaining <= 0 {
		return 0, false
	}
	for n = range samples {
		if o.remaining == 0 {
			return n, true
		}
		v := o.sample()
		samples[n][0], samples[n][1] = v, v

		o.phase += o.step
		o.phase -= math.Floor(o.phase)
		o.remaining--
	}
	return len(samples), true
}

func (o *oscillator) sample() float64 {
	switch o.wave {
	case WaveSquare:
		if o.phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*o.phase - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * o.phase)
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream of known length
type envelope struct {
	streamer     beep.Streamer
	position     int
	total        int
	attack       int
	releaseStart int
	release      int
}

// NewEnvelope shapes s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:     s,
		total:        total,
		attack:       att,
		release:      rel,
		releaseStart: total - rel,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if left := e.total - e.position; len(samples) > left {
		samples = samples[:left]
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		gain := 1.0
		switch {
		case e.position < e.attack:
			gain = float64(e.position) / float64(e.attack)
		case e.position >= e.releaseStart && e.release > 0:
			gain = float64(e.total-e.position) / float64(e.release)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero gain is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// bounceFrequency maps the outgoing direction onto a pentatonic step above A5
func bounceFrequency(to ray.Direction) float64 {
	semitones := [ray.DirectionCount]float64{0, 2, 4, 7, 9, 12, 14, 16}
	return 880 * math.Pow(2, semitones[to&7]/12)
}

// NewShotSound is a soft noise burst as the ray leaves the source
func NewShotSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	noise := NewOscillator(0, shotDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, shotDuration, shotAttack, shotRelease, rate)
	return newVolume(shaped, cfg.volume(CueShot))
}

// NewBounceSound is a short ping pitched by the reflected direction
func NewBounceSound(cfg *Config, to ray.Direction) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	osc := NewOscillator(bounceFrequency(to), bounceDuration, WaveSine, rate)
	shaped := NewEnvelope(osc, bounceDuration, bounceAttack, bounceRelease, rate)
	return newVolume(shaped, cfg.volume(CueBounce))
}

// NewBlockedSound is a low saw buzz for a collision
func NewBlockedSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	osc := NewOscillator(110, blockedDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, blockedDuration, blockedAttack, blockedRelease, rate)
	return newVolume(shaped, cfg.volume(CueBlocked))
}

// NewSolidSound is a bell with an octave overtone
func NewSolidSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewOscillator(660, solidDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, solidDuration, solidAttack, solidFundamentalDecay, rate)

	over := NewOscillator(1320, solidDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, solidDuration, solidAttack, solidOvertoneDecay, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, cfg.volume(CueSolid))
}

// NewCueSound returns the streamer for cue, or nil for an unknown cue.
// to only affects CueBounce.
func NewCueSound(cue Cue, cfg *Config, to ray.Direction) beep.Streamer {
	switch cue {
	case CueShot:
		return NewShotSound(cfg)
	case CueBounce:
		return NewBounceSound(cfg, to)
	case CueBlocked:
		return NewBlockedSound(cfg)
	case CueSolid:
		return NewSolidSound(cfg)
	}
	return nil
}
