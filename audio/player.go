package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Archer4499/raytracer/ray"
)

// Player turns tracer events into sound cues. It satisfies ray.Observer.
// Every method is safe to call before Initialize or after Cleanup; cues are
// silently discarded while the player is not running.
type Player struct {
	mu          sync.Mutex
	config      *Config
	mixer       *beep.Mixer
	lock        sync.Locker
	output      func()
	initialized bool

	played  atomic.Uint64
	dropped atomic.Uint64
}

var _ ray.Observer = (*Player)(nil)

// NewPlayer creates a player; a nil config selects DefaultConfig
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Player{
		config: cfg,
		mixer:  &beep.Mixer{},
	}
}

// speakerLock serializes mixer changes with the speaker goroutine
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Initialize opens the audio device and starts the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	rate := beep.SampleRate(p.config.SampleRate)
	if err := speaker.Init(rate, rate.N(p.config.BufferSize)); err != nil {
		return err
	}
	speaker.Play(p.mixer)

	p.lock = speakerLock{}
	p.output = speaker.Close
	p.initialized = true
	return nil
}

// attach runs the mixer without a device; the caller pulls samples from Mixer
func (p *Player) attach() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lock = &sync.Mutex{}
	p.output = nil
	p.initialized = true
}

// Cleanup drops pending cues and closes the device
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	p.lock.Lock()
	p.mixer.Clear()
	p.lock.Unlock()

	if p.output != nil {
		p.output()
	}
	p.initialized = false
}

// Play queues a cue; to sets the pitch of bounce cues.
// Returns false when the cue was not queued.
func (p *Player) Play(cue Cue, to ray.Direction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return false
	}

	s := NewCueSound(cue, p.config, to)
	if s == nil {
		return false
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	if p.config.MaxVoices > 0 && p.mixer.Len() >= p.config.MaxVoices {
		p.dropped.Add(1)
		return false
	}
	p.mixer.Add(s)
	p.played.Add(1)
	return true
}

// Mixer exposes the output stream
func (p *Player) Mixer() beep.Streamer {
	return p.mixer
}

// Stats returns how many cues were played and dropped
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

// Shot plays the launch cue
func (p *Player) Shot() {
	p.Play(CueShot, 0)
}

// Wrote implements ray.Observer; a block reaching full density rings
func (p *Player) Wrote(_ ray.Point, prev, next ray.Cell) {
	if next.Solid() && !prev.Solid() {
		p.Play(CueSolid, 0)
	}
}

// Bounced implements ray.Observer
func (p *Player) Bounced(_ ray.Point, _, to ray.Direction) {
	p.Play(CueBounce, to)
}

// Blocked implements ray.Observer
func (p *Player) Blocked(ray.Point, ray.Cell) {
	p.Play(CueBlocked, 0)
}
