package audio

import (
	"fmt"
	"time"
)

// Cue identifies one short sound played during a trace
type Cue int

const (
	CueShot    Cue = iota // Ray leaves the light source
	CueBounce             // Reflection off the grid boundary
	CueBlocked            // Ray stopped by an obstacle
	CueSolid              // Block reached full density
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueShot:
		return "shot"
	case CueBounce:
		return "bounce"
	case CueBlocked:
		return "blocked"
	case CueSolid:
		return "solid"
	}
	return fmt.Sprintf("Cue(%d)", int(c))
}

// Cue envelope timings
const (
	shotDuration = 60 * time.Millisecond
	shotAttack   = 5 * time.Millisecond
	shotRelease  = 45 * time.Millisecond

	bounceDuration = 45 * time.Millisecond
	bounceAttack   = 2 * time.Millisecond
	bounceRelease  = 35 * time.Millisecond

	blockedDuration = 120 * time.Millisecond
	blockedAttack   = 5 * time.Millisecond
	blockedRelease  = 60 * time.Millisecond

	solidDuration         = 400 * time.Millisecond
	solidAttack           = 5 * time.Millisecond
	solidFundamentalDecay = 380 * time.Millisecond
	solidOvertoneDecay    = 200 * time.Millisecond
)

// Config holds playback settings
type Config struct {
	SampleRate   int
	BufferSize   time.Duration
	MasterVolume float64
	CueVolumes   [cueCount]float64
	MaxVoices    int // concurrent cues; extra cues are dropped
}

// DefaultConfig returns moderate volumes tuned so bounces sit under the other cues
func DefaultConfig() *Config {
	return &Config{
		SampleRate:   44100,
		BufferSize:   50 * time.Millisecond,
		MasterVolume: 0.5,
		CueVolumes: [cueCount]float64{
			CueShot:    0.3,
			CueBounce:  0.4,
			CueBlocked: 0.6,
			CueSolid:   0.7,
		},
		MaxVoices: 8,
	}
}

// volume returns the effective gain for a cue, clamped to [0,1]
func (c *Config) volume(cue Cue) float64 {
	if cue < 0 || cue >= cueCount {
		return 0
	}
	v := c.CueVolumes[cue] * c.MasterVolume
	return max(0, min(v, 1))
}
