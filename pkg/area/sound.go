package area

import (
	"github.com/cbodonnell/tilearea/pkg/kinematic"
)

// Sound is a sound emitted in the area. It stays until Elapsed reaches TTL,
// both in seconds.
type Sound struct {
	Filename string
	Position kinematic.Vector
	TTL      float64
	Elapsed  float64
}

func (s Sound) Done() bool {
	return s.Elapsed >= s.TTL
}

// ageSounds advances every sound and drops the finished ones.
func ageSounds(sounds []Sound, dt float64) []Sound {
	for i := range sounds {
		sounds[i].Elapsed += dt
	}
	return compactSounds(sounds)
}

func compactSounds(sounds []Sound) []Sound {
	kept := sounds[:0]
	for _, s := range sounds {
		if !s.Done() {
			kept = append(kept, s)
		}
	}
	return kept
}

func playing(sounds []Sound, filename string) bool {
	for _, s := range sounds {
		if s.Filename == filename && !s.Done() {
			return true
		}
	}
	return false
}
