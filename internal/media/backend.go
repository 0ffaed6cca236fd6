// Package media defines the contract of the external playback backend and
// ships a test double and a clock-driven simulator.
package media

import (
	"errors"
	"image"
	"time"
)

// Backend errors.
var (
	ErrNoMedia       = errors.New("no media loaded")
	ErrCaptureFailed = errors.New("frame capture failed")
)

// Backend is the media engine the bookmark core drives. Calls may block;
// the core invokes them synchronously from its event loop.
type Backend interface {
	Load(path string) error
	HasMedia() bool

	Play()
	Pause()
	Stop()
	State() State

	Position() time.Duration
	SetPosition(pos time.Duration)
	Duration() time.Duration

	PlaybackRate() float64
	SetPlaybackRate(rate float64)

	// Volume is a percentage in [0, MaxVolume].
	Volume() int
	SetVolume(v int)

	CaptureFrame(at time.Duration) (image.Image, error)
}

const (
	MinRate   = 0.1
	MaxRate   = 5.0
	MaxVolume = 200
)

// ClampRate bounds a playback rate to [MinRate, MaxRate].
func ClampRate(rate float64) float64 {
	return min(max(rate, MinRate), MaxRate)
}

// ClampVolume bounds a volume to [0, MaxVolume].
func ClampVolume(v int) int {
	return min(max(v, 0), MaxVolume)
}
