package media

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"time"
)

// Simulator is a Backend with no decoder behind it: the position follows the
// wall clock scaled by the playback rate, and captured frames are synthetic.
// It lets the terminal shell exercise the bookmark core without a real
// video engine.
type Simulator struct {
	now      func() time.Time
	duration time.Duration

	path   string
	state  State
	base   time.Duration
	anchor time.Time
	rate   float64
	volume int
}

// NewSimulator returns a simulator whose media all last duration.
func NewSimulator(duration time.Duration) *Simulator {
	return &Simulator{
		now:      time.Now,
		duration: duration,
		rate:     1.0,
		volume:   100,
	}
}

// Load checks that path exists and resets playback to the start, paused.
func (s *Simulator) Load(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("load media: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("load media: %s is a directory", path)
	}
	s.path = path
	s.state = Paused
	s.base = 0
	s.anchor = s.now()
	return nil
}

func (s *Simulator) HasMedia() bool { return s.path != "" }

func (s *Simulator) Play() {
	if !s.HasMedia() || s.state == Playing {
		return
	}
	s.base = s.Position()
	s.anchor = s.now()
	s.state = Playing
}

func (s *Simulator) Pause() {
	if s.state != Playing {
		return
	}
	s.base = s.Position()
	s.state = Paused
}

func (s *Simulator) Stop() {
	s.state = Stopped
	s.base = 0
}

func (s *Simulator) State() State {
	// Reaching the end pauses playback.
	if s.state == Playing && s.Position() >= s.duration {
		s.base = s.duration
		s.state = Paused
	}
	return s.state
}

func (s *Simulator) Position() time.Duration {
	if s.state != Playing {
		return s.base
	}
	elapsed := time.Duration(float64(s.now().Sub(s.anchor)) * s.rate)
	return min(s.base+elapsed, s.duration)
}

func (s *Simulator) SetPosition(pos time.Duration) {
	if !s.HasMedia() {
		return
	}
	s.base = min(max(pos, 0), s.duration)
	s.anchor = s.now()
}

func (s *Simulator) Duration() time.Duration {
	if !s.HasMedia() {
		return 0
	}
	return s.duration
}

func (s *Simulator) PlaybackRate() float64 { return s.rate }

func (s *Simulator) SetPlaybackRate(rate float64) {
	s.base = s.Position()
	s.anchor = s.now()
	s.rate = ClampRate(rate)
}

func (s *Simulator) Volume() int { return s.volume }

func (s *Simulator) SetVolume(v int) { s.volume = ClampVolume(v) }

// CaptureFrame renders a gradient whose hue tracks the position, so distinct
// bookmarks get visibly distinct previews.
func (s *Simulator) CaptureFrame(at time.Duration) (image.Image, error) {
	if !s.HasMedia() {
		return nil, ErrNoMedia
	}
	const w, h = 320, 180
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	shift := uint8(at / (100 * time.Millisecond))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{
				R: uint8(x) + shift,
				G: uint8(y) + shift/2,
				B: shift,
				A: 255,
			})
		}
	}
	return img, nil
}

// Verify Simulator implements Backend at compile time.
var _ Backend = (*Simulator)(nil)
