package media

import (
	"image"
	"image/color"
	"time"
)

// Mock is a test double for Backend. Position only moves when the test
// says so.
type Mock struct {
	hasMedia   bool
	state      State
	position   time.Duration
	duration   time.Duration
	rate       float64
	volume     int
	loadErr    error
	captureErr error
	onSeek     func(time.Duration)

	loads    []string
	seeks    []time.Duration
	captures []time.Duration
	pauses   int
}

// NewMock creates a mock with media loaded, paused at 0, rate 1 and
// volume 100.
func NewMock() *Mock {
	return &Mock{
		hasMedia: true,
		state:    Paused,
		duration: 10 * time.Minute,
		rate:     1.0,
		volume:   100,
	}
}

func (m *Mock) Load(path string) error {
	m.loads = append(m.loads, path)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.hasMedia = true
	m.state = Paused
	m.position = 0
	return nil
}

func (m *Mock) HasMedia() bool { return m.hasMedia }

func (m *Mock) Play() {
	if m.hasMedia {
		m.state = Playing
	}
}

func (m *Mock) Pause() {
	m.pauses++
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Stop() {
	m.state = Stopped
	m.position = 0
}

func (m *Mock) State() State { return m.state }

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) SetPosition(pos time.Duration) {
	m.seeks = append(m.seeks, pos)
	m.position = min(max(pos, 0), m.duration)
	if m.onSeek != nil {
		m.onSeek(m.position)
	}
}

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) PlaybackRate() float64 { return m.rate }

func (m *Mock) SetPlaybackRate(rate float64) { m.rate = ClampRate(rate) }

func (m *Mock) Volume() int { return m.volume }

func (m *Mock) SetVolume(v int) { m.volume = ClampVolume(v) }

func (m *Mock) CaptureFrame(at time.Duration) (image.Image, error) {
	if !m.hasMedia {
		return nil, ErrNoMedia
	}
	if m.captureErr != nil {
		return nil, m.captureErr
	}
	m.captures = append(m.captures, at)
	img := image.NewRGBA(image.Rect(0, 0, 64, 36))
	img.Set(0, 0, color.RGBA{R: uint8(at.Seconds()), A: 255})
	return img, nil
}

// Test helpers

func (m *Mock) SetHasMedia(ok bool) { m.hasMedia = ok }

func (m *Mock) SetState(s State) { m.state = s }

// Advance moves the position without recording a seek.
func (m *Mock) Advance(pos time.Duration) { m.position = pos }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) SetCaptureError(err error) { m.captureErr = err }

// OnSeek installs fn to run synchronously after every SetPosition, the way
// some engines report a position change from inside the seek call.
func (m *Mock) OnSeek(fn func(time.Duration)) { m.onSeek = fn }

func (m *Mock) Loads() []string { return m.loads }

func (m *Mock) Seeks() []time.Duration { return m.seeks }

func (m *Mock) Captures() []time.Duration { return m.captures }

func (m *Mock) Pauses() int { return m.pauses }

// ResetCalls clears the recorded calls.
func (m *Mock) ResetCalls() {
	m.loads, m.seeks, m.captures, m.pauses = nil, nil, nil, 0
}

// Verify Mock implements Backend at compile time.
var _ Backend = (*Mock)(nil)
