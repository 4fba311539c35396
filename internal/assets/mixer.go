package assets

import (
	"io"

	"github.com/vovakirdan/recycle-runner/internal/core"
)

// Mixer plays sounds. Implementations must be cheap to call every frame.
type Mixer interface {
	Play(s *Sound, loop bool)
	Stop()
	SetVolume(music, sfx float64)
}

// NopMixer discards all playback.
type NopMixer struct{}

func (NopMixer) Play(*Sound, bool) {}

func (NopMixer) Stop() {}

func (NopMixer) SetVolume(float64, float64) {}

// BellMixer is the terminal mixer: effects ring the bell when the effect
// volume is audible, music only tracks which loop is active.
type BellMixer struct {
	out   io.Writer
	music float64
	sfx   float64
	loop  *Sound
}

// NewBellMixer creates a mixer writing bell characters to out.
func NewBellMixer(out io.Writer) *BellMixer {
	return &BellMixer{out: out, music: 0.5, sfx: 0.5}
}

// Play starts a sound. Looping sounds replace the active loop.
func (m *BellMixer) Play(s *Sound, loop bool) {
	if s == nil {
		return
	}
	if loop || s.Kind == KindMusic {
		m.loop = s
		return
	}
	if m.sfx > 0 && m.out != nil {
		//nolint:errcheck // Best-effort cue
		m.out.Write([]byte{'\a'})
	}
}

// Stop silences everything, including the active loop.
func (m *BellMixer) Stop() {
	m.loop = nil
}

// SetVolume sets music and effect volume, each clamped to [0, 1].
func (m *BellMixer) SetVolume(music, sfx float64) {
	m.music = core.ClampF(music, 0, 1)
	m.sfx = core.ClampF(sfx, 0, 1)
}

// Looping returns the active music loop, or nil.
func (m *BellMixer) Looping() *Sound {
	if m.music <= 0 {
		return nil
	}
	return m.loop
}
