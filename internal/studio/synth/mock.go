package synth

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/fatih/color"
)

// MockSynthesizer produces deterministic placeholder audio: a fixed number
// of samples per rune of input, with values derived from the text and the
// voice name. Identical requests always produce identical artifacts, which
// the assembler round-trip tests rely on.
type MockSynthesizer struct {
	SamplesPerRune int
	SampleRate     int

	// FailOn, when set, is consulted with the 1-based call number; a
	// non-nil error fails that call.
	FailOn func(call int) error

	mu       sync.Mutex
	calls    int
	Requests []Request
}

func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{SamplesPerRune: 240, SampleRate: 24000}
}

func (m *MockSynthesizer) Synthesize(_ context.Context, req Request) (Artifact, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if m.FailOn != nil {
		if err := m.FailOn(call); err != nil {
			return Artifact{}, err
		}
	}
	if req.Profile.ID == "" {
		return Artifact{}, ErrNoVoice
	}

	seed := int32(0)
	for _, r := range req.Text + req.Profile.Name {
		seed = seed*31 + int32(r)
	}

	n := len([]rune(req.Text)) * m.SamplesPerRune
	if n == 0 {
		return Artifact{}, ErrNoAudio
	}
	pcm := make([]byte, n*2)
	for i := 0; i < n; i++ {
		v := int16((seed + int32(i)*797) % 32768)
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(v))
	}

	color.Yellow("🔊 mock synthesis: %d samples for %q", n, req.Profile.Name)
	return Artifact{PCM: pcm, SampleRate: m.SampleRate, Channels: 1}, nil
}

// Calls reports how many synthesis requests were issued.
func (m *MockSynthesizer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
