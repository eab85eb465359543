// Package synth is the boundary to the external speech provider: one call,
// one awaited PCM artifact. Providers are never retried; failures propagate
// to the orchestrator as terminal errors.
package synth

import (
	"context"
	"errors"

	"rawistudio/internal/domain/voice"
)

var (
	ErrNoAudio = errors.New("provider returned no audio payload")
	ErrNoVoice = errors.New("request carries no voice profile")
)

// Controls are the performance knobs, kept as the studio's free-text scale
// words and mapped to provider parameters where supported.
type Controls struct {
	Temp    string
	Emotion string
	Speed   string
	Depth   string
	Pitch   string
	Drama   string
	Purpose string
}

// DefaultControls mirror the studio's neutral console position.
func DefaultControls() Controls {
	return Controls{
		Temp:    "متوازن",
		Emotion: "متوسط",
		Speed:   "متوسطة",
		Depth:   "متوسطة",
		Pitch:   "متوسطة",
		Drama:   "متوسط",
	}
}

// Request is one synthesis call. Directive is a free-text performance note
// assembled at freeze time; providers that cannot consume it ignore it.
type Request struct {
	Text      string
	Profile   voice.Profile
	Controls  Controls
	DialectID string
	Directive string
}

// Artifact is raw synthesized audio: little-endian signed 16-bit mono PCM.
// SegmentIndex ties the artifact back to the segment that produced it so
// assembly order never depends on arrival order.
type Artifact struct {
	SegmentIndex int
	PCM          []byte
	SampleRate   int
	Channels     int
}

// Samples is the artifact length in samples.
func (a Artifact) Samples() int { return len(a.PCM) / 2 }

// Synthesizer is the provider contract.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (Artifact, error)
}
