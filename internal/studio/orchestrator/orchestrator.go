// Package orchestrator drives synthesis over an ordered list of units. A
// full batch is all-or-nothing: the first failure aborts it and discards
// every artifact gathered so far, because a partially-voiced audiobook is
// worse than none. Pilot units run isolated instead.
package orchestrator

import (
	"context"
	"fmt"
	"math"

	"rawistudio/internal/domain/voice"
	"rawistudio/internal/studio/synth"

	"github.com/sirupsen/logrus"
)

// Unit is one frozen synthesis job. It is built from a snapshot of the
// project taken before the batch starts, so edits made mid-batch cannot
// reach an in-flight request.
type Unit struct {
	Index     int
	Text      string
	Profile   voice.Profile
	Controls  synth.Controls
	DialectID string
	Directive string
}

// Progress receives the completion percentage after each finished unit.
type Progress func(percent int)

type Orchestrator struct {
	synth synth.Synthesizer
	log   *logrus.Entry
}

func New(s synth.Synthesizer) *Orchestrator {
	return &Orchestrator{
		synth: s,
		log:   logrus.WithField("component", "orchestrator"),
	}
}

func (o *Orchestrator) request(u Unit) synth.Request {
	return synth.Request{
		Text:      u.Text,
		Profile:   u.Profile,
		Controls:  u.Controls,
		DialectID: u.DialectID,
		Directive: u.Directive,
	}
}

// Batch synthesizes every unit strictly in order, one request in flight at
// a time. Progress after k of n units is round(100·k/n) and reaches exactly
// 100 only when the last unit has succeeded. Any failure returns nil
// artifacts and a wrapped provider error.
func (o *Orchestrator) Batch(ctx context.Context, units []Unit, onProgress Progress) ([]synth.Artifact, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("no units to synthesize")
	}

	artifacts := make([]synth.Artifact, 0, len(units))
	for k, u := range units {
		art, err := o.synth.Synthesize(ctx, o.request(u))
		if err != nil {
			o.log.WithError(err).WithField("unit", u.Index).Warn("batch aborted")
			return nil, fmt.Errorf("unit %d (%s): %w", u.Index, u.Profile.Name, err)
		}
		art.SegmentIndex = u.Index
		artifacts = append(artifacts, art)

		if onProgress != nil {
			onProgress(percent(k+1, len(units)))
		}
	}

	o.log.WithField("units", len(units)).Info("batch complete")
	return artifacts, nil
}

// Pilot synthesizes a single unit on demand. Its outcome never affects any
// other unit's previously generated audio.
func (o *Orchestrator) Pilot(ctx context.Context, u Unit) (synth.Artifact, error) {
	art, err := o.synth.Synthesize(ctx, o.request(u))
	if err != nil {
		return synth.Artifact{}, fmt.Errorf("pilot unit %d: %w", u.Index, err)
	}
	art.SegmentIndex = u.Index
	return art, nil
}

func percent(done, total int) int {
	return int(math.Round(float64(done) / float64(total) * 100))
}
