package studio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rawistudio/internal/domain/voice"
	"rawistudio/internal/studio/assemble"
	"rawistudio/internal/studio/assign"
	"rawistudio/internal/studio/orchestrator"
	"rawistudio/internal/studio/script"
	"rawistudio/internal/studio/synth"

	"github.com/sirupsen/logrus"
)

// DistributionMode selects how podcast speakers get their voices.
type DistributionMode string

const (
	// DistributionSmart assigns voices automatically by gender and
	// category hint, preferring unused voices until the pool runs out.
	DistributionSmart DistributionMode = "smart"
	// DistributionManual requires an explicit user mapping for every
	// speaker before production may proceed.
	DistributionManual DistributionMode = "manual"
)

// PodcastSession holds the podcast variant's working state. The voice map
// is a side table keyed by speaker id, never embedded in the turns.
type PodcastSession struct {
	DialectID  string
	Script     script.Script
	VoiceMap   map[string]string
	Mode       DistributionMode
	MasterPath string
}

func (s *Studio) Podcast() *PodcastSession { return s.podcast }

// GeneratePodcastScript analyzes text into turns and speakers. Existing
// speakers survive re-analysis; only new speakers receive automatic voice
// assignments, and only in smart mode.
func (s *Studio) GeneratePodcastScript(ctx context.Context, text, dialectID string) error {
	if text == "" {
		return fmt.Errorf("no text to analyze")
	}

	var prior []script.Speaker
	existing := map[string]string{}
	if s.podcast != nil {
		prior = s.podcast.Script.Speakers
		for id, vid := range s.podcast.VoiceMap {
			existing[id] = vid
		}
	}

	result, err := s.analyzer.PodcastScript(ctx, text, dialectID, prior)
	if err != nil {
		return fmt.Errorf("podcast analysis failed: %w", err)
	}
	if len(result.Turns) == 0 {
		return fmt.Errorf("analyzer returned no turns")
	}

	pool := voice.ForDialect(dialectID)
	voiceMap, err := assign.Speakers(result.Speakers, pool, existing)
	if err != nil {
		return err
	}

	s.podcast = &PodcastSession{
		DialectID: dialectID,
		Script:    result,
		VoiceMap:  voiceMap,
		Mode:      DistributionSmart,
	}
	s.log.WithFields(logrus.Fields{
		"turns":    len(result.Turns),
		"speakers": len(result.Speakers),
	}).Info("podcast script ready")
	return nil
}

// SetPodcastDistribution switches modes. Entering smart mode recomputes the
// whole map from scratch; manual overrides do not survive the switch.
func (s *Studio) SetPodcastDistribution(mode DistributionMode) error {
	if s.podcast == nil {
		return fmt.Errorf("no podcast session")
	}
	if s.locked {
		s.log.Debug("distribution change rejected: batch in flight")
		return nil
	}
	s.podcast.Mode = mode
	if mode == DistributionSmart && len(s.podcast.Script.Speakers) > 0 {
		pool := voice.ForDialect(s.podcast.DialectID)
		voiceMap, err := assign.Speakers(s.podcast.Script.Speakers, pool, nil)
		if err != nil {
			return err
		}
		s.podcast.VoiceMap = voiceMap
	}
	return nil
}

// AssignSpeakerVoice sets one manual mapping entry.
func (s *Studio) AssignSpeakerVoice(speakerID, voiceID string) error {
	if s.podcast == nil {
		return fmt.Errorf("no podcast session")
	}
	if s.locked {
		s.log.Debug("speaker assignment rejected: batch in flight")
		return nil
	}
	if _, ok := voice.ByID(voiceID); !ok {
		return fmt.Errorf("unknown voice %q", voiceID)
	}
	if s.podcast.VoiceMap == nil {
		s.podcast.VoiceMap = map[string]string{}
	}
	s.podcast.VoiceMap[speakerID] = voiceID
	return nil
}

// GeneratePodcastAudio synthesizes every turn in order and assembles the
// podcast master. Every speaker must be mapped to a valid voice first.
func (s *Studio) GeneratePodcastAudio(ctx context.Context, onProgress orchestrator.Progress) (string, error) {
	if s.podcast == nil || len(s.podcast.Script.Turns) == 0 {
		return "", fmt.Errorf("no podcast script to produce")
	}

	units := make([]orchestrator.Unit, 0, len(s.podcast.Script.Turns))
	for i, turn := range s.podcast.Script.Turns {
		voiceID, ok := s.podcast.VoiceMap[turn.SpeakerID]
		if !ok {
			return "", fmt.Errorf("speaker %q has no voice assigned", turn.SpeakerID)
		}
		profile, ok := voice.ByID(voiceID)
		if !ok {
			return "", fmt.Errorf("speaker %q mapped to unknown voice %q", turn.SpeakerID, voiceID)
		}
		units = append(units, orchestrator.Unit{
			Index:     i,
			Text:      turn.Text,
			Profile:   profile,
			Controls:  s.controls,
			DialectID: s.podcast.DialectID,
			Directive: synth.BuildDirective(profile, s.controls, s.podcast.DialectID, "Podcast Audio Production"),
		})
	}

	s.locked = true
	defer func() { s.locked = false }()

	artifacts, err := s.orch.Batch(ctx, units, onProgress)
	if err != nil {
		return "", err
	}
	master, err := assemble.Merge(artifacts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.outDir, fmt.Sprintf("podcast_%s.wav", md5Sum(s.podcast.DialectID+fmt.Sprint(len(units)))[:8]))
	if err := os.WriteFile(path, master, 0644); err != nil {
		return "", fmt.Errorf("failed to write podcast master: %w", err)
	}

	s.podcast.MasterPath = path
	s.pushHistory(Render{
		ID:        fmt.Sprintf("podcast-%d", time.Now().Unix()),
		VoiceName: "podcast",
		DialectID: s.podcast.DialectID,
		Path:      path,
		Timestamp: time.Now(),
	})
	return path, nil
}
