// Package script models the text-understanding collaborators: segmentation
// of prose into narration segments and podcast script generation. The real
// analysis service is external; outputs are consumed as-is and only checked
// for non-emptiness.
package script

import (
	"context"
	"errors"

	"rawistudio/internal/domain/voice"
)

// Suggestion is one proposed narration segment.
type Suggestion struct {
	Label string `json:"label"`
	Role  string `json:"role"`
	Text  string `json:"text"`
}

// Speaker describes one podcast voice role. CategoryHint steers smart
// distribution toward a matching catalog category.
type Speaker struct {
	ID           string         `json:"id"`
	Role         string         `json:"role"`
	Tone         string         `json:"tone"`
	Style        string         `json:"style"`
	Gender       voice.Gender   `json:"gender"`
	CategoryHint voice.Category `json:"category_hint"`
	Description  string         `json:"description"`
}

// Turn binds one speaker to one line of dialogue. Turn order is the
// temporal order of the podcast.
type Turn struct {
	SpeakerID string `json:"speaker_id"`
	Text      string `json:"text"`
}

// Script is a full podcast scenario.
type Script struct {
	Turns    []Turn    `json:"turns"`
	Speakers []Speaker `json:"speakers"`
}

var ErrEmptyText = errors.New("no text to analyze")

// Analyzer is the contract for text-understanding providers.
type Analyzer interface {
	// Segment splits prose into ordered narration suggestions.
	Segment(ctx context.Context, text string) ([]Suggestion, error)

	// PodcastScript turns prose into a multi-speaker dialogue. Speakers in
	// prior must all survive into the result.
	PodcastScript(ctx context.Context, text, dialectID string, prior []Speaker) (Script, error)
}
