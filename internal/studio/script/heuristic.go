package script

import (
	"context"
	"fmt"
	"strings"

	"rawistudio/internal/domain/voice"

	"github.com/sirupsen/logrus"
)

// HeuristicAnalyzer is the offline fallback analyzer. It splits on blank
// lines, treats dash-prefixed lines as character dialogue and everything
// else as narration. Good enough to keep the pipeline usable without the
// remote analysis service.
type HeuristicAnalyzer struct{}

func NewHeuristicAnalyzer() *HeuristicAnalyzer { return &HeuristicAnalyzer{} }

func (h *HeuristicAnalyzer) Segment(_ context.Context, text string) ([]Suggestion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	var out []Suggestion
	character := 0
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		role := "الراوي"
		label := fmt.Sprintf("مقطع %d", len(out)+1)
		if strings.HasPrefix(para, "-") || strings.HasPrefix(para, "«") || strings.HasPrefix(para, "\"") {
			character++
			role = fmt.Sprintf("شخصية %d", character)
			label = fmt.Sprintf("حوار %d", character)
			para = strings.TrimLeft(para, "-«\" ")
		}
		out = append(out, Suggestion{Label: label, Role: role, Text: para})
	}

	if len(out) == 0 {
		// Whole text as one narrator block, mirroring the remote service's
		// own failure fallback.
		out = []Suggestion{{Label: "مقطع افتراضي", Role: "الراوي", Text: text}}
	}

	logrus.WithField("segments", len(out)).Debug("heuristic segmentation done")
	return out, nil
}

func (h *HeuristicAnalyzer) PodcastScript(_ context.Context, text, dialectID string, prior []Speaker) (Script, error) {
	if strings.TrimSpace(text) == "" {
		return Script{}, ErrEmptyText
	}

	speakers := append([]Speaker{}, prior...)
	if len(speakers) == 0 {
		speakers = []Speaker{
			{ID: "host", Role: "مقدم البرنامج", Tone: "هادئ", Style: "حواري", Gender: voice.Male, CategoryHint: voice.CategoryPodcast, Description: "يقود الحوار ويطرح الأسئلة"},
			{ID: "guest", Role: "الضيف", Tone: "متحمس", Style: "سردي", Gender: voice.Female, CategoryHint: voice.CategoryPodcast, Description: "يشرح المحتوى ويضيف الأمثلة"},
		}
	}

	// Alternate paragraphs across speakers in order.
	var turns []Turn
	i := 0
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		turns = append(turns, Turn{SpeakerID: speakers[i%len(speakers)].ID, Text: para})
		i++
	}
	if len(turns) == 0 {
		return Script{}, ErrEmptyText
	}

	logrus.WithFields(logrus.Fields{
		"dialect":  dialectID,
		"turns":    len(turns),
		"speakers": len(speakers),
	}).Debug("heuristic podcast script done")
	return Script{Turns: turns, Speakers: speakers}, nil
}
