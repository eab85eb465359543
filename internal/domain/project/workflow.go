package project

import (
	"fmt"
	"strings"
)

// Stage is one step of the production workflow. Stages run in strict
// forward order and are only ever advanced by an explicit user action.
type Stage string

const (
	StageNew        Stage = "new"
	StageImport     Stage = "import"
	StageScript     Stage = "script"
	StageDistribute Stage = "distribute"
	StagePilot      Stage = "pilot"
	StageProduction Stage = "production"
	StageCompleted  Stage = "completed"
)

var stageOrder = []Stage{
	StageNew, StageImport, StageScript, StageDistribute,
	StagePilot, StageProduction, StageCompleted,
}

func (s Stage) String() string { return string(s) }

// Index returns the stage position, or -1 for an unknown stage.
func (s Stage) Index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the following stage; completed is terminal.
func (s Stage) Next() Stage {
	i := s.Index()
	if i < 0 || i == len(stageOrder)-1 {
		return s
	}
	return stageOrder[i+1]
}

// CanEnter checks that the prerequisite data of the preceding stage exists.
// It never issues external calls; a nil return means the transition is
// legal right now.
func (p Project) CanEnter(target Stage) error {
	switch target {
	case StageNew, StageImport:
		return nil
	case StageScript:
		if strings.TrimSpace(p.Content) == "" {
			return fmt.Errorf("stage %s: no imported text", target)
		}
	case StageDistribute:
		if strings.TrimSpace(p.SourceText()) == "" {
			return fmt.Errorf("stage %s: no script text available", target)
		}
	case StagePilot:
		for _, s := range p.Segments {
			if strings.TrimSpace(s.Content) != "" {
				return nil
			}
		}
		return fmt.Errorf("stage %s: no segment carries text", target)
	case StageProduction:
		for _, s := range p.Segments {
			if strings.TrimSpace(s.SelectedVoice) == "" {
				return fmt.Errorf("stage %s: segment %d (%s) has no voice assigned", target, s.ID, s.Label)
			}
		}
	case StageCompleted:
		for _, s := range p.Segments {
			if s.FinalPath == "" {
				return fmt.Errorf("stage %s: segment %d has no rendered audio", target, s.ID)
			}
		}
	default:
		return fmt.Errorf("unknown workflow stage %q", target)
	}
	return nil
}
