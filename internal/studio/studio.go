// Package studio owns the active project and exposes the workflow surface:
// import, script, distribution, pilot and master production. The project is
// a single-writer resource; every mutation goes through here and replaces
// the aggregate wholesale.
package studio

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"rawistudio/internal/domain/project"
	"rawistudio/internal/domain/voice"
	"rawistudio/internal/studio/assemble"
	"rawistudio/internal/studio/assign"
	"rawistudio/internal/studio/orchestrator"
	"rawistudio/internal/studio/script"
	"rawistudio/internal/studio/synth"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	beepwav "github.com/faiface/beep/wav"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// pilotRunes is how much of a segment a pilot render covers.
const pilotRunes = 100

const historyLimit = 5

// Render is one finished audio artifact kept in the session history.
type Render struct {
	ID        string
	VoiceName string
	DialectID string
	Path      string
	Timestamp time.Time
}

type Studio struct {
	synth    synth.Synthesizer
	orch     *orchestrator.Orchestrator
	analyzer script.Analyzer
	log      *logrus.Entry

	outDir   string
	controls synth.Controls

	// locked gates all selection-mutating operations while a batch is in
	// flight; locked mutations are silently rejected.
	locked bool

	proj    *project.Project
	stage   project.Stage
	history []Render

	podcast *PodcastSession
}

// New builds a studio around the configured synthesis provider.
func New(ctx context.Context) (*Studio, error) {
	if err := voice.Validate(); err != nil {
		return nil, err
	}

	s, err := synth.NewSynthesizer(ctx, viper.GetString("synth.provider"))
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}

	outDir := viper.GetString("studio.out_dir")
	if outDir == "" {
		outDir = defaultOutDirectory()
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	return NewWith(s, script.NewHeuristicAnalyzer(), outDir), nil
}

// NewWith wires explicit collaborators; tests use it directly.
func NewWith(s synth.Synthesizer, analyzer script.Analyzer, outDir string) *Studio {
	return &Studio{
		synth:    s,
		orch:     orchestrator.New(s),
		analyzer: analyzer,
		log:      logrus.WithField("component", "studio"),
		outDir:   outDir,
		controls: synth.DefaultControls(),
		stage:    project.StageNew,
	}
}

func (s *Studio) Project() *project.Project { return s.proj }
func (s *Studio) Stage() project.Stage      { return s.stage }
func (s *Studio) Locked() bool              { return s.locked }
func (s *Studio) History() []Render         { return s.history }
func (s *Studio) Controls() synth.Controls  { return s.controls }

// NewProject discards any current project and starts a fresh draft.
func (s *Studio) NewProject(name, dialectID string) *project.Project {
	p := project.New(name, dialectID)
	s.proj = &p
	s.stage = project.StageNew
	s.podcast = nil
	s.log.WithFields(logrus.Fields{"project": p.ID, "dialect": dialectID}).Info("created project")
	return s.proj
}

// StartOver discards the active project entirely. This is the only way back
// to the new stage.
func (s *Studio) StartOver() {
	if s.locked {
		s.log.Debug("start over rejected: batch in flight")
		return
	}
	s.proj = nil
	s.podcast = nil
	s.stage = project.StageNew
}

// Advance moves the workflow to target after checking its prerequisites.
func (s *Studio) Advance(target project.Stage) error {
	if s.proj == nil {
		return fmt.Errorf("no active project")
	}
	if err := s.proj.CanEnter(target); err != nil {
		return err
	}
	s.stage = target
	return nil
}

// mutate applies a copy-on-write project operation unless the studio is
// locked, in which case the attempt is silently dropped.
func (s *Studio) mutate(op func(project.Project) (project.Project, error)) error {
	if s.proj == nil {
		return fmt.Errorf("no active project")
	}
	if s.locked {
		s.log.Debug("mutation rejected: batch in flight")
		return nil
	}
	next, err := op(*s.proj)
	if err != nil {
		return err
	}
	s.proj = &next
	return nil
}

func (s *Studio) ImportText(text string) error {
	return s.mutate(func(p project.Project) (project.Project, error) {
		if text == "" {
			return p, fmt.Errorf("no text to import")
		}
		return p.SetContent(text), nil
	})
}

func (s *Studio) SaveScript(text string) error {
	return s.mutate(func(p project.Project) (project.Project, error) {
		return p.SetEnhanced(text), nil
	})
}

func (s *Studio) SetControls(c synth.Controls) {
	if s.locked {
		s.log.Debug("controls change rejected: batch in flight")
		return
	}
	s.controls = c
}

// AutoDistribute asks the analyzer to segment the source text and assigns a
// stable voice to every role within the project's dialect pool.
func (s *Studio) AutoDistribute(ctx context.Context) error {
	if s.proj == nil {
		return fmt.Errorf("no active project")
	}
	if err := s.proj.CanEnter(project.StageDistribute); err != nil {
		return err
	}

	suggestions, err := s.analyzer.Segment(ctx, s.proj.SourceText())
	if err != nil {
		return fmt.Errorf("segmentation failed: %w", err)
	}
	if len(suggestions) == 0 {
		return fmt.Errorf("analyzer returned no segments")
	}

	pool := voice.ForDialect(s.proj.DialectID)
	prior := make(map[string]string)
	segs := make([]project.Segment, 0, len(suggestions))
	for i, sug := range suggestions {
		name, err := assign.Role(sug.Role, pool, prior)
		if err != nil {
			return err
		}
		segs = append(segs, project.Segment{
			ID:            i + 1,
			Label:         sug.Label,
			Role:          sug.Role,
			SelectedVoice: name,
			Content:       sug.Text,
		})
	}

	return s.mutate(func(p project.Project) (project.Project, error) {
		return p.ReplaceSegments(segs)
	})
}

// SplitByParagraph rebuilds segments manually, one narrator paragraph each,
// all on the dialect's first voice.
func (s *Studio) SplitByParagraph() error {
	if s.proj == nil {
		return fmt.Errorf("no active project")
	}
	pool := voice.ForDialect(s.proj.DialectID)
	return s.mutate(func(p project.Project) (project.Project, error) {
		return p.SplitByParagraphs(pool[0].Name)
	})
}

func (s *Studio) InsertSegmentAfter(index int) error {
	return s.mutate(func(p project.Project) (project.Project, error) { return p.InsertAfter(index) })
}

func (s *Studio) RemoveSegment(index int) error {
	return s.mutate(func(p project.Project) (project.Project, error) { return p.Remove(index) })
}

func (s *Studio) MergeSegmentWithNext(index int) error {
	return s.mutate(func(p project.Project) (project.Project, error) { return p.MergeWithNext(index) })
}

func (s *Studio) UpdateSegment(index int, fn func(*project.Segment)) error {
	return s.mutate(func(p project.Project) (project.Project, error) { return p.UpdateSegment(index, fn) })
}

// freezeUnit resolves a segment's voice and builds its immutable synthesis
// job from the current controls snapshot.
func (s *Studio) freezeUnit(seg project.Segment, index int, text, note string) (orchestrator.Unit, error) {
	profile, ok := voice.ByName(seg.SelectedVoice)
	if !ok {
		profile, ok = voice.ByID(seg.SelectedVoice)
	}
	if !ok {
		return orchestrator.Unit{}, fmt.Errorf("segment %d: unknown voice %q", seg.ID, seg.SelectedVoice)
	}
	return orchestrator.Unit{
		Index:     index,
		Text:      text,
		Profile:   profile,
		Controls:  s.controls,
		DialectID: s.proj.DialectID,
		Directive: synth.BuildDirective(profile, s.controls, s.proj.DialectID, note),
	}, nil
}

// GeneratePilot renders an isolated preview of one segment (its first 100
// characters). Failure touches nothing but this call.
func (s *Studio) GeneratePilot(ctx context.Context, segmentID int) (string, error) {
	if s.proj == nil {
		return "", fmt.Errorf("no active project")
	}
	seg, index, ok := s.proj.SegmentByID(segmentID)
	if !ok {
		return "", fmt.Errorf("segment %d not found", segmentID)
	}
	if seg.SelectedVoice == "" {
		return "", fmt.Errorf("segment %d has no voice assigned", segmentID)
	}
	if seg.Content == "" {
		return "", fmt.Errorf("segment %d has no text", segmentID)
	}

	text := seg.Content
	if runes := []rune(text); len(runes) > pilotRunes {
		text = string(runes[:pilotRunes])
	}

	unit, err := s.freezeUnit(seg, index, text, "Pilot Lock")
	if err != nil {
		return "", err
	}
	art, err := s.orch.Pilot(ctx, unit)
	if err != nil {
		return "", err
	}

	path, err := s.writeRender("pilot", text, seg.SelectedVoice, []synth.Artifact{art})
	if err != nil {
		return "", err
	}
	if err := s.UpdateSegment(index, func(sg *project.Segment) { sg.PilotPath = path }); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateMaster runs the full production batch and assembles the master
// WAV. The studio is locked for the duration; any failure leaves the
// project without a master and discards all partial results.
func (s *Studio) GenerateMaster(ctx context.Context, onProgress orchestrator.Progress) (string, error) {
	if s.proj == nil {
		return "", fmt.Errorf("no active project")
	}
	if err := s.proj.CanEnter(project.StageProduction); err != nil {
		return "", err
	}

	// Freeze: units snapshot the project and controls as of right now.
	frozen := *s.proj
	units := make([]orchestrator.Unit, 0, len(frozen.Segments))
	for i, seg := range frozen.Segments {
		note := fmt.Sprintf("Full Production: Segment %d", i+1)
		unit, err := s.freezeUnit(seg, i, seg.Content, note)
		if err != nil {
			return "", err
		}
		units = append(units, unit)
	}

	s.locked = true
	defer func() { s.locked = false }()
	s.stage = project.StageProduction
	next := frozen.SetStatus(project.StatusInProgress)
	s.proj = &next

	artifacts, err := s.orch.Batch(ctx, units, onProgress)
	if err != nil {
		return "", err
	}

	master, err := assemble.Merge(artifacts)
	if err != nil {
		return "", err
	}

	name := s.proj.Name
	if name == "" {
		name = s.proj.ID
	}
	masterPath := filepath.Join(s.outDir, fmt.Sprintf("%s_master.wav", sanitize(name)))
	if err := os.WriteFile(masterPath, master, 0644); err != nil {
		return "", fmt.Errorf("failed to write master: %w", err)
	}

	// Keep the per-segment renders for replay alongside the master.
	updated := *s.proj
	for _, art := range artifacts {
		seg := updated.Segments[art.SegmentIndex]
		path, werr := s.writeRender("final", seg.Content, seg.SelectedVoice, []synth.Artifact{art})
		if werr != nil {
			return "", werr
		}
		updated, err = updated.UpdateSegment(art.SegmentIndex, func(sg *project.Segment) { sg.FinalPath = path })
		if err != nil {
			return "", err
		}
	}
	s.proj = &updated
	s.stage = project.StageCompleted

	s.pushHistory(Render{
		ID:        s.proj.ID,
		VoiceName: "master",
		DialectID: s.proj.DialectID,
		Path:      masterPath,
		Timestamp: time.Now(),
	})

	s.log.WithFields(logrus.Fields{
		"segments": len(artifacts),
		"path":     masterPath,
	}).Info("master produced")
	return masterPath, nil
}

func (s *Studio) pushHistory(r Render) {
	s.history = append([]Render{r}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
}

// writeRender caches one assembled artifact on disk, keyed by content and
// voice so identical renders reuse the same file.
func (s *Studio) writeRender(kind, text, voiceName string, arts []synth.Artifact) (string, error) {
	data, err := assemble.Merge(arts)
	if err != nil {
		return "", err
	}
	key := md5Sum(text + voiceName)[:8]
	path := filepath.Join(s.outDir, fmt.Sprintf("%s_%s.wav", kind, key))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s render: %w", kind, err)
	}
	return path, nil
}

// Play decodes a rendered WAV and plays it through the default speaker,
// blocking until playback finishes.
func (s *Studio) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open render: %w", err)
	}
	streamer, format, err := beepwav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode render: %w", err)
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	done := make(chan bool)
	speaker.Play(beep.Seq(streamer, beep.Callback(func() { done <- true })))
	<-done
	return nil
}

func md5Sum(s string) string {
	h := md5.New()
	io.WriteString(h, s)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ' ', '/', '\\', ':':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// defaultOutDirectory resolves where renders land when not configured.
func defaultOutDirectory() string {
	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "rawistudio")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".rawistudio", "out")
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, "out")
	}
	return "out"
}
