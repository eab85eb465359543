package studio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rawistudio/internal/domain/project"
	"rawistudio/internal/studio/script"
	"rawistudio/internal/studio/synth"
)

func newTestStudio(t *testing.T) (*Studio, *synth.MockSynthesizer) {
	t.Helper()
	mock := synth.NewMockSynthesizer()
	return NewWith(mock, script.NewHeuristicAnalyzer(), t.TempDir()), mock
}

// interceptSynth runs a hook before delegating, so tests can poke the studio
// while a batch is in flight.
type interceptSynth struct {
	inner synth.Synthesizer
	hook  func()
}

func (i *interceptSynth) Synthesize(ctx context.Context, req synth.Request) (synth.Artifact, error) {
	if i.hook != nil {
		i.hook()
	}
	return i.inner.Synthesize(ctx, req)
}

const bookText = "في قرية صغيرة على ضفاف النيل عاش صياد عجوز\nكان يخرج كل فجر إلى النهر بقاربه الخشبي\nوفي مساء يوم عاصف وجد في شباكه صندوقاً غريباً"

func produceBook(t *testing.T, app *Studio) {
	t.Helper()
	app.NewProject("حكاية الصياد", "fusha")
	if err := app.ImportText(bookText); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if err := app.Advance(project.StageImport); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if err := app.SplitByParagraph(); err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if err := app.Advance(project.StageDistribute); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
}

func TestGenerateMasterEndToEnd(t *testing.T) {
	app, mock := newTestStudio(t)
	produceBook(t, app)

	if len(app.Project().Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(app.Project().Segments))
	}

	totalSamples := 0
	for _, seg := range app.Project().Segments {
		totalSamples += len([]rune(seg.Content)) * mock.SamplesPerRune
	}

	var last int
	path, err := app.GenerateMaster(context.Background(), func(p int) { last = p })
	if err != nil {
		t.Fatalf("master production failed: %v", err)
	}
	if last != 100 {
		t.Fatalf("expected final progress 100, got %d", last)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("master not written: %v", err)
	}
	if info.Size() != int64(44+2*totalSamples) {
		t.Fatalf("expected master of %d bytes, got %d", 44+2*totalSamples, info.Size())
	}

	if app.Stage() != project.StageCompleted {
		t.Fatalf("expected completed stage, got %s", app.Stage())
	}
	if app.Project().Status != project.StatusInProgress {
		t.Fatalf("expected in-progress status, got %q", app.Project().Status)
	}
	for i, seg := range app.Project().Segments {
		if seg.FinalPath == "" {
			t.Fatalf("segment %d has no final render", i)
		}
		if _, err := os.Stat(seg.FinalPath); err != nil {
			t.Fatalf("segment %d render missing: %v", i, err)
		}
	}
	if len(app.History()) != 1 || app.History()[0].Path != path {
		t.Fatalf("expected master in history, got %+v", app.History())
	}
	if app.Locked() {
		t.Fatal("studio still locked after production")
	}
}

func TestGenerateMasterRejectedWithoutVoices(t *testing.T) {
	app, mock := newTestStudio(t)
	produceBook(t, app)

	if err := app.UpdateSegment(1, func(s *project.Segment) { s.SelectedVoice = "" }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := app.GenerateMaster(context.Background(), nil); err == nil {
		t.Fatal("expected rejection with an unvoiced segment")
	}
	if mock.Calls() != 0 {
		t.Fatalf("expected rejection before any synthesis, got %d calls", mock.Calls())
	}
}

func TestGenerateMasterFailureDiscardsPartials(t *testing.T) {
	app, mock := newTestStudio(t)
	produceBook(t, app)

	mock.FailOn = func(call int) error {
		if call == 2 {
			return errors.New("quota exceeded")
		}
		return nil
	}

	var reports []int
	_, err := app.GenerateMaster(context.Background(), func(p int) { reports = append(reports, p) })
	if err == nil {
		t.Fatal("expected batch failure")
	}
	for _, p := range reports {
		if p == 100 {
			t.Fatal("progress reached 100 on a failed batch")
		}
	}

	entries, err := os.ReadDir(app.outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_master.wav") {
			t.Fatalf("master written despite failure: %s", e.Name())
		}
	}
	for i, seg := range app.Project().Segments {
		if seg.FinalPath != "" {
			t.Fatalf("segment %d kept a partial render: %s", i, seg.FinalPath)
		}
	}
	if len(app.History()) != 0 {
		t.Fatal("failed batch must not enter history")
	}
	if app.Locked() {
		t.Fatal("studio still locked after failed batch")
	}
}

func TestMutationsDroppedWhileBatchInFlight(t *testing.T) {
	mock := synth.NewMockSynthesizer()
	wrapped := &interceptSynth{inner: mock}
	app := NewWith(wrapped, script.NewHeuristicAnalyzer(), t.TempDir())
	produceBook(t, app)

	originalContent := app.Project().Content
	lockedDuringBatch := false
	wrapped.hook = func() {
		lockedDuringBatch = app.Locked()
		if err := app.ImportText("نص مخرب"); err != nil {
			t.Errorf("locked mutation must be a silent no-op, got %v", err)
		}
		app.StartOver()
	}

	if _, err := app.GenerateMaster(context.Background(), nil); err != nil {
		t.Fatalf("master production failed: %v", err)
	}
	if !lockedDuringBatch {
		t.Fatal("studio was not locked during the batch")
	}
	if app.Project() == nil {
		t.Fatal("start over went through while locked")
	}
	if app.Project().Content != originalContent {
		t.Fatalf("mid-batch edit leaked into the project: %q", app.Project().Content)
	}
}

func TestGeneratePilotTruncatesToPilotWindow(t *testing.T) {
	app, mock := newTestStudio(t)
	app.NewProject("تجربة", "fusha")
	longText := strings.Repeat("م", 150)
	if err := app.ImportText(longText); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if err := app.SplitByParagraph(); err != nil {
		t.Fatalf("split failed: %v", err)
	}

	seg := app.Project().Segments[0]
	path, err := app.GeneratePilot(context.Background(), seg.ID)
	if err != nil {
		t.Fatalf("pilot failed: %v", err)
	}

	if got := len([]rune(mock.Requests[0].Text)); got != pilotRunes {
		t.Fatalf("expected pilot text of %d runes, got %d", pilotRunes, got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("pilot render missing: %v", err)
	}
	if app.Project().Segments[0].PilotPath != path {
		t.Fatal("pilot path not recorded on the segment")
	}
	if app.Project().Segments[0].FinalPath != "" {
		t.Fatal("pilot must not produce a final render")
	}
}

func TestGeneratePilotFailureIsIsolated(t *testing.T) {
	app, mock := newTestStudio(t)
	produceBook(t, app)

	mock.FailOn = func(call int) error {
		if call == 1 {
			return errors.New("transient outage")
		}
		return nil
	}

	segID := app.Project().Segments[0].ID
	if _, err := app.GeneratePilot(context.Background(), segID); err == nil {
		t.Fatal("expected pilot failure")
	}
	if app.Project().Segments[0].PilotPath != "" {
		t.Fatal("failed pilot must not record a path")
	}

	if _, err := app.GeneratePilot(context.Background(), segID); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if app.Project().Segments[0].PilotPath == "" {
		t.Fatal("successful retry must record a path")
	}
}

func TestAutoDistributeKeepsRolesOnOneVoice(t *testing.T) {
	app, _ := newTestStudio(t)
	app.NewProject("حوار", "fusha")
	text := "خرج الصياد من بيته\n- إلى أين يا أبي؟\nالتفت إليه مبتسماً\n- سأعود قبل الغروب"
	if err := app.ImportText(text); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if err := app.AutoDistribute(context.Background()); err != nil {
		t.Fatalf("distribution failed: %v", err)
	}

	segs := app.Project().Segments
	if len(segs) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segs))
	}
	if segs[0].SelectedVoice != segs[2].SelectedVoice {
		t.Fatalf("narrator voice drifted: %q vs %q", segs[0].SelectedVoice, segs[2].SelectedVoice)
	}
	for i, seg := range segs {
		if seg.SelectedVoice == "" {
			t.Fatalf("segment %d left unvoiced", i)
		}
	}
}

func TestPodcastPipeline(t *testing.T) {
	app, _ := newTestStudio(t)
	text := "أهلاً بكم في حلقة جديدة\nسعيد بوجودي معكم اليوم\nحدثنا عن مشروعك الأخير\nبدأ كل شيء بفكرة بسيطة"

	if err := app.GeneratePodcastScript(context.Background(), text, "egyptian"); err != nil {
		t.Fatalf("script generation failed: %v", err)
	}

	session := app.Podcast()
	if session.Mode != DistributionSmart {
		t.Fatalf("expected smart mode by default, got %s", session.Mode)
	}
	if len(session.Script.Turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(session.Script.Turns))
	}
	// The host hints at podcast voices; the guest has no female podcast
	// voice in this dialect and falls back to the gender pool.
	if session.VoiceMap["host"] != "egy_hassan" {
		t.Fatalf("unexpected host voice %q", session.VoiceMap["host"])
	}
	if session.VoiceMap["guest"] != "egy_nour" {
		t.Fatalf("unexpected guest voice %q", session.VoiceMap["guest"])
	}

	path, err := app.GeneratePodcastAudio(context.Background(), nil)
	if err != nil {
		t.Fatalf("podcast production failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("podcast master missing: %v", err)
	}
	if session.MasterPath != path {
		t.Fatal("master path not recorded on the session")
	}
	if len(app.History()) != 1 {
		t.Fatalf("expected podcast in history, got %d entries", len(app.History()))
	}
	if filepath.Dir(path) != app.outDir {
		t.Fatalf("podcast master written outside the output dir: %s", path)
	}
}

func TestManualThenSmartDistribution(t *testing.T) {
	app, _ := newTestStudio(t)
	if err := app.GeneratePodcastScript(context.Background(), "فقرة\nفقرة أخرى", "egyptian"); err != nil {
		t.Fatalf("script generation failed: %v", err)
	}

	if err := app.SetPodcastDistribution(DistributionManual); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := app.AssignSpeakerVoice("host", "egy_fouad"); err != nil {
		t.Fatalf("manual assignment failed: %v", err)
	}
	if app.Podcast().VoiceMap["host"] != "egy_fouad" {
		t.Fatal("manual assignment lost")
	}
	if err := app.AssignSpeakerVoice("host", "no_such_voice"); err == nil {
		t.Fatal("expected rejection of unknown voice id")
	}

	// Switching back to smart recomputes the map from scratch.
	if err := app.SetPodcastDistribution(DistributionSmart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Podcast().VoiceMap["host"] != "egy_hassan" {
		t.Fatalf("smart mode did not recompute, host still %q", app.Podcast().VoiceMap["host"])
	}
}

func TestPodcastAudioRequiresCompleteMapping(t *testing.T) {
	app, mock := newTestStudio(t)
	if err := app.GeneratePodcastScript(context.Background(), "فقرة\nفقرة أخرى", "fusha"); err != nil {
		t.Fatalf("script generation failed: %v", err)
	}
	delete(app.Podcast().VoiceMap, "guest")

	if _, err := app.GeneratePodcastAudio(context.Background(), nil); err == nil {
		t.Fatal("expected rejection with an unmapped speaker")
	}
	if mock.Calls() != 0 {
		t.Fatalf("expected rejection before any synthesis, got %d calls", mock.Calls())
	}
}

func TestStartOverResetsSession(t *testing.T) {
	app, _ := newTestStudio(t)
	produceBook(t, app)

	app.StartOver()
	if app.Project() != nil {
		t.Fatal("expected no project after start over")
	}
	if app.Stage() != project.StageNew {
		t.Fatalf("expected new stage, got %s", app.Stage())
	}
}
