package project

import "testing"

func TestStageOrderAndNext(t *testing.T) {
	if StageNew.Index() != 0 || StageCompleted.Index() != 6 {
		t.Fatalf("unexpected stage positions: new=%d completed=%d", StageNew.Index(), StageCompleted.Index())
	}
	if Stage("broken").Index() != -1 {
		t.Fatal("expected -1 for unknown stage")
	}
	if StageNew.Next() != StageImport {
		t.Fatalf("expected import after new, got %s", StageNew.Next())
	}
	if StagePilot.Next() != StageProduction {
		t.Fatalf("expected production after pilot, got %s", StagePilot.Next())
	}
	if StageCompleted.Next() != StageCompleted {
		t.Fatal("completed must be terminal")
	}
}

func TestCanEnterScriptRequiresImportedText(t *testing.T) {
	p := New("test", "fusha")
	if err := p.CanEnter(StageScript); err == nil {
		t.Fatal("expected rejection without imported text")
	}

	p = p.SetContent("نص مستورد")
	if err := p.CanEnter(StageScript); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestCanEnterPilotRequiresSegmentText(t *testing.T) {
	p := New("test", "fusha")
	if err := p.CanEnter(StagePilot); err == nil {
		t.Fatal("expected rejection while every segment is empty")
	}

	p, err := p.UpdateSegment(0, func(s *Segment) { s.Content = "نص المقطع" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.CanEnter(StagePilot); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestCanEnterProductionRequiresEveryVoice(t *testing.T) {
	p := New("test", "fusha").SetContent("أولاً\nثانياً")
	p, err := p.SplitByParagraphs("جواد")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.CanEnter(StageProduction); err != nil {
		t.Fatalf("unexpected rejection with all voices set: %v", err)
	}

	p, err = p.UpdateSegment(1, func(s *Segment) { s.SelectedVoice = "" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.CanEnter(StageProduction); err == nil {
		t.Fatal("expected rejection when one segment has no voice")
	}
}

func TestCanEnterCompletedRequiresRenderedAudio(t *testing.T) {
	p := New("test", "fusha")
	if err := p.CanEnter(StageCompleted); err == nil {
		t.Fatal("expected rejection without rendered audio")
	}

	p, err := p.UpdateSegment(0, func(s *Segment) { s.FinalPath = "/tmp/seg1.wav" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.CanEnter(StageCompleted); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func TestCanEnterUnknownStage(t *testing.T) {
	p := New("test", "fusha")
	if err := p.CanEnter(Stage("mixing")); err == nil {
		t.Fatal("expected error for unknown stage")
	}
}
