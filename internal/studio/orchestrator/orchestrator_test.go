package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"rawistudio/internal/domain/voice"
	"rawistudio/internal/studio/synth"
)

func testUnits(n int) []Unit {
	units := make([]Unit, n)
	for i := range units {
		units[i] = Unit{
			Index:    i,
			Text:     fmt.Sprintf("المقطع رقم %d", i+1),
			Profile:  voice.Profile{ID: "fus_rawi", Name: "جواد", Gender: voice.Male},
			Controls: synth.DefaultControls(),
		}
	}
	return units
}

func TestBatchProgressSequence(t *testing.T) {
	cases := []struct {
		units int
		want  []int
	}{
		{units: 1, want: []int{100}},
		{units: 3, want: []int{33, 67, 100}},
		{units: 6, want: []int{17, 33, 50, 67, 83, 100}},
	}

	for _, tc := range cases {
		orch := New(synth.NewMockSynthesizer())

		var got []int
		_, err := orch.Batch(context.Background(), testUnits(tc.units), func(p int) {
			got = append(got, p)
		})
		if err != nil {
			t.Fatalf("%d units: unexpected error: %v", tc.units, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%d units: expected %d progress reports, got %d", tc.units, len(tc.want), len(got))
		}
		for i, w := range tc.want {
			if got[i] != w {
				t.Fatalf("%d units: progress step %d: expected %d, got %d", tc.units, i, w, got[i])
			}
		}
	}
}

func TestBatchTagsArtifactsWithUnitIndex(t *testing.T) {
	orch := New(synth.NewMockSynthesizer())
	units := testUnits(4)
	// Non-contiguous indices must survive into the artifacts.
	units[2].Index = 9

	arts, err := orch.Batch(context.Background(), units, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(arts) != 4 {
		t.Fatalf("expected 4 artifacts, got %d", len(arts))
	}
	for i, a := range arts {
		if a.SegmentIndex != units[i].Index {
			t.Fatalf("artifact %d: expected index %d, got %d", i, units[i].Index, a.SegmentIndex)
		}
		if a.Samples() == 0 {
			t.Fatalf("artifact %d: empty audio", i)
		}
	}
}

func TestBatchEmptyInput(t *testing.T) {
	orch := New(synth.NewMockSynthesizer())
	if _, err := orch.Batch(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for empty batch")
	}
}

func TestBatchFailureDiscardsEverything(t *testing.T) {
	boom := errors.New("provider rejected request")
	mock := synth.NewMockSynthesizer()
	mock.FailOn = func(call int) error {
		if call == 3 {
			return boom
		}
		return nil
	}
	orch := New(mock)

	var reports []int
	arts, err := orch.Batch(context.Background(), testUnits(5), func(p int) {
		reports = append(reports, p)
	})
	if err == nil {
		t.Fatal("expected batch error")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
	if arts != nil {
		t.Fatalf("expected no artifacts after failure, got %d", len(arts))
	}
	if mock.Calls() != 3 {
		t.Fatalf("expected abort right after the failing unit, got %d calls", mock.Calls())
	}
	for _, p := range reports {
		if p == 100 {
			t.Fatal("progress reached 100 on a failed batch")
		}
	}
}

func TestPilotFailureLeavesOthersUntouched(t *testing.T) {
	mock := synth.NewMockSynthesizer()
	mock.FailOn = func(call int) error {
		if call == 1 {
			return errors.New("transient outage")
		}
		return nil
	}
	orch := New(mock)
	unit := testUnits(1)[0]
	unit.Index = 7

	if _, err := orch.Pilot(context.Background(), unit); err == nil {
		t.Fatal("expected pilot error on first call")
	}

	art, err := orch.Pilot(context.Background(), unit)
	if err != nil {
		t.Fatalf("second pilot failed: %v", err)
	}
	if art.SegmentIndex != 7 {
		t.Fatalf("expected pilot artifact tagged with unit index 7, got %d", art.SegmentIndex)
	}
}
