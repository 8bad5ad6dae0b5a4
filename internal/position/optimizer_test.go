package position

import (
	"testing"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

func cueAt(start, end int64, p timeline.Placement) timeline.Cue {
	return timeline.Cue{
		StartMS:  start,
		EndMS:    end,
		Lines:    []string{"text"},
		Position: timeline.Position{Placement: p, LinePct: -1, ColumnPct: -1},
	}
}

func TestDefaultPlacementIsBottom(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(0, 1000, timeline.PlaceDefault)}}
	got := Optimize(in, nil)
	if got.Cues[0].Position.Placement != timeline.PlaceBottom {
		t.Errorf("Placement = %v, want bottom", got.Cues[0].Position.Placement)
	}
}

func TestBottomOcclusionMovesCueToTop(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(2000, 3000, timeline.PlaceDefault)}}
	regions := []timeline.TextRegion{
		{StartMS: 1000, EndMS: 4000, Band: timeline.BandBottomThird},
	}

	got := Optimize(in, regions)

	if got.Cues[0].Position.Placement != timeline.PlaceTop {
		t.Errorf("Placement = %v, want top", got.Cues[0].Position.Placement)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", got.Warnings)
	}
}

func TestTopOcclusionDemotesTopCue(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(0, 1000, timeline.PlaceTop)}}
	regions := []timeline.TextRegion{
		{StartMS: 0, EndMS: 1000, Band: timeline.BandTopThird},
	}

	got := Optimize(in, regions)

	if got.Cues[0].Position.Placement != timeline.PlaceBottom {
		t.Errorf("Placement = %v, want bottom", got.Cues[0].Position.Placement)
	}
}

func TestTopOcclusionLeavesBottomCueAlone(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(0, 1000, timeline.PlaceDefault)}}
	regions := []timeline.TextRegion{
		{StartMS: 0, EndMS: 1000, Band: timeline.BandTopThird},
	}

	got := Optimize(in, regions)

	if got.Cues[0].Position.Placement != timeline.PlaceBottom {
		t.Errorf("Placement = %v, want bottom", got.Cues[0].Position.Placement)
	}
}

func TestMiddleOcclusionOnlyWarns(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(0, 1000, timeline.PlaceDefault)}}
	regions := []timeline.TextRegion{
		{StartMS: 0, EndMS: 1000, Band: timeline.BandMiddleThird},
	}

	got := Optimize(in, regions)

	if got.Cues[0].Position.Placement != timeline.PlaceBottom {
		t.Errorf("Placement = %v, want bottom", got.Cues[0].Position.Placement)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Code != timeline.WarnMiddleOcclusion {
		t.Errorf("Warnings = %v, want one middle-occlusion", got.Warnings)
	}
}

func TestConflictResolvedByOccludedTime(t *testing.T) {
	// 800ms of bottom occlusion vs 200ms of top: top wins the cue.
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(0, 1000, timeline.PlaceDefault)}}
	regions := []timeline.TextRegion{
		{StartMS: 0, EndMS: 800, Band: timeline.BandBottomThird},
		{StartMS: 800, EndMS: 1000, Band: timeline.BandTopThird},
	}

	got := Optimize(in, regions)

	if got.Cues[0].Position.Placement != timeline.PlaceTop {
		t.Errorf("Placement = %v, want top", got.Cues[0].Position.Placement)
	}
}

func TestEqualOcclusionTiesGoBottom(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(0, 1000, timeline.PlaceDefault)}}
	regions := []timeline.TextRegion{
		{StartMS: 0, EndMS: 500, Band: timeline.BandBottomThird},
		{StartMS: 500, EndMS: 1000, Band: timeline.BandTopThird},
	}

	got := Optimize(in, regions)

	if got.Cues[0].Position.Placement != timeline.PlaceBottom {
		t.Errorf("Placement = %v, want bottom", got.Cues[0].Position.Placement)
	}
}

func TestEqualOcclusionDemotesTopCue(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(0, 1000, timeline.PlaceTop)}}
	regions := []timeline.TextRegion{
		{StartMS: 0, EndMS: 500, Band: timeline.BandBottomThird},
		{StartMS: 500, EndMS: 1000, Band: timeline.BandTopThird},
	}

	got := Optimize(in, regions)

	if got.Cues[0].Position.Placement != timeline.PlaceBottom {
		t.Errorf("Placement = %v, want bottom", got.Cues[0].Position.Placement)
	}
}

func TestUnoccludedTopCueStaysTop(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(0, 1000, timeline.PlaceTop)}}
	regions := []timeline.TextRegion{
		{StartMS: 5000, EndMS: 6000, Band: timeline.BandTopThird},
	}

	got := Optimize(in, regions)

	if got.Cues[0].Position.Placement != timeline.PlaceTop {
		t.Errorf("Placement = %v, want top", got.Cues[0].Position.Placement)
	}
}

func TestNonOverlappingRegionIgnored(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{cueAt(0, 1000, timeline.PlaceDefault)}}
	regions := []timeline.TextRegion{
		{StartMS: 5000, EndMS: 6000, Band: timeline.BandBottomThird},
	}

	got := Optimize(in, regions)

	if got.Cues[0].Position.Placement != timeline.PlaceBottom {
		t.Errorf("Placement = %v, want bottom", got.Cues[0].Position.Placement)
	}
}
