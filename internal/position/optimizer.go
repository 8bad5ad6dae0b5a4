// Package position decides where each cue is rendered. The default policy
// anchors everything to the bottom; externally detected text regions move
// cues out of the way of on-screen text.
package position

import "github.com/nguyentantai21042004/subcleanser/internal/timeline"

// Optimize applies the placement policy. Cues with no explicit position get
// bottom. With text regions supplied, a cue occluded mostly in the bottom
// third moves to the top, a top-anchored cue occluded in the top third at
// least as much falls back to the bottom, and middle-third occlusion is only
// recorded (both fallback anchors stay clear). Conflicting guidance is
// resolved by whichever choice clears the most occluded time; ties resolve
// to bottom.
func Optimize(t timeline.Timeline, regions []timeline.TextRegion) timeline.Timeline {
	out := t.Normalize()
	for i := range out.Cues {
		cue := &out.Cues[i]
		if cue.Position.Placement == timeline.PlaceDefault {
			cue.Position.Placement = timeline.PlaceBottom
		}
		if len(regions) == 0 {
			continue
		}

		var topMS, middleMS, bottomMS int64
		for _, r := range regions {
			o := overlapMS(cue.StartMS, cue.EndMS, r.StartMS, r.EndMS)
			if o <= 0 {
				continue
			}
			switch r.Band {
			case timeline.BandTopThird:
				topMS += o
			case timeline.BandMiddleThird:
				middleMS += o
			case timeline.BandBottomThird:
				bottomMS += o
			}
		}

		if middleMS > 0 {
			out.Warn(timeline.WarnMiddleOcclusion, cue.Index, "on-screen text in middle third for %dms; position unchanged", middleMS)
		}
		switch {
		case bottomMS > topMS:
			cue.Position.Placement = timeline.PlaceTop
		case topMS > 0 && cue.Position.Placement == timeline.PlaceTop:
			// Covers both more top occlusion and an exact tie; ties
			// resolve to bottom.
			cue.Position.Placement = timeline.PlaceBottom
		}
	}
	return out
}

// overlapMS returns the length of the intersection of [aStart, aEnd) and
// [bStart, bEnd).
func overlapMS(aStart, aEnd, bStart, bEnd int64) int64 {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	return end - start
}
