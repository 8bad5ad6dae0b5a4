// Package timing repairs cue timing: overlaps between adjacent cues are
// trimmed or merged away, optional word-level timings snap cue boundaries
// to the audio, and a minimum display duration is enforced. The whole
// reconciliation is a single forward pass; every adjustment shortens or
// merges, so no prior overlap can be re-introduced.
package timing

import (
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

// Options tunes the reconciler. Zero values fall back to the defaults.
type Options struct {
	// GapMS is the minimum gap left between adjacent cues when trimming
	// an overlap. Default 1.
	GapMS int64
	// MinDurationMS is the display-duration floor; shorter cues are
	// extended forward, never past the next cue. Default 700.
	MinDurationMS int64
}

func (o Options) withDefaults() Options {
	if o.GapMS <= 0 {
		o.GapMS = 1
	}
	if o.MinDurationMS <= 0 {
		o.MinDurationMS = 700
	}
	return o
}

// Reconcile returns a timeline where no two cues overlap. When word timings
// are supplied, cue boundaries are first snapped to the matching words;
// cues with no match keep their original timing and are flagged.
func Reconcile(t timeline.Timeline, words []timeline.WordTiming, opts Options) timeline.Timeline {
	opts = opts.withDefaults()
	out := t.Normalize()
	if len(words) > 0 {
		out = snapToWords(out, words)
		out = out.Normalize()
	}
	out = resolveOverlaps(out, opts)
	out = enforceMinDuration(out, opts)
	return out
}

var wordStripRe = regexp.MustCompile(`[.,!?;:"'\-\[\]()]`)

func normalizeWord(w string) string {
	return strings.ToLower(wordStripRe.ReplaceAllString(w, ""))
}

func cueWords(cue timeline.Cue) []string {
	var out []string
	for _, line := range cue.Lines {
		for _, w := range strings.Fields(line) {
			if n := normalizeWord(w); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

// snapToWords aligns each cue to the word-timing sequence by position: a
// cursor advances monotonically through the words, a cue matches where its
// first word anchors a long enough consecutive run (more than two words, or
// the whole cue). Matched cues snap to the first/last matched word's
// boundaries.
func snapToWords(t timeline.Timeline, words []timeline.WordTiming) timeline.Timeline {
	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = normalizeWord(w.Word)
	}

	cursor := 0
	for ci := range t.Cues {
		cue := &t.Cues[ci]
		cw := cueWords(*cue)
		if len(cw) == 0 {
			continue
		}
		matched := false
		for i := cursor; i < len(words); i++ {
			if normalized[i] != cw[0] {
				continue
			}
			run := 1
			for j := 1; j < len(cw) && i+j < len(words); j++ {
				if normalized[i+j] != cw[j] {
					break
				}
				run++
			}
			if run <= 2 && run != len(cw) {
				continue
			}
			cue.StartMS = words[i].StartMS
			cue.EndMS = words[i+run-1].EndMS
			cursor = i + run
			matched = true
			break
		}
		if !matched {
			t.Warn(timeline.WarnCueUnmatched, cue.Index, "no word timings matched; timing unchanged")
		}
	}
	return t
}

// resolveOverlaps trims each cue back to gapMS before its successor; when
// trimming would leave a non-positive duration, the successor's lines are
// absorbed (up to the two-line limit) and the successor dropped.
func resolveOverlaps(t timeline.Timeline, opts Options) timeline.Timeline {
	out := timeline.Timeline{Warnings: t.Warnings}
	for _, cue := range t.Cues {
		out.Cues = append(out.Cues, cue)
		for len(out.Cues) >= 2 {
			prev := &out.Cues[len(out.Cues)-2]
			cur := out.Cues[len(out.Cues)-1]
			if prev.EndMS <= cur.StartMS {
				break
			}
			trimmed := cur.StartMS - opts.GapMS
			if trimmed > prev.StartMS {
				prev.EndMS = trimmed
				break
			}
			// Merge: the earlier cue absorbs the later one's text.
			for _, line := range cur.Lines {
				if len(prev.Lines) >= timeline.MaxLines {
					break
				}
				prev.Lines = append(prev.Lines, line)
			}
			if cur.EndMS > prev.EndMS {
				prev.EndMS = cur.EndMS
			}
			out.Cues = out.Cues[:len(out.Cues)-1]
			out.Warn(timeline.WarnOverlapMerged, cur.Index, "absorbed into previous cue")
		}
	}
	for i := range out.Cues {
		out.Cues[i].Index = i + 1
	}
	return out
}

// enforceMinDuration extends short cues forward up to the next cue's start
// minus the gap, never past it.
func enforceMinDuration(t timeline.Timeline, opts Options) timeline.Timeline {
	for i := range t.Cues {
		cue := &t.Cues[i]
		if cue.DurationMS() >= opts.MinDurationMS {
			continue
		}
		target := cue.StartMS + opts.MinDurationMS
		if i+1 < len(t.Cues) {
			if limit := t.Cues[i+1].StartMS - opts.GapMS; target > limit {
				target = limit
			}
		}
		if target > cue.EndMS {
			cue.EndMS = target
		}
	}
	return t
}
