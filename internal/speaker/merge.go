// Package speaker annotates cues with diarization results. A cue fully
// covered by one speaker segment gets that speaker; a cue spanning a
// speaker change is split at the boundary, with its text apportioned by
// character count. The apportioning is a heuristic and is always flagged
// as approximate.
package speaker

import (
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

// Merge applies speaker segments to the timeline. Segments are expected
// non-overlapping and ordered. A cue with no overlapping segment keeps an
// unset speaker; that is not an error.
func Merge(t timeline.Timeline, segments []timeline.SpeakerSegment) timeline.Timeline {
	norm := t.Normalize()
	out := timeline.Timeline{Warnings: norm.Warnings}
	for _, cue := range norm.Cues {
		out.Cues = append(out.Cues, annotate(&out, cue, segments)...)
	}
	return out.Normalize()
}

// annotate resolves one cue against the segments, splitting recursively
// while the cue still spans a speaker change.
func annotate(out *timeline.Timeline, cue timeline.Cue, segments []timeline.SpeakerSegment) []timeline.Cue {
	overlapping := overlappingSegments(cue, segments)
	switch len(overlapping) {
	case 0:
		return []timeline.Cue{cue}
	case 1:
		cue.Speaker = overlapping[0].Speaker
		return []timeline.Cue{cue}
	}

	boundary := overlapping[0].EndMS
	if boundary <= cue.StartMS || boundary >= cue.EndMS {
		// Segments touch the cue but the change point is outside it;
		// attribute the cue to the speaker covering most of it.
		cue.Speaker = dominantSpeaker(cue, overlapping)
		return []timeline.Cue{cue}
	}

	first, second := splitCueAt(out, cue, boundary)
	first.Speaker = overlapping[0].Speaker
	return append([]timeline.Cue{first}, annotate(out, second, segments)...)
}

func overlappingSegments(cue timeline.Cue, segments []timeline.SpeakerSegment) []timeline.SpeakerSegment {
	var out []timeline.SpeakerSegment
	for _, s := range segments {
		if s.StartMS < cue.EndMS && s.EndMS > cue.StartMS {
			out = append(out, s)
		}
	}
	return out
}

func dominantSpeaker(cue timeline.Cue, segments []timeline.SpeakerSegment) timeline.SpeakerID {
	var best timeline.SpeakerID
	var bestMS int64
	for _, s := range segments {
		start, end := s.StartMS, s.EndMS
		if cue.StartMS > start {
			start = cue.StartMS
		}
		if cue.EndMS < end {
			end = cue.EndMS
		}
		if d := end - start; d > bestMS {
			bestMS = d
			best = s.Speaker
		}
	}
	return best
}

// splitCueAt divides a cue at the boundary timestamp. Lines are apportioned
// by character count against the time fraction; a single line is split at
// the word boundary nearest the proportional position, and duplicated
// verbatim only when it has no word boundary at all.
func splitCueAt(out *timeline.Timeline, cue timeline.Cue, boundary int64) (timeline.Cue, timeline.Cue) {
	fraction := float64(boundary-cue.StartMS) / float64(cue.EndMS-cue.StartMS)

	first := cue.Clone()
	second := cue.Clone()
	first.EndMS = boundary
	second.StartMS = boundary
	first.Lines, second.Lines = splitLines(cue.Lines, fraction)
	out.Warn(timeline.WarnSpeakerSplit, cue.Index, "split at speaker change %dms; text apportioned by character count", boundary)
	return first, second
}

func splitLines(lines []string, fraction float64) ([]string, []string) {
	if len(lines) == 1 {
		head, tail, ok := splitLineProportionally(lines[0], fraction)
		if !ok {
			return []string{lines[0]}, []string{lines[0]}
		}
		return []string{head}, []string{tail}
	}

	total := 0
	for _, l := range lines {
		total += utf8.RuneCountInString(l)
	}
	target := int(fraction * float64(total))
	var head, tail []string
	seen := 0
	for _, l := range lines {
		mid := seen + utf8.RuneCountInString(l)/2
		if mid <= target {
			head = append(head, l)
		} else {
			tail = append(tail, l)
		}
		seen += utf8.RuneCountInString(l)
	}
	if len(head) == 0 {
		head, tail = tail[:1], tail[1:]
	}
	if len(tail) == 0 {
		head, tail = head[:len(head)-1], head[len(head)-1:]
	}
	return head, tail
}

// splitLineProportionally breaks a line at the word boundary nearest to
// fraction of its length.
func splitLineProportionally(line string, fraction float64) (string, string, bool) {
	runes := []rune(line)
	target := int(fraction * float64(len(runes)))
	best := -1
	for i, r := range runes {
		if r != ' ' {
			continue
		}
		if best < 0 || abs(i-target) < abs(best-target) {
			best = i
		}
	}
	if best < 0 {
		return "", "", false
	}
	head := strings.TrimSpace(string(runes[:best]))
	tail := strings.TrimSpace(string(runes[best:]))
	if head == "" || tail == "" {
		return "", "", false
	}
	return head, tail, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
