// Package timeline holds the canonical in-memory representation of a
// subtitle document: an ordered sequence of timed text cues plus the
// warnings accumulated while repairing it. Every processing stage takes a
// Timeline by value and returns a new one; nothing here touches the
// filesystem or the network.
package timeline

import (
	"fmt"
	"sort"
)

// MaxLines is the display line limit per cue.
const MaxLines = 2

// DuplicateGapMS is the largest gap between two cues with identical text
// that still counts as a duplicate pair.
const DuplicateGapMS = 50

// Placement is the coarse vertical anchor of a cue.
type Placement int

const (
	PlaceDefault Placement = iota
	PlaceTop
	PlaceBottom
	PlaceCenter
)

func (p Placement) String() string {
	switch p {
	case PlaceTop:
		return "top"
	case PlaceBottom:
		return "bottom"
	case PlaceCenter:
		return "center"
	default:
		return "default"
	}
}

// Position describes where a cue is rendered. LinePct and ColumnPct are
// percentages of the viewport (VTT-style); -1 means unset and the placement
// anchor alone decides.
type Position struct {
	Placement Placement
	LinePct   int
	ColumnPct int
}

// DefaultPosition returns a position with no explicit offsets.
func DefaultPosition() Position {
	return Position{Placement: PlaceDefault, LinePct: -1, ColumnPct: -1}
}

// SpeakerID identifies a speaker. It is opaque: compared for equality,
// never parsed, so any diarization backend's id scheme works.
type SpeakerID string

// Cue is one timed unit of displayed text.
type Cue struct {
	Index    int // 1-based, reassigned on serialize; not semantically meaningful
	StartMS  int64
	EndMS    int64
	Lines    []string
	Speaker  SpeakerID
	Position Position
	Style    map[string]string // format-specific overrides, carried opaquely
}

// DurationMS returns the displayed duration of the cue.
func (c Cue) DurationMS() int64 {
	return c.EndMS - c.StartMS
}

// SameLines reports whether both cues carry byte-identical text lines.
func (c Cue) SameLines(o Cue) bool {
	if len(c.Lines) != len(o.Lines) {
		return false
	}
	for i := range c.Lines {
		if c.Lines[i] != o.Lines[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the cue.
func (c Cue) Clone() Cue {
	out := c
	out.Lines = append([]string(nil), c.Lines...)
	if c.Style != nil {
		out.Style = make(map[string]string, len(c.Style))
		for k, v := range c.Style {
			out.Style[k] = v
		}
	}
	return out
}

// WarningCode classifies a repair the pipeline performed (or declined to
// perform) without failing the whole operation.
type WarningCode string

const (
	WarnCueDropped      WarningCode = "cue-dropped"
	WarnDuplicate       WarningCode = "duplicate-removed"
	WarnOverlapMerged   WarningCode = "overlap-merged"
	WarnSpeakerSplit    WarningCode = "speaker-split-approximated"
	WarnCueUnmatched    WarningCode = "cue-unmatched"
	WarnMiddleOcclusion WarningCode = "middle-occlusion"
)

// Warning records one non-fatal repair. CueIndex refers to the cue's index
// at the time the warning was emitted.
type Warning struct {
	Code     WarningCode
	CueIndex int
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("cue %d: %s: %s", w.CueIndex, w.Code, w.Message)
}

// Timeline is the ordered cue sequence for one subtitle document.
type Timeline struct {
	Cues     []Cue
	Warnings []Warning
}

// Warn appends a warning to the timeline.
func (t *Timeline) Warn(code WarningCode, cueIndex int, format string, args ...interface{}) {
	t.Warnings = append(t.Warnings, Warning{
		Code:     code,
		CueIndex: cueIndex,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Clone returns a deep copy of the timeline.
func (t Timeline) Clone() Timeline {
	out := Timeline{
		Cues:     make([]Cue, 0, len(t.Cues)),
		Warnings: append([]Warning(nil), t.Warnings...),
	}
	for _, c := range t.Cues {
		out.Cues = append(out.Cues, c.Clone())
	}
	return out
}

// Normalize enforces the structural invariants every stage relies on:
// cues with non-positive duration are dropped with a warning, the rest are
// stable-sorted by start time (ties keep input order), and indices are
// renumbered from 1.
func (t Timeline) Normalize() Timeline {
	out := Timeline{Warnings: t.Warnings}
	for _, c := range t.Cues {
		if c.StartMS >= c.EndMS {
			out.Warn(WarnCueDropped, c.Index, "non-positive duration %dms", c.DurationMS())
			continue
		}
		out.Cues = append(out.Cues, c)
	}
	sort.SliceStable(out.Cues, func(i, j int) bool {
		return out.Cues[i].StartMS < out.Cues[j].StartMS
	})
	for i := range out.Cues {
		out.Cues[i].Index = i + 1
	}
	return out
}

// WordTiming is one externally supplied word with its boundaries, used by
// the timing reconciler. Sequences are monotonically non-decreasing in time.
type WordTiming struct {
	Word    string
	StartMS int64
	EndMS   int64
}

// Band is the vertical third of the frame a detected text region occupies.
type Band int

const (
	BandTopThird Band = iota
	BandMiddleThird
	BandBottomThird
)

func (b Band) String() string {
	switch b {
	case BandTopThird:
		return "top_third"
	case BandMiddleThird:
		return "middle_third"
	default:
		return "bottom_third"
	}
}

// TextRegion is an externally detected on-screen text occurrence, used by
// the position optimizer.
type TextRegion struct {
	StartMS int64
	EndMS   int64
	Band    Band
}

// SpeakerSegment is one externally supplied diarization span. Segments are
// non-overlapping and ordered by start time.
type SpeakerSegment struct {
	StartMS int64
	EndMS   int64
	Speaker SpeakerID
}
