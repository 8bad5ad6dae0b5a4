// Package codec parses and serializes subtitle documents in the supported
// text formats (SRT, WebVTT, ASS, SBV). Each format is a strategy pair in a
// closed table, so adding a format is a compile-time-checked extension
// rather than string comparison scattered around the codebase.
package codec

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

// Format is the closed set of supported subtitle formats.
type Format int

const (
	SRT Format = iota
	VTT
	ASS
	SBV
)

func (f Format) String() string {
	switch f {
	case SRT:
		return "srt"
	case VTT:
		return "vtt"
	case ASS:
		return "ass"
	case SBV:
		return "sbv"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Extension returns the conventional file extension including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat resolves a format hint (name or file extension) to a Format.
func ParseFormat(hint string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hint), ".")) {
	case "srt":
		return SRT, nil
	case "vtt", "webvtt":
		return VTT, nil
	case "ass", "ssa":
		return ASS, nil
	case "sbv", "sub":
		return SBV, nil
	default:
		return 0, &UnsupportedFormatError{Hint: hint}
	}
}

type strategy struct {
	parse     func(data []byte) (timeline.Timeline, error)
	serialize func(t timeline.Timeline, style StyleConfig) ([]byte, error)
}

var strategies = map[Format]strategy{
	SRT: {parse: parseSRT, serialize: serializeSRT},
	VTT: {parse: parseVTT, serialize: serializeVTT},
	ASS: {parse: parseASS, serialize: serializeASS},
	SBV: {parse: parseSBV, serialize: serializeSBV},
}

// Parse decodes raw subtitle bytes in the given format into a timeline.
// Input bytes are decoded (BOM stripped, non-UTF-8 fallbacks applied) and
// line endings normalized before tokenizing. A malformed record aborts the
// whole parse; a partially parsed timeline is unsafe to proceed with.
func Parse(data []byte, format Format) (timeline.Timeline, error) {
	s, ok := strategies[format]
	if !ok {
		return timeline.Timeline{}, &UnsupportedFormatError{Hint: format.String()}
	}
	text, err := decode(data)
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("decode input: %w", err)
	}
	t, err := s.parse([]byte(text))
	if err != nil {
		return timeline.Timeline{}, err
	}
	return t.Normalize(), nil
}

// Serialize renders a timeline in the given format. Cue indices are
// reassigned; the timeline is not mutated.
func Serialize(t timeline.Timeline, format Format, style StyleConfig) ([]byte, error) {
	s, ok := strategies[format]
	if !ok {
		return nil, &UnsupportedFormatError{Hint: format.String()}
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}
	return s.serialize(t.Normalize(), style)
}

// splitBlocks breaks normalized subtitle text into blank-line separated
// blocks, trimming trailing whitespace and dropping empty boundary lines
// within each block.
func splitBlocks(data []byte) [][]string {
	parts := strings.Split(string(data), "\n\n")
	out := make([][]string, 0, len(parts))
	for _, p := range parts {
		lines := strings.Split(p, "\n")
		trimmed := make([]string, 0, len(lines))
		for _, l := range lines {
			trimmed = append(trimmed, strings.TrimRight(l, " \t"))
		}
		for len(trimmed) > 0 && strings.TrimSpace(trimmed[0]) == "" {
			trimmed = trimmed[1:]
		}
		for len(trimmed) > 0 && strings.TrimSpace(trimmed[len(trimmed)-1]) == "" {
			trimmed = trimmed[:len(trimmed)-1]
		}
		if len(trimmed) > 0 {
			out = append(out, trimmed)
		}
	}
	return out
}
