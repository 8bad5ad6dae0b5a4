package codec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

// ASS numpad alignment codes:
//
//	7 8 9
//	4 5 6
//	1 2 3
func anCode(p timeline.Placement) int {
	switch p {
	case timeline.PlaceTop:
		return 8
	case timeline.PlaceCenter:
		return 5
	default:
		return 2
	}
}

func placementForAn(code int) timeline.Placement {
	switch {
	case code >= 7 && code <= 9:
		return timeline.PlaceTop
	case code >= 4 && code <= 6:
		return timeline.PlaceCenter
	case code >= 1 && code <= 3:
		return timeline.PlaceBottom
	default:
		return timeline.PlaceDefault
	}
}

var overrideBlockRe = regexp.MustCompile(`\{\\[^}]*\}`)
var anTagRe = regexp.MustCompile(`\\an(\d)`)

// stripOverrideTags removes ASS override blocks ({\...}) from a text line,
// lifting recognized tags into position and style metadata. Unrecognized
// tags are dropped rather than left in the display text.
func stripOverrideTags(line string, pos *timeline.Position, style map[string]string) (string, map[string]string) {
	for _, block := range overrideBlockRe.FindAllString(line, -1) {
		if m := anTagRe.FindStringSubmatch(block); m != nil {
			code, _ := strconv.Atoi(m[1])
			pos.Placement = placementForAn(code)
		}
		if strings.Contains(block, `\b1`) {
			style = setStyle(style, "bold", "1")
		}
		if strings.Contains(block, `\i1`) {
			style = setStyle(style, "italic", "1")
		}
		if m := assInlineColorRe.FindStringSubmatch(block); m != nil {
			style = setStyle(style, "color", "&H"+strings.ToUpper(m[1]))
		}
	}
	return strings.TrimSpace(overrideBlockRe.ReplaceAllString(line, "")), style
}

var assInlineColorRe = regexp.MustCompile(`\\1?c&H([0-9A-Fa-f]{2,8})&`)

func setStyle(style map[string]string, key, value string) map[string]string {
	if style == nil {
		style = make(map[string]string, 2)
	}
	style[key] = value
	return style
}

// speakerPrefix renders a speaker as the bracketed textual prefix used by
// formats without a native speaker field.
func speakerPrefix(id timeline.SpeakerID) string {
	return "[" + string(id) + "] "
}

var speakerPrefixRe = regexp.MustCompile(`^\[([^\[\]]+)\]\s+(\S.*)$`)

// splitSpeakerPrefix detaches a leading "[Name] text" prefix from a line.
// A bracket annotation with no trailing text (e.g. "[music]") is left
// untouched; it is an SDH cue, not a speaker label.
func splitSpeakerPrefix(line string) (timeline.SpeakerID, string, bool) {
	m := speakerPrefixRe.FindStringSubmatch(line)
	if m == nil {
		return "", line, false
	}
	return timeline.SpeakerID(m[1]), m[2], true
}
