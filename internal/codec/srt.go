package codec

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

var srtIndexRe = regexp.MustCompile(`^\d+$`)
var srtTimeRe = regexp.MustCompile(`^(\d{1,2}):([0-5]\d):([0-5]\d),(\d{3})$`)

// parseSRT parses SubRip. Records are blank-line separated blocks of an
// optional numeric index, a timing line, and one or more text lines.
func parseSRT(data []byte) (timeline.Timeline, error) {
	var t timeline.Timeline
	for record, blk := range splitBlocks(data) {
		lines := blk
		if srtIndexRe.MatchString(strings.TrimSpace(lines[0])) {
			lines = lines[1:]
		}
		if len(lines) == 0 {
			return timeline.Timeline{}, &ParseError{Record: record + 1, Reason: "missing timing line"}
		}
		start, end, err := parseSRTTiming(lines[0], record+1)
		if err != nil {
			return timeline.Timeline{}, err
		}
		cue, ok := cueFromPrefixedText(lines[1:], start, end)
		if !ok {
			continue // record without text carries nothing to display
		}
		t.Cues = append(t.Cues, cue)
	}
	return t, nil
}

func parseSRTTiming(line string, record int) (int64, int64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, &ParseError{Record: record, Token: line, Reason: "invalid timing separator"}
	}
	start, ok := parseSRTTime(strings.TrimSpace(parts[0]))
	if !ok {
		return 0, 0, &ParseError{Record: record, Token: strings.TrimSpace(parts[0]), Reason: "malformed timestamp"}
	}
	end, ok := parseSRTTime(strings.TrimSpace(parts[1]))
	if !ok {
		return 0, 0, &ParseError{Record: record, Token: strings.TrimSpace(parts[1]), Reason: "malformed timestamp"}
	}
	return start, end, nil
}

func parseSRTTime(s string) (int64, bool) {
	m := srtTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return clockMS(m[1], m[2], m[3], m[4]), true
}

// cueFromPrefixedText builds a cue from text lines that may carry {\anN}
// override tags and a bracketed speaker prefix (the conventions SRT and SBV
// share, having no native fields for either).
func cueFromPrefixedText(lines []string, start, end int64) (timeline.Cue, bool) {
	cue := timeline.Cue{StartMS: start, EndMS: end, Position: timeline.DefaultPosition()}
	for _, raw := range lines {
		line, style := stripOverrideTags(raw, &cue.Position, cue.Style)
		cue.Style = style
		if line == "" {
			continue
		}
		if len(cue.Lines) == 0 {
			if spk, rest, ok := splitSpeakerPrefix(line); ok {
				cue.Speaker = spk
				line = rest
			}
		}
		cue.Lines = append(cue.Lines, line)
	}
	return cue, len(cue.Lines) > 0
}

func clockMS(h, m, s, frac string) int64 {
	hi, _ := strconv.Atoi(h)
	mi, _ := strconv.Atoi(m)
	si, _ := strconv.Atoi(s)
	ms, _ := strconv.Atoi(frac)
	switch len(frac) {
	case 1:
		ms *= 100
	case 2:
		ms *= 10
	}
	return int64(hi)*3600000 + int64(mi)*60000 + int64(si)*1000 + int64(ms)
}

func formatSRTTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func serializeSRT(t timeline.Timeline, style StyleConfig) ([]byte, error) {
	var buf bytes.Buffer
	for i, cue := range t.Cues {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "%d\n%s --> %s\n", i+1, formatSRTTime(cue.StartMS), formatSRTTime(cue.EndMS))
		writePrefixedText(&buf, cue, style)
	}
	return buf.Bytes(), nil
}

// writePrefixedText writes cue text with the shared SRT/SBV conventions:
// an optional {\anN} position tag when requested, then the bracketed
// speaker prefix on the first line.
func writePrefixedText(buf *bytes.Buffer, cue timeline.Cue, style StyleConfig) {
	for i, line := range cue.Lines {
		if i == 0 {
			if style.PositionTags && cue.Position.Placement != timeline.PlaceDefault {
				fmt.Fprintf(buf, "{\\an%d}", anCode(cue.Position.Placement))
			}
			if cue.Speaker != "" {
				buf.WriteString(speakerPrefix(cue.Speaker))
			}
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
}
