package codec

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

var vttTimeRe = regexp.MustCompile(`^(?:(\d{1,2}):)?([0-5]\d):([0-5]\d)\.(\d{3})$`)
var vttVoiceRe = regexp.MustCompile(`^<v(?:\.[^ >]+)?\s+([^>]+)>`)
var vttTagRe = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

// parseVTT parses WebVTT: a WEBVTT header block, then cue blocks of an
// optional identifier line, a timing line with optional cue settings, and
// text lines. NOTE/STYLE/REGION blocks are skipped.
func parseVTT(data []byte) (timeline.Timeline, error) {
	blocks := splitBlocks(data)
	if len(blocks) == 0 || !strings.HasPrefix(blocks[0][0], "WEBVTT") {
		return timeline.Timeline{}, &ParseError{Record: 1, Reason: "missing WEBVTT header"}
	}
	var t timeline.Timeline
	record := 0
	for _, blk := range blocks[1:] {
		switch {
		case strings.HasPrefix(blk[0], "NOTE"),
			strings.HasPrefix(blk[0], "STYLE"),
			strings.HasPrefix(blk[0], "REGION"):
			continue
		}
		record++
		lines := blk
		if !strings.Contains(lines[0], "-->") {
			lines = lines[1:] // cue identifier
		}
		if len(lines) == 0 || !strings.Contains(lines[0], "-->") {
			return timeline.Timeline{}, &ParseError{Record: record, Token: blk[0], Reason: "missing timing line"}
		}
		cue, err := parseVTTCue(lines, record)
		if err != nil {
			return timeline.Timeline{}, err
		}
		if len(cue.Lines) == 0 {
			continue
		}
		t.Cues = append(t.Cues, cue)
	}
	return t, nil
}

func parseVTTCue(lines []string, record int) (timeline.Cue, error) {
	timing := strings.SplitN(lines[0], "-->", 2)
	start, ok := parseVTTTime(strings.TrimSpace(timing[0]))
	if !ok {
		return timeline.Cue{}, &ParseError{Record: record, Token: strings.TrimSpace(timing[0]), Reason: "malformed timestamp"}
	}
	rest := strings.Fields(strings.TrimSpace(timing[1]))
	if len(rest) == 0 {
		return timeline.Cue{}, &ParseError{Record: record, Token: lines[0], Reason: "missing end timestamp"}
	}
	end, ok := parseVTTTime(rest[0])
	if !ok {
		return timeline.Cue{}, &ParseError{Record: record, Token: rest[0], Reason: "malformed timestamp"}
	}

	cue := timeline.Cue{StartMS: start, EndMS: end, Position: timeline.DefaultPosition()}
	for _, setting := range rest[1:] {
		applyVTTSetting(&cue.Position, setting)
	}
	for i, raw := range lines[1:] {
		line := raw
		if i == 0 {
			if m := vttVoiceRe.FindStringSubmatch(line); m != nil {
				cue.Speaker = timeline.SpeakerID(strings.TrimSpace(m[1]))
				line = line[len(m[0]):]
			}
		}
		if strings.Contains(line, "<b>") {
			cue.Style = setStyle(cue.Style, "bold", "1")
		}
		if strings.Contains(line, "<i>") {
			cue.Style = setStyle(cue.Style, "italic", "1")
		}
		line = strings.TrimSpace(vttTagRe.ReplaceAllString(line, ""))
		if line != "" {
			cue.Lines = append(cue.Lines, line)
		}
	}
	return cue, nil
}

// applyVTTSetting folds one "key:value" cue setting into the position.
// Percentage line settings map to the coarse placement bands: <=30% top,
// 40-60% center, otherwise bottom.
func applyVTTSetting(pos *timeline.Position, setting string) {
	key, value, ok := strings.Cut(setting, ":")
	if !ok {
		return
	}
	switch key {
	case "line":
		pct, ok := parsePercent(value)
		if !ok {
			return
		}
		pos.LinePct = pct
		switch {
		case pct <= 30:
			pos.Placement = timeline.PlaceTop
		case pct >= 40 && pct <= 60:
			pos.Placement = timeline.PlaceCenter
		default:
			pos.Placement = timeline.PlaceBottom
		}
	case "position":
		if pct, ok := parsePercent(value); ok {
			pos.ColumnPct = pct
		}
	}
}

func parsePercent(s string) (int, bool) {
	s, found := strings.CutSuffix(s, "%")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int(n), true
}

func parseVTTTime(s string) (int64, bool) {
	m := vttTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h := m[1]
	if h == "" {
		h = "0"
	}
	return clockMS(h, m[2], m[3], m[4]), true
}

func formatVTTTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func serializeVTT(t timeline.Timeline, style StyleConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("WEBVTT\n\n")
	for i, cue := range t.Cues {
		fmt.Fprintf(&buf, "cue%d\n", i+1)
		fmt.Fprintf(&buf, "%s --> %s%s\n", formatVTTTime(cue.StartMS), formatVTTTime(cue.EndMS), vttSettings(cue.Position))
		for j, line := range cue.Lines {
			if cue.Style["bold"] == "1" {
				line = "<b>" + line + "</b>"
			}
			if cue.Style["italic"] == "1" {
				line = "<i>" + line + "</i>"
			}
			if j == 0 && cue.Speaker != "" {
				line = fmt.Sprintf("<v %s>%s", cue.Speaker, line)
			}
			buf.WriteString(line)
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// vttSettings derives the cue settings string from the position. Nothing is
// emitted for the default placement so untouched cues stay untouched.
func vttSettings(pos timeline.Position) string {
	if pos.Placement == timeline.PlaceDefault && pos.ColumnPct < 0 {
		return ""
	}
	linePct := pos.LinePct
	if linePct < 0 {
		switch pos.Placement {
		case timeline.PlaceTop:
			linePct = 10
		case timeline.PlaceCenter:
			linePct = 50
		default:
			linePct = 90
		}
	}
	s := fmt.Sprintf(" line:%d%% align:center", linePct)
	if pos.ColumnPct >= 0 {
		s += fmt.Sprintf(" position:%d%%", pos.ColumnPct)
	}
	return s
}
