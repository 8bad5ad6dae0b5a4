package codec

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

var sbvTimeRe = regexp.MustCompile(`^(\d{1,2}):([0-5]\d):([0-5]\d)\.(\d{3})$`)

// parseSBV parses the SubViewer/SBV family: blank-line separated records of
// a "start,end" timing line followed by text lines. Text conventions are
// shared with SRT (bracketed speaker prefix, optional {\anN} tags).
func parseSBV(data []byte) (timeline.Timeline, error) {
	var t timeline.Timeline
	for record, blk := range splitBlocks(data) {
		times := strings.Split(blk[0], ",")
		if len(times) != 2 {
			return timeline.Timeline{}, &ParseError{Record: record + 1, Token: blk[0], Reason: "invalid timing line"}
		}
		start, ok := parseSBVTime(strings.TrimSpace(times[0]))
		if !ok {
			return timeline.Timeline{}, &ParseError{Record: record + 1, Token: strings.TrimSpace(times[0]), Reason: "malformed timestamp"}
		}
		end, ok := parseSBVTime(strings.TrimSpace(times[1]))
		if !ok {
			return timeline.Timeline{}, &ParseError{Record: record + 1, Token: strings.TrimSpace(times[1]), Reason: "malformed timestamp"}
		}
		cue, ok := cueFromPrefixedText(blk[1:], start, end)
		if !ok {
			continue
		}
		t.Cues = append(t.Cues, cue)
	}
	return t, nil
}

func parseSBVTime(s string) (int64, bool) {
	m := sbvTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return clockMS(m[1], m[2], m[3], m[4]), true
}

func formatSBVTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d:%02d.%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func serializeSBV(t timeline.Timeline, style StyleConfig) ([]byte, error) {
	var buf bytes.Buffer
	for i, cue := range t.Cues {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "%s,%s\n", formatSBVTime(cue.StartMS), formatSBVTime(cue.EndMS))
		writePrefixedText(&buf, cue, style)
	}
	return buf.Bytes(), nil
}
