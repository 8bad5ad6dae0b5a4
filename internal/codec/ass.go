package codec

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

var assTimeRe = regexp.MustCompile(`^(\d{1,2}):([0-5]\d):([0-5]\d)\.(\d{1,3})$`)

// Standard [Events] field order, used when the section has no Format line.
var assDefaultFields = []string{"Layer", "Start", "End", "Style", "Name", "MarginL", "MarginR", "MarginV", "Effect", "Text"}

// parseASS parses Advanced SubStation Alpha. Only the [Events] section
// produces cues; the field layout comes from the section's Format line.
// Override tags in the event text are lifted into position and style
// metadata; \N breaks become separate lines.
func parseASS(data []byte) (timeline.Timeline, error) {
	var t timeline.Timeline
	fields := assDefaultFields
	inEvents := false
	record := 0
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, "["):
			inEvents = strings.EqualFold(line, "[Events]")
			continue
		case !inEvents:
			continue
		}
		if value, ok := cutASSDescriptor(line, "Format"); ok {
			fields = splitASSFields(value, -1)
			continue
		}
		value, ok := cutASSDescriptor(line, "Dialogue")
		if !ok {
			continue // Comment: and other event kinds carry no display text
		}
		record++
		cue, err := parseASSDialogue(value, fields, record)
		if err != nil {
			return timeline.Timeline{}, err
		}
		if len(cue.Lines) == 0 {
			continue
		}
		t.Cues = append(t.Cues, cue)
	}
	if record == 0 {
		return timeline.Timeline{}, &ParseError{Record: 1, Reason: "no dialogue events found"}
	}
	return t, nil
}

func cutASSDescriptor(line, name string) (string, bool) {
	rest, found := strings.CutPrefix(line, name+":")
	if !found {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func splitASSFields(value string, n int) []string {
	parts := strings.SplitN(value, ",", n)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseASSDialogue(value string, fields []string, record int) (timeline.Cue, error) {
	// Text is always the last field and may itself contain commas, so the
	// split is capped at the field count.
	parts := strings.SplitN(value, ",", len(fields))
	if len(parts) < len(fields) {
		return timeline.Cue{}, &ParseError{Record: record, Token: value, Reason: "dialogue has too few fields"}
	}
	cue := timeline.Cue{Position: timeline.DefaultPosition()}
	var text string
	for i, name := range fields {
		switch name {
		case "Start":
			ms, ok := parseASSTime(strings.TrimSpace(parts[i]))
			if !ok {
				return timeline.Cue{}, &ParseError{Record: record, Token: strings.TrimSpace(parts[i]), Reason: "malformed timestamp"}
			}
			cue.StartMS = ms
		case "End":
			ms, ok := parseASSTime(strings.TrimSpace(parts[i]))
			if !ok {
				return timeline.Cue{}, &ParseError{Record: record, Token: strings.TrimSpace(parts[i]), Reason: "malformed timestamp"}
			}
			cue.EndMS = ms
		case "Name":
			if name := strings.TrimSpace(parts[i]); name != "" {
				cue.Speaker = timeline.SpeakerID(name)
			}
		case "Text":
			text = parts[i]
		}
	}
	for _, part := range strings.Split(strings.ReplaceAll(text, `\n`, `\N`), `\N`) {
		line, style := stripOverrideTags(part, &cue.Position, cue.Style)
		cue.Style = style
		line = strings.TrimSpace(strings.ReplaceAll(line, `\h`, " "))
		if line != "" {
			cue.Lines = append(cue.Lines, line)
		}
	}
	return cue, nil
}

func parseASSTime(s string) (int64, bool) {
	m := assTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return clockMS(m[1], m[2], m[3], m[4]), true
}

// formatASSTime renders H:MM:SS.cc; ASS uses centiseconds.
func formatASSTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d:%02d.%02d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000/10)
}

func assBool(b bool) int {
	if b {
		return -1
	}
	return 0
}

func serializeASS(t timeline.Timeline, style StyleConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("[Script Info]\n")
	buf.WriteString("Title: Cleansed subtitles\n")
	buf.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&buf, "PlayResX: %d\n", style.PlayResX)
	fmt.Fprintf(&buf, "PlayResY: %d\n", style.PlayResY)
	buf.WriteString("WrapStyle: 0\n\n")

	buf.WriteString("[V4+ Styles]\n")
	buf.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	// SecondaryColour is only used for karaoke; keep the fixed value the
	// rest of the header conventions come from.
	const secondary = "&H000000FF"
	writeASSStyle := func(name string, alignment int) {
		fmt.Fprintf(&buf, "Style: %s,%s,%d,%s,%s,%s,%s,%d,%d,0,0,100,100,0,0,1,%d,%d,%d,10,10,10,1\n",
			name, style.FontName, style.FontSize, style.PrimaryColor, secondary,
			style.OutlineColor, style.BackgroundColor, assBool(style.Bold), assBool(style.Italic),
			style.OutlineWidth, style.ShadowDepth, alignment)
	}
	writeASSStyle("Default", 2)
	writeASSStyle("Top", 8)
	buf.WriteString("\n")

	buf.WriteString("[Events]\n")
	buf.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, cue := range t.Cues {
		// The Name field is ASS's native speaker slot; commas would shift
		// the field split on re-parse.
		name := strings.ReplaceAll(string(cue.Speaker), ",", " ")
		fmt.Fprintf(&buf, "Dialogue: 0,%s,%s,Default,%s,0,0,0,,%s%s\n",
			formatASSTime(cue.StartMS), formatASSTime(cue.EndMS), name,
			assOverrides(cue), strings.Join(cue.Lines, `\N`))
	}
	return buf.Bytes(), nil
}

// assOverrides renders the cue's position and style overrides as a single
// leading override block.
func assOverrides(cue timeline.Cue) string {
	var tags []string
	if p := cue.Position.Placement; p != timeline.PlaceDefault {
		tags = append(tags, fmt.Sprintf(`\an%d`, anCode(p)))
	}
	if cue.Style["bold"] == "1" {
		tags = append(tags, `\b1`)
	}
	if cue.Style["italic"] == "1" {
		tags = append(tags, `\i1`)
	}
	if c, ok := cue.Style["color"]; ok && strings.HasPrefix(c, "&H") {
		tags = append(tags, fmt.Sprintf(`\c%s&`, c))
	}
	if len(tags) == 0 {
		return ""
	}
	return "{" + strings.Join(tags, "") + "}"
}
