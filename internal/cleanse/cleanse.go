// Package cleanse normalizes cue text and repairs structural defects:
// stripping invalid characters, removing duplicate cues, enforcing the
// two-line display limit, and applying grammar correction through an
// injected corrector. Every operation is idempotent, so running the
// pipeline twice with the same options is a no-op.
package cleanse

import (
	"strings"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

// DefaultWrapWidth is the character width a single line may occupy before
// the two-line wrap re-flows it.
const DefaultWrapWidth = 42

// Corrector rewrites a single line of cue text. It is an external
// collaborator: the core never decides when to call a remote service, it
// only applies whatever function the caller injected.
type Corrector func(string) string

// Options selects the cleansing steps to run. Unknown concerns have no
// place here; each recognized step is an explicit field.
type Options struct {
	StripInvalidChars  bool
	RemoveDuplicates   bool
	CorrectGrammar     bool
	EnforceTwoLineWrap bool

	// WrapWidth is the line width for EnforceTwoLineWrap; 0 means
	// DefaultWrapWidth.
	WrapWidth int

	// Corrector is the grammar hook; nil with CorrectGrammar set falls
	// back to BasicCorrections.
	Corrector Corrector
}

// Cleanse runs the selected steps over every cue and returns the repaired
// timeline. Cues left without any text are dropped with a warning.
func Cleanse(t timeline.Timeline, opts Options) timeline.Timeline {
	width := opts.WrapWidth
	if width <= 0 {
		width = DefaultWrapWidth
	}
	corrector := opts.Corrector
	if corrector == nil {
		corrector = BasicCorrections
	}

	out := timeline.Timeline{Warnings: t.Warnings}
	for _, cue := range t.Cues {
		cue = cue.Clone()
		if opts.StripInvalidChars {
			cue.Lines = stripInvalidLines(cue.Lines)
		}
		if opts.RemoveDuplicates {
			cue.Lines = dedupeLines(cue.Lines)
		}
		if opts.CorrectGrammar {
			cue.Lines = correctLines(cue.Lines, corrector)
		}
		if opts.EnforceTwoLineWrap {
			cue.Lines = wrapTwoLines(cue.Lines, width)
		}
		if len(cue.Lines) == 0 {
			out.Warn(timeline.WarnCueDropped, cue.Index, "no text after cleansing")
			continue
		}
		out.Cues = append(out.Cues, cue)
	}
	if opts.RemoveDuplicates {
		out = removeDuplicateCues(out)
	}
	return out.Normalize()
}

// stripInvalidLines removes control and other non-printable characters,
// replaces typographic punctuation with its ASCII form, and collapses
// whitespace runs. Lines left empty disappear, which also collapses
// multiple blank lines into the single break between surviving lines.
func stripInvalidLines(lines []string) []string {
	out := lines[:0]
	for _, line := range lines {
		line = replaceProblemChars(line)
		var b strings.Builder
		space := false
		for _, r := range line {
			switch {
			case r == ' ' || r == '\t':
				space = true
			case r < 0x20 || r == 0x7F:
				// control character, dropped
			default:
				if space && b.Len() > 0 {
					b.WriteByte(' ')
				}
				space = false
				b.WriteRune(r)
			}
		}
		if s := b.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var problemChars = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
	"–", "-", "—", "-",
	"…", "...",
	" ", " ",
)

func replaceProblemChars(s string) string {
	return problemChars.Replace(s)
}

// dedupeLines removes repeated identical lines within one cue, a common
// artifact of rolling auto-generated captions.
func dedupeLines(lines []string) []string {
	out := lines[:0]
	for _, line := range lines {
		dup := false
		for _, seen := range out {
			if line == seen {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, line)
		}
	}
	return out
}

// removeDuplicateCues merges a cue into its immediate predecessor when both
// carry byte-identical lines and the gap between them is below the
// duplicate threshold. The survivor keeps the earlier start and the later
// end.
func removeDuplicateCues(t timeline.Timeline) timeline.Timeline {
	out := timeline.Timeline{Warnings: t.Warnings}
	for _, cue := range t.Cues {
		if n := len(out.Cues); n > 0 {
			prev := &out.Cues[n-1]
			if prev.SameLines(cue) && cue.StartMS-prev.EndMS < timeline.DuplicateGapMS {
				if cue.EndMS > prev.EndMS {
					prev.EndMS = cue.EndMS
				}
				out.Warn(timeline.WarnDuplicate, cue.Index, "merged into previous cue")
				continue
			}
		}
		out.Cues = append(out.Cues, cue)
	}
	return out
}

// correctLines applies the corrector to each line with any leading speaker
// or dialogue prefix detached first, so speaker labels are never mutated by
// grammar logic.
func correctLines(lines []string, corrector Corrector) []string {
	out := lines[:0]
	for _, line := range lines {
		prefix, rest := splitSpeakerPrefix(line)
		rest = strings.TrimSpace(corrector(rest))
		if rest == "" && prefix == "" {
			continue
		}
		out = append(out, prefix+rest)
	}
	return out
}

// splitSpeakerPrefix detaches a "[Name] " or "-- " dialogue prefix.
func splitSpeakerPrefix(line string) (prefix, rest string) {
	if strings.HasPrefix(line, "[") {
		if end := strings.Index(line, "] "); end > 0 {
			return line[:end+2], line[end+2:]
		}
	}
	if strings.HasPrefix(line, "-- ") {
		return "-- ", line[3:]
	}
	return "", line
}
