package pipeline

import (
	"unicode/utf8"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

// Analysis summarizes the defects a timeline carries before processing, so
// callers can decide which cleansing options are worth enabling.
type Analysis struct {
	TotalCues         int
	TotalCharacters   int
	AverageCharacters float64
	Overlaps          int
	SuspectCharCues   int
	OverlongCues      int
}

// Analyze inspects a parsed timeline without mutating it.
func Analyze(t timeline.Timeline) Analysis {
	a := Analysis{TotalCues: len(t.Cues)}
	for i, cue := range t.Cues {
		chars := 0
		suspect := false
		for _, line := range cue.Lines {
			chars += utf8.RuneCountInString(line)
			for _, r := range line {
				if r < 0x20 || r == 0x7F || r == '�' {
					suspect = true
				}
			}
		}
		a.TotalCharacters += chars
		if suspect {
			a.SuspectCharCues++
		}
		if len(cue.Lines) > timeline.MaxLines {
			a.OverlongCues++
		}
		if i+1 < len(t.Cues) && cue.EndMS > t.Cues[i+1].StartMS {
			a.Overlaps++
		}
	}
	if a.TotalCues > 0 {
		a.AverageCharacters = float64(a.TotalCharacters) / float64(a.TotalCues)
	}
	return a
}
