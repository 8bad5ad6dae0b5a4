package cleanse

import (
	"strings"
	"unicode/utf8"
)

// wrapTwoLines enforces the two-line display limit. A single line longer
// than width is split into two balanced lines at a word boundary; more than
// two lines are re-flowed into two. A cue already within width and line
// limits is left untouched.
func wrapTwoLines(lines []string, width int) []string {
	switch {
	case len(lines) == 0:
		return lines
	case len(lines) > 2:
		return balancedSplit(strings.Join(lines, " "), width)
	case len(lines) == 1 && utf8.RuneCountInString(lines[0]) > width:
		return balancedSplit(lines[0], width)
	default:
		return lines
	}
}

// balancedSplit breaks text into two lines at the word boundary that keeps
// the halves closest in length, preferring boundaries where both halves fit
// the width. Words are never split mid-word.
func balancedSplit(text string, width int) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= width {
		return []string{string(runes)}
	}

	type boundary struct{ pos, imbalance int }
	best := boundary{pos: -1}
	bestAny := boundary{pos: -1}
	for i, r := range runes {
		if r != ' ' {
			continue
		}
		left := i
		right := len(runes) - i - 1
		imbalance := left - right
		if imbalance < 0 {
			imbalance = -imbalance
		}
		if bestAny.pos < 0 || imbalance < bestAny.imbalance {
			bestAny = boundary{pos: i, imbalance: imbalance}
		}
		if left <= width && right <= width && (best.pos < 0 || imbalance < best.imbalance) {
			best = boundary{pos: i, imbalance: imbalance}
		}
	}
	split := best.pos
	if split < 0 {
		split = bestAny.pos
	}
	if split < 0 {
		return []string{string(runes)} // single unbreakable word
	}
	first := strings.TrimSpace(string(runes[:split]))
	second := strings.TrimSpace(string(runes[split:]))
	if second == "" {
		return []string{first}
	}
	return []string{first, second}
}
