package render

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextPlan is the one- or two-line arrangement of a participant name.
// Line2 may be empty. Both lines are already truncated to their caps.
type TextPlan struct {
	Line1 string
	Line2 string
}

// truncationMarker is appended to any line cut short of its full text.
const truncationMarker = "."

// PlanLines splits a display name into at most two lines. Multi-word
// names are split at the word boundary that best balances the two line
// lengths while respecting both caps; ties go to the earliest split.
// When no split satisfies the caps, words are packed greedily into
// line1 and the remainder spills into line2, then both are truncated.
// Caps below 1 are clamped to 1.
func PlanLines(name string, maxLine1, maxLine2 int) TextPlan {
	if maxLine1 < 1 {
		maxLine1 = 1
	}
	if maxLine2 < 1 {
		maxLine2 = 1
	}

	words := strings.Fields(name)
	if len(words) == 0 {
		return TextPlan{}
	}
	if len(words) == 1 {
		return TextPlan{Line1: Truncate(words[0], maxLine1)}
	}

	bestSplit := -1
	bestDiff := 0
	for i := 1; i < len(words); i++ {
		prefix := strings.Join(words[:i], " ")
		suffix := strings.Join(words[i:], " ")
		if utf8.RuneCountInString(prefix) > maxLine1 || utf8.RuneCountInString(suffix) > maxLine2 {
			continue
		}
		diff := utf8.RuneCountInString(prefix) - utf8.RuneCountInString(suffix)
		if diff < 0 {
			diff = -diff
		}
		if bestSplit == -1 || diff < bestDiff {
			bestSplit = i
			bestDiff = diff
		}
	}
	if bestSplit != -1 {
		return TextPlan{
			Line1: strings.Join(words[:bestSplit], " "),
			Line2: strings.Join(words[bestSplit:], " "),
		}
	}

	// No split fits both caps: pack line1 greedily, spill the rest.
	var line1 string
	idx := 0
	for idx < len(words) {
		candidate := words[idx]
		if line1 != "" {
			candidate = line1 + " " + words[idx]
		}
		if utf8.RuneCountInString(candidate) > maxLine1 {
			break
		}
		line1 = candidate
		idx++
	}
	if line1 == "" {
		// The first word alone exceeds the cap; truncation handles it.
		line1 = words[0]
		idx = 1
	}
	line2 := strings.Join(words[idx:], " ")

	return TextPlan{
		Line1: Truncate(line1, maxLine1),
		Line2: Truncate(line2, maxLine2),
	}
}

// Truncate cuts text to maxChars runes. A cut line has trailing
// whitespace stripped and a single truncation marker appended, so the
// result may be up to maxChars+1 runes long. Text that already fits is
// returned unchanged; a cap of zero or less yields the empty string.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	cut := strings.TrimRightFunc(string(runes[:maxChars]), unicode.IsSpace)
	return cut + truncationMarker
}
