package trends

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeKeywords lowercases and trims keywords, dropping empties and
// duplicates while preserving first-seen order. The returned order is the
// row order of a snapshot.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	var out []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

// CountMentions counts non-overlapping whole-word occurrences of each keyword
// in text. Matching is case-insensitive and token-bounded: a match counts only
// when the runes on both sides are not letters or digits, so "aws" is found in
// "I love AWS." but not in "flaws". Multi-word keywords match as a phrase with
// the same boundary rule at both ends. Duplicate keywords count once; empty
// text yields zero for every keyword.
func CountMentions(text string, keywords []string) map[string]int {
	normalized := NormalizeKeywords(keywords)
	counts := make(map[string]int, len(normalized))
	for _, kw := range normalized {
		counts[kw] = 0
	}
	if text == "" {
		return counts
	}

	lower := strings.ToLower(text)
	for _, kw := range normalized {
		counts[kw] = countOccurrences(lower, kw)
	}
	return counts
}

func countOccurrences(text, keyword string) int {
	count := 0
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], keyword)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(keyword)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
			offset = end
		} else {
			offset = start + 1
		}
	}
	return count
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end == len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
