package validation

import (
	"strings"
	"unicode"
)

// IsValidQuestion checks whether a natural-language question is worth
// sending to the query-generation collaborator. It filters the obvious
// gibberish so a wasted generation round trip never starts; anything
// borderline passes, since rejecting a real question is worse than
// generating a bad query.
func IsValidQuestion(question string) bool {
	trimmed := strings.TrimSpace(question)

	if len(trimmed) < 3 || len(trimmed) > 2000 {
		return false
	}

	words := strings.Fields(trimmed)
	if len(words) == 1 {
		// A single word can stand as a question only when it is not
		// one character repeated.
		return len(words[0]) >= 3 && !isRepeatedCharacters(words[0])
	}

	if hasExcessiveRepetition(trimmed) {
		return false
	}

	letterCount := 0
	totalChars := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			letterCount++
		}
		if !unicode.IsSpace(r) {
			totalChars++
		}
	}
	if totalChars == 0 {
		return false
	}
	if float64(letterCount)/float64(totalChars) < 0.3 {
		return false
	}

	if hasKeyboardMashing(trimmed) {
		return false
	}

	return true
}

// isRepeatedCharacters reports whether a string is one character repeated.
func isRepeatedCharacters(s string) bool {
	if len(s) < 3 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// hasExcessiveRepetition catches runs of 4+ identical characters.
func hasExcessiveRepetition(s string) bool {
	count := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] && !unicode.IsSpace(rune(s[i])) {
			count++
			if count >= 4 {
				return true
			}
		} else {
			count = 1
		}
	}
	return false
}

// hasKeyboardMashing catches short inputs built from keyboard rows.
func hasKeyboardMashing(s string) bool {
	if len(s) >= 30 {
		return false
	}
	lower := strings.ToLower(s)
	for _, pattern := range []string{"asdf", "qwer", "zxcv", "hjkl", "qwertyuiop", "asdfghjkl", "zxcvbnm"} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
