package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     bool
	}{
		{"typical question", "How many sales were there in March?", true},
		{"short but real", "top regions", true},
		{"single word", "sales", true},
		{"with punctuation", "average order value, per region?", true},
		{"leading whitespace trimmed", "   total per region", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too short", "hi", false},
		{"too long", strings.Repeat("what ", 500), false},
		{"single repeated character word", "aaaa", false},
		{"two-letter single word", "ab", false},
		{"run of identical characters", "show me aaaall sales", false},
		{"mostly digits", "1234567890 9876543210", false},
		{"mostly symbols", "??? !!! ###", false},
		{"keyboard mashing", "asdf asdf", false},
		{"qwerty row", "qwerty sales", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidQuestion(tt.question))
		})
	}
}
