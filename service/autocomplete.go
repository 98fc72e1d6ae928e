package service

import (
	"strings"
	"unicode"

	"github.com/David-fi/NL2SQL/models"
)

// SuggestionCorpus flattens the schema index into the candidate list:
// every table name, every column name (underscores rendered as spaces) and,
// for every sample value, "{column} of {value}".
func SuggestionCorpus(index models.SchemaIndex) []string {
	var corpus []string
	for _, table := range index.Tables {
		corpus = append(corpus, strings.ReplaceAll(table.Name, "_", " "))
	}
	for _, table := range index.Tables {
		for _, column := range table.Columns {
			name := strings.ReplaceAll(column.Name, "_", " ")
			corpus = append(corpus, name)
			for _, sample := range column.Samples {
				corpus = append(corpus, name+" of "+sample)
			}
		}
	}
	return corpus
}

// Suggest returns up to limit completion candidates for the last
// whitespace-delimited token of input, matched by case-insensitive
// substring containment in corpus order.
func Suggest(input string, enabled bool, index models.SchemaIndex, limit int) []string {
	if !enabled {
		return nil
	}
	token := lastToken(input)
	if token == "" {
		return nil
	}

	token = strings.ToLower(token)
	var matches []string
	for _, candidate := range SuggestionCorpus(index) {
		if strings.Contains(strings.ToLower(candidate), token) {
			matches = append(matches, candidate)
			if limit > 0 && len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// CompleteLastToken replaces the in-progress token of input with the
// selected candidate, preserving all prior tokens verbatim.
func CompleteLastToken(input, candidate string) string {
	boundary := strings.LastIndexFunc(input, unicode.IsSpace)
	return input[:boundary+1] + candidate
}

func lastToken(input string) string {
	fields := strings.Fields(input)
	if len(fields) == 0 || strings.TrimRightFunc(input, unicode.IsSpace) != input {
		// Input ends in whitespace: no token is in progress.
		return ""
	}
	return fields[len(fields)-1]
}
