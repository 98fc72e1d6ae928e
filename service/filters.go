package service

import (
	"fmt"
	"regexp"
	"strings"
)

// Schema filter clauses are drawn from exactly two templates. The ordered
// clause list is the source of truth; the clause prefix of the question
// text is a derived view recomposed from it on every mutation.

const tableClausePrefix = "From table "

func TableClause(table string) string {
	return tableClausePrefix + table
}

func ColumnClause(column, table string) string {
	return fmt.Sprintf("In the column %s of table %s", column, table)
}

// clauseRe recognizes one clause-shaped segment at the head of the
// question: the clause text, its terminating period and trailing spaces.
var clauseRe = regexp.MustCompile(`^(?:From table [^.]+|In the column [^.]+ of table [^.]+)\.\s*`)

// StripClausePrefix removes the leading run of clause-shaped text from the
// question: zero or more clauses, each period-terminated, with optional
// "and " group separators between them. Whatever follows — the user's own
// wording — is returned untouched.
func StripClausePrefix(question string) string {
	for {
		m := clauseRe.FindString(question)
		if m == "" {
			return question
		}
		question = question[len(m):]

		// "and " only separates clause groups when another clause
		// follows; a question that itself starts with "and" stays.
		if rest, ok := strings.CutPrefix(question, "and "); ok && clauseRe.MatchString(rest) {
			question = rest
		}
	}
}

// ComposeClauses renders the clause prefix: table clauses first, then
// column clauses, each terminated by a period, with "and" between the two
// groups for readability. The result carries a trailing space so the
// question remainder can be appended directly.
func ComposeClauses(clauses []string) string {
	var tables, columns []string
	for _, clause := range clauses {
		if strings.HasPrefix(clause, tableClausePrefix) {
			tables = append(tables, clause)
		} else {
			columns = append(columns, clause)
		}
	}

	ordered := append(append([]string{}, tables...), columns...)
	if len(ordered) == 0 {
		return ""
	}

	var b strings.Builder
	for i, clause := range ordered {
		b.WriteString(clause)
		b.WriteString(". ")
		if i == len(tables)-1 && i < len(ordered)-1 {
			b.WriteString("and ")
		}
	}
	return b.String()
}

// AddClause appends the clause (deduplicated by value) and recomposes the
// question's clause prefix around the preserved remainder.
func AddClause(clauses []string, question, clause string) ([]string, string) {
	for _, existing := range clauses {
		if existing == clause {
			return clauses, question
		}
	}
	clauses = append(clauses, clause)
	return clauses, ComposeClauses(clauses) + StripClausePrefix(question)
}

// RemoveClause drops one clause and recomposes the prefix from the
// remaining clauses, so removing a clause disturbs none of the others.
func RemoveClause(clauses []string, question, clause string) ([]string, string) {
	kept := make([]string, 0, len(clauses))
	for _, existing := range clauses {
		if existing != clause {
			kept = append(kept, existing)
		}
	}
	return kept, ComposeClauses(kept) + StripClausePrefix(question)
}

// ClearClauses empties the clause list and strips the whole clause prefix
// from the question in one pass.
func ClearClauses(question string) ([]string, string) {
	return nil, StripClausePrefix(question)
}
