package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClauseTemplates(t *testing.T) {
	assert.Equal(t, "From table sales", TableClause("sales"))
	assert.Equal(t, "In the column region of table sales", ColumnClause("region", "sales"))
}

func TestAddClauseComposesPrefix(t *testing.T) {
	clauses, question := AddClause(nil, "how many rows?", TableClause("sales"))

	assert.Equal(t, []string{"From table sales"}, clauses)
	assert.Equal(t, "From table sales. how many rows?", question)
}

func TestAddClauseGroupSeparator(t *testing.T) {
	var clauses []string
	question := "total per region"

	clauses, question = AddClause(clauses, question, TableClause("sales"))
	clauses, question = AddClause(clauses, question, TableClause("returns"))
	clauses, question = AddClause(clauses, question, ColumnClause("region", "sales"))

	assert.Equal(t, "From table sales. From table returns. and In the column region of table sales. total per region", question)
}

func TestAddClauseDeduplicates(t *testing.T) {
	clauses, question := AddClause(nil, "q", TableClause("sales"))
	again, unchanged := AddClause(clauses, question, TableClause("sales"))

	assert.Equal(t, clauses, again)
	assert.Equal(t, question, unchanged)
}

func TestAddThenRemoveRoundTrips(t *testing.T) {
	tests := []struct {
		name     string
		question string
	}{
		{"plain question", "how many rows?"},
		{"empty question", ""},
		{"trailing space preserved", "count them "},
		{"question starting with and", "and what about refunds?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause := TableClause("sales")
			clauses, question := AddClause(nil, tt.question, clause)
			_, restored := RemoveClause(clauses, question, clause)

			assert.Equal(t, tt.question, restored)
		})
	}
}

func TestRemoveClauseKeepsOthers(t *testing.T) {
	var clauses []string
	question := "average amount"

	clauses, question = AddClause(clauses, question, TableClause("sales"))
	clauses, question = AddClause(clauses, question, ColumnClause("amount", "sales"))
	clauses, question = RemoveClause(clauses, question, ColumnClause("amount", "sales"))

	assert.Equal(t, []string{"From table sales"}, clauses)
	assert.Equal(t, "From table sales. average amount", question)
}

func TestClearClausesLeavesNoResidue(t *testing.T) {
	var clauses []string
	question := "what changed?"

	clauses, question = AddClause(clauses, question, TableClause("sales"))
	clauses, question = AddClause(clauses, question, TableClause("customers"))
	clauses, question = AddClause(clauses, question, ColumnClause("name", "customers"))
	clauses, question = RemoveClause(clauses, question, TableClause("sales"))

	clauses, question = ClearClauses(question)

	assert.Empty(t, clauses)
	assert.Equal(t, "what changed?", question)
	assert.NotContains(t, question, "From table")
	assert.NotContains(t, question, "In the column")
}

func TestComposeReproducesQuestionPrefix(t *testing.T) {
	// The stored clause list must always reproduce the clause prefix
	// present in the question.
	var clauses []string
	question := "top ten?"

	clauses, question = AddClause(clauses, question, ColumnClause("region", "sales"))
	clauses, question = AddClause(clauses, question, TableClause("sales"))

	assert.Equal(t, ComposeClauses(clauses)+"top ten?", question)
}

func TestStripClausePrefixIgnoresHandWrittenBody(t *testing.T) {
	q := "From table sales. and then what happened?"
	// "and then..." is the user's own wording, not a clause separator.
	assert.Equal(t, "and then what happened?", StripClausePrefix(q))
}
