package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-fi/NL2SQL/models"
)

func TestBuildSchemaIndex(t *testing.T) {
	preview := map[string]map[string][]interface{}{
		"sales": {
			"total":  {5.0, 1500.5},
			"region": {"west", "east"},
		},
		"customers": {
			"name": {"alice", nil, "bob"},
		},
	}

	index := BuildSchemaIndex(preview)

	require.Len(t, index.Tables, 2)

	// Tables and columns come back alphabetized so the suggestion corpus
	// is stable between fetches.
	assert.Equal(t, "customers", index.Tables[0].Name)
	assert.Equal(t, "sales", index.Tables[1].Name)

	sales := index.Tables[1]
	require.Len(t, sales.Columns, 2)
	assert.Equal(t, "region", sales.Columns[0].Name)
	assert.Equal(t, []string{"west", "east"}, sales.Columns[0].Samples)
	assert.Equal(t, "total", sales.Columns[1].Name)
	assert.Equal(t, []string{"5", "1500.5"}, sales.Columns[1].Samples)

	// Null samples are dropped, not rendered.
	assert.Equal(t, []string{"alice", "bob"}, index.Tables[0].Columns[0].Samples)
}

func TestBuildSchemaIndexEmpty(t *testing.T) {
	index := BuildSchemaIndex(nil)

	assert.True(t, index.Empty())
}
