package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-fi/NL2SQL/models"
)

func sampleRows() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "carol", "total": 1500.5},
		{"name": "alice", "total": 20.0},
		{"name": "bob", "total": 300.0},
	}
}

func TestColumnsAlphabetized(t *testing.T) {
	assert.Equal(t, []string{"name", "total"}, Columns(sampleRows()))
}

func TestColumnsEmptyResult(t *testing.T) {
	assert.Nil(t, Columns(nil))
	assert.Nil(t, Columns([]map[string]interface{}{}))
}

func TestFilterRows(t *testing.T) {
	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{"no filters", nil, []string{"carol", "alice", "bob"}},
		{"empty patterns ignored", map[string]string{"name": ""}, []string{"carol", "alice", "bob"}},
		{"substring match", map[string]string{"name": "ol"}, []string{"carol"}},
		{"case insensitive", map[string]string{"name": "ALI"}, []string{"alice"}},
		{"all columns must match", map[string]string{"name": "o", "total": "300"}, []string{"bob"}},
		{"no match", map[string]string{"name": "zed"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept := FilterRows(sampleRows(), tt.filters)
			var names []string
			for _, row := range kept {
				names = append(names, row["name"].(string))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterRowsTreatsNullAsEmpty(t *testing.T) {
	rows := []map[string]interface{}{
		{"name": nil},
		{"name": "bob"},
	}

	kept := FilterRows(rows, map[string]string{"name": "b"})

	require.Len(t, kept, 1)
	assert.Equal(t, "bob", kept[0]["name"])
}

func TestSortRowsNumeric(t *testing.T) {
	asc := SortRows(sampleRows(), models.SortSpec{Column: "total", Direction: "asc"})
	desc := SortRows(sampleRows(), models.SortSpec{Column: "total", Direction: "desc"})

	assert.Equal(t, 20.0, asc[0]["total"])
	assert.Equal(t, 1500.5, asc[2]["total"])

	// Descending is the exact reverse of ascending.
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestSortRowsText(t *testing.T) {
	sorted := SortRows(sampleRows(), models.SortSpec{Column: "name", Direction: "asc"})

	assert.Equal(t, "alice", sorted[0]["name"])
	assert.Equal(t, "bob", sorted[1]["name"])
	assert.Equal(t, "carol", sorted[2]["name"])
}

func TestSortRowsNoColumnKeepsOrder(t *testing.T) {
	sorted := SortRows(sampleRows(), models.SortSpec{})

	assert.Equal(t, "carol", sorted[0]["name"])
}

func TestSortRowsDoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	SortRows(rows, models.SortSpec{Column: "name", Direction: "asc"})

	assert.Equal(t, "carol", rows[0]["name"])
}

func TestToggleSort(t *testing.T) {
	tests := []struct {
		name   string
		spec   models.SortSpec
		column string
		want   models.SortSpec
	}{
		{"fresh column starts ascending", models.SortSpec{}, "total", models.SortSpec{Column: "total", Direction: "asc"}},
		{"same ascending flips", models.SortSpec{Column: "total", Direction: "asc"}, "total", models.SortSpec{Column: "total", Direction: "desc"}},
		{"same descending restarts ascending", models.SortSpec{Column: "total", Direction: "desc"}, "total", models.SortSpec{Column: "total", Direction: "asc"}},
		{"other column starts ascending", models.SortSpec{Column: "total", Direction: "asc"}, "name", models.SortSpec{Column: "name", Direction: "asc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToggleSort(tt.spec, tt.column))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"null", nil, ""},
		{"thousands separator", 1500.5, "1,500.5"},
		{"millions", 2000000.0, "2,000,000"},
		{"fraction digits capped", 3.14159, "3.14"},
		{"integer", 42, "42"},
		{"string capitalized", "bob", "Bob"},
		{"already capitalized", "Bob", "Bob"},
		{"iso date", "2023-01-15", "Jan 15, 2023"},
		{"us date", "01/15/2023", "Jan 15, 2023"},
		{"numeric string stays verbatim", "20230115", "20230115"},
		{"bool renders plainly", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestRenderValue(t *testing.T) {
	assert.Equal(t, "", RenderValue(nil))
	assert.Equal(t, "1500.5", RenderValue(1500.5))
	assert.Equal(t, "bob", RenderValue("bob"))
}

func TestTableView(t *testing.T) {
	columns, rows := TableView(sampleRows(), map[string]string{"name": "o"}, models.SortSpec{Column: "total", Direction: "asc"}, true)

	assert.Equal(t, []string{"name", "total"}, columns)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Bob", "300"}, rows[0])
	assert.Equal(t, []string{"Carol", "1,500.5"}, rows[1])
}

func TestTableViewRaw(t *testing.T) {
	columns, rows := TableView(sampleRows(), nil, models.SortSpec{Column: "name", Direction: "asc"}, false)

	assert.Equal(t, []string{"name", "total"}, columns)
	assert.Equal(t, []string{"alice", "20"}, rows[0])
}

func TestTableViewEmptySuppressed(t *testing.T) {
	columns, rows := TableView(nil, nil, models.SortSpec{}, true)

	assert.Nil(t, columns)
	assert.Nil(t, rows)
}

func TestExportCSV(t *testing.T) {
	rows := []map[string]interface{}{
		{"name": `ann "a", jr`, "total": 5.0},
		{"name": nil, "total": 20.0},
	}

	csv := ExportCSV(rows, nil, models.SortSpec{Column: "total", Direction: "asc"})

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"name","total"`, lines[0])
	assert.Equal(t, `"ann ""a"", jr","5"`, lines[1])
	assert.Equal(t, `"","20"`, lines[2])
}

func TestExportCSVHeaderIgnoresFilters(t *testing.T) {
	// Filters narrow the rows but never the header.
	csv := ExportCSV(sampleRows(), map[string]string{"name": "zed"}, models.SortSpec{})

	assert.Equal(t, "\"name\",\"total\"\n", csv)
}

func TestExportCSVNothingToExport(t *testing.T) {
	assert.Equal(t, "", ExportCSV(nil, nil, models.SortSpec{}))
}
