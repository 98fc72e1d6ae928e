package service

import (
	"fmt"
	"sort"

	"github.com/David-fi/NL2SQL/models"
)

// BuildSchemaIndex normalizes a schema-preview payload into the ordered
// index the autocomplete engine and filter sidebar consume. JSON objects
// carry no order, so tables and columns are alphabetized to keep the
// suggestion corpus stable between fetches.
func BuildSchemaIndex(preview map[string]map[string][]interface{}) models.SchemaIndex {
	var index models.SchemaIndex

	tableNames := make([]string, 0, len(preview))
	for name := range preview {
		tableNames = append(tableNames, name)
	}
	sort.Strings(tableNames)

	for _, tableName := range tableNames {
		columns := preview[tableName]
		columnNames := make([]string, 0, len(columns))
		for name := range columns {
			columnNames = append(columnNames, name)
		}
		sort.Strings(columnNames)

		table := models.TableSchema{Name: tableName}
		for _, columnName := range columnNames {
			column := models.ColumnSchema{Name: columnName}
			for _, sample := range columns[columnName] {
				if sample == nil {
					continue
				}
				column.Samples = append(column.Samples, fmt.Sprintf("%v", sample))
			}
			table.Columns = append(table.Columns, column)
		}
		index.Tables = append(index.Tables, table)
	}

	return index
}
