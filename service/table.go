package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/David-fi/NL2SQL/models"
)

var localePrinter = message.NewPrinter(language.English)

// dateLayouts are the formats a string value may use to count as a
// calendar date for display formatting.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"January 2, 2006",
}

// Columns derives the header from the first record. JSON objects carry no
// order, so column names are alphabetized. An empty or non-tabular result
// yields no header, which suppresses the table.
func Columns(rows []map[string]interface{}) []string {
	if len(rows) == 0 {
		return nil
	}
	columns := make([]string, 0, len(rows[0]))
	for name := range rows[0] {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns
}

// FilterRows keeps a record iff every column with a non-empty pattern
// contains it, case-insensitively, in the value's text rendering. Absent
// and null values filter as empty strings.
func FilterRows(rows []map[string]interface{}, filters map[string]string) []map[string]interface{} {
	active := make(map[string]string)
	for column, pattern := range filters {
		if pattern != "" {
			active[column] = strings.ToLower(pattern)
		}
	}
	if len(active) == 0 {
		return rows
	}

	var kept []map[string]interface{}
	for _, row := range rows {
		match := true
		for column, pattern := range active {
			if !strings.Contains(strings.ToLower(RenderValue(row[column])), pattern) {
				match = false
				break
			}
		}
		if match {
			kept = append(kept, row)
		}
	}
	return kept
}

// SortRows returns a stably sorted copy: numeric values compare
// numerically, everything else by text rendering. An empty sort column
// performs no reordering.
func SortRows(rows []map[string]interface{}, spec models.SortSpec) []map[string]interface{} {
	sorted := make([]map[string]interface{}, len(rows))
	copy(sorted, rows)
	if spec.Column == "" {
		return sorted
	}

	desc := spec.Direction == "desc"
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i][spec.Column], sorted[j][spec.Column]
		if desc {
			return lessValue(b, a)
		}
		return lessValue(a, b)
	})
	return sorted
}

func lessValue(a, b interface{}) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af < bf
	}
	return RenderValue(a) < RenderValue(b)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ToggleSort implements the header click: same column currently ascending
// flips to descending, anything else starts ascending.
func ToggleSort(spec models.SortSpec, column string) models.SortSpec {
	if spec.Column == column && spec.Direction == "asc" {
		return models.SortSpec{Column: column, Direction: "desc"}
	}
	return models.SortSpec{Column: column, Direction: "asc"}
}

// RenderValue is the plain text rendering used by filtering, sorting and
// export. Null renders as the empty string.
func RenderValue(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// FormatValue is the display rendering: numbers get locale thousands
// separators with at most two fraction digits, date-looking strings an
// abbreviated human date, other strings a capitalized first letter.
func FormatValue(v interface{}) string {
	if v == nil {
		return ""
	}
	if f, ok := asFloat(v); ok {
		return localePrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
	}
	s, ok := v.(string)
	if !ok {
		return RenderValue(v)
	}
	if formatted, ok := formatDate(s); ok {
		return formatted
	}
	return capitalize(s)
}

// formatDate renders strings that parse unambiguously as a calendar date.
// Purely numeric strings stay untouched so IDs are not mistaken for dates.
func formatDate(s string) (string, bool) {
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006"), true
		}
	}
	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// TableView applies the fixed render pipeline: filter, then sort, then
// (optionally) format. Rows come back as cell slices in column order.
func TableView(rows []map[string]interface{}, filters map[string]string, spec models.SortSpec, formatted bool) ([]string, [][]string) {
	columns := Columns(rows)
	if columns == nil {
		return nil, nil
	}

	visible := SortRows(FilterRows(rows, filters), spec)
	rendered := make([][]string, 0, len(visible))
	for _, row := range visible {
		cells := make([]string, len(columns))
		for i, column := range columns {
			if formatted {
				cells[i] = FormatValue(row[column])
			} else {
				cells[i] = RenderValue(row[column])
			}
		}
		rendered = append(rendered, cells)
	}
	return columns, rendered
}

// ExportCSV serializes the unfiltered header followed by the rows in
// current filtered+sorted order. Every field is double-quoted with
// internal quotes doubled so the export round-trips exactly.
func ExportCSV(rows []map[string]interface{}, filters map[string]string, spec models.SortSpec) string {
	columns := Columns(rows)
	if columns == nil {
		return ""
	}

	var b strings.Builder
	writeCSVLine(&b, columns)
	for _, row := range SortRows(FilterRows(rows, filters), spec) {
		cells := make([]string, len(columns))
		for i, column := range columns {
			cells[i] = RenderValue(row[column])
		}
		writeCSVLine(&b, cells)
	}
	return b.String()
}

func writeCSVLine(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`"`)
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteString(`"`)
	}
	b.WriteString("\n")
}
