package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetTableHandler renders the current result table
// @Summary      Get the result table
// @Description  The current result set after the fixed filter→sort→format pipeline. An empty response means there is no tabular result to show.
// @Tags         Table
// @Produce      json
// @Param        formatted  query     bool  false  "Apply locale-aware value formatting (default true)"
// @Success      200        {object}  map[string]interface{}  "columns and rows"
// @Router       /api/table [get]
func (h *Handlers) GetTableHandler(c *gin.Context) {
	formatted := true
	if v := c.Query("formatted"); v != "" {
		formatted, _ = strconv.ParseBool(v)
	}

	columns, rows := h.session(c).TableView(formatted)
	if columns == nil {
		// No header can be derived: suppress the table entirely.
		c.JSON(http.StatusOK, gin.H{"columns": []string{}, "rows": [][]string{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns, "rows": rows, "sort": h.workbench.SortSpec()})
}

type sortRequest struct {
	Column string `json:"column"`
}

// ToggleSortHandler applies a header click to the sort spec
// @Summary      Toggle the sort column
// @Description  Same column currently ascending flips to descending; anything else starts ascending. An empty column resets the sort. The sort spec is persisted and survives reloads.
// @Tags         Table
// @Accept       json
// @Produce      json
// @Param        request  body      sortRequest  true  "The clicked column, or empty to reset"
// @Success      200      {object}  models.SortSpec
// @Failure      500      {object}  map[string]string  "Failed to persist sort spec"
// @Router       /api/table/sort [post]
func (h *Handlers) ToggleSortHandler(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	spec, err := h.workbench.ToggleSortColumn(req.Column)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, spec)
}

type columnFiltersRequest struct {
	Filters map[string]string `json:"filters"`
}

// SetColumnFiltersHandler replaces the per-column substring filters
// @Summary      Set column filters
// @Description  Case-insensitive substring patterns applied per column; they reset whenever a new result set arrives
// @Tags         Table
// @Accept       json
// @Produce      json
// @Param        request  body      columnFiltersRequest  true  "Column name to pattern"
// @Success      200      {object}  map[string]interface{}  "columns and rows after filtering"
// @Router       /api/table/filters [put]
func (h *Handlers) SetColumnFiltersHandler(c *gin.Context) {
	var req columnFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sess := h.session(c)
	sess.SetColumnFilters(req.Filters)
	columns, rows := sess.TableView(true)
	if columns == nil {
		c.JSON(http.StatusOK, gin.H{"columns": []string{}, "rows": [][]string{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns, "rows": rows})
}

// ExportTableHandler downloads the result table as CSV
// @Summary      Export the result table
// @Description  Serialize the unfiltered header followed by the rows in current filtered+sorted order and offer the file for download
// @Tags         Table
// @Produce      text/csv
// @Success      200  {string}  string  "CSV content"
// @Failure      404  {object}  map[string]string  "No tabular result to export"
// @Router       /api/table/export [get]
func (h *Handlers) ExportTableHandler(c *gin.Context) {
	csv := h.session(c).ExportCSV()
	if csv == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No tabular result to export"})
		return
	}

	filename, err := h.exports.Save(csv)
	if err != nil {
		// The download still works even when the copy on disk fails.
		log.Printf("Warning: failed to save export: %v", err)
		filename = h.exports.GenerateFileName()
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}
