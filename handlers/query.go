package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/David-fi/NL2SQL/models"
)

type submitRequest struct {
	Question string `json:"question"`
}

// SubmitQueryHandler submits a natural-language question
// @Summary      Submit a question
// @Description  Drive the generate→clarify→confirm→execute protocol for the given question. The resulting session snapshot carries the outcome: generated SQL, result rows, a pending prompt or an error.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      submitRequest  true  "The natural-language question"
// @Success      200      {object}  models.QuerySession
// @Failure      400      {object}  map[string]string  "Validation failed before any collaborator call"
// @Failure      409      {object}  map[string]string  "Another operation is in progress"
// @Router       /api/query [post]
func (h *Handlers) SubmitQueryHandler(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sess := h.session(c)
	if err := sess.Submit(req.Question); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

type clarifyRequest struct {
	Answer string `json:"answer"`
}

// AnswerClarificationHandler answers a pending clarification
// @Summary      Answer a clarification
// @Description  Append the answer to the stored question and resubmit through the full pipeline
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      clarifyRequest  true  "The clarification answer"
// @Success      200      {object}  models.QuerySession
// @Failure      400      {object}  map[string]string  "No clarification is pending"
// @Failure      409      {object}  map[string]string  "Another operation is in progress"
// @Router       /api/query/clarify [post]
func (h *Handlers) AnswerClarificationHandler(c *gin.Context) {
	var req clarifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sess := h.session(c)
	if err := sess.AnswerClarification(req.Answer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// ConfirmQueryHandler confirms a dangerous query
// @Summary      Confirm a dangerous query
// @Description  Re-run the generated query past the confirmation gate with an explicit confirmed flag
// @Tags         Query
// @Produce      json
// @Success      200  {object}  models.QuerySession
// @Failure      400  {object}  map[string]string  "No confirmation is pending"
// @Failure      409  {object}  map[string]string  "Another operation is in progress"
// @Router       /api/query/confirm [post]
func (h *Handlers) ConfirmQueryHandler(c *gin.Context) {
	sess := h.session(c)
	if err := sess.ConfirmDangerousQuery(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// CancelQueryHandler abandons a pending clarification or confirmation
// @Summary      Cancel the pending prompt
// @Description  Discard the pending clarification or confirmation and return the session to idle
// @Tags         Query
// @Produce      json
// @Success      200  {object}  models.QuerySession
// @Failure      400  {object}  map[string]string  "Nothing to cancel"
// @Router       /api/query/cancel [post]
func (h *Handlers) CancelQueryHandler(c *gin.Context) {
	sess := h.session(c)
	if err := sess.Cancel(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// GetSessionHandler returns the current session snapshot
// @Summary      Get the session
// @Tags         Query
// @Produce      json
// @Success      200  {object}  models.QuerySession
// @Router       /api/session [get]
func (h *Handlers) GetSessionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).Snapshot())
}

type questionRequest struct {
	Text string `json:"text"`
}

// SetQuestionHandler replaces the free-text question
// @Summary      Edit the question text
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      questionRequest  true  "The question text"
// @Success      200      {object}  models.QuerySession
// @Router       /api/session/question [put]
func (h *Handlers) SetQuestionHandler(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sess := h.session(c)
	sess.SetQuestion(req.Text)
	c.JSON(http.StatusOK, sess.Snapshot())
}

// SuggestHandler returns autocomplete candidates
// @Summary      Autocomplete the in-progress token
// @Description  Ranked completion candidates for the last whitespace-delimited token of the input, drawn from the schema index
// @Tags         Query
// @Produce      json
// @Param        input    query     string  true   "Current question text"
// @Param        enabled  query     bool    false  "Autocomplete toggle (default true)"
// @Success      200      {object}  map[string][]string  "Suggestion list"
// @Router       /api/suggest [get]
func (h *Handlers) SuggestHandler(c *gin.Context) {
	input := c.Query("input")
	enabled := true
	if v := c.Query("enabled"); v != "" {
		enabled, _ = strconv.ParseBool(v)
	}

	suggestions := h.session(c).Suggest(input, enabled)
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

type tableFilterRequest struct {
	Table string `json:"table"`
}

type columnFilterRequest struct {
	Column string `json:"column"`
	Table  string `json:"table"`
}

type removeFilterRequest struct {
	Clause string `json:"clause"`
}

// AddTableFilterHandler appends a "From table …" clause
// @Summary      Add a table filter clause
// @Tags         Filters
// @Accept       json
// @Produce      json
// @Param        request  body      tableFilterRequest  true  "The table name"
// @Success      200      {object}  models.QuerySession
// @Router       /api/filters/table [post]
func (h *Handlers) AddTableFilterHandler(c *gin.Context) {
	var req tableFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Table == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table required"})
		return
	}
	c.JSON(http.StatusOK, h.session(c).AddTableFilter(req.Table))
}

// AddColumnFilterHandler appends an "In the column … of table …" clause
// @Summary      Add a column filter clause
// @Tags         Filters
// @Accept       json
// @Produce      json
// @Param        request  body      columnFilterRequest  true  "The column and its table"
// @Success      200      {object}  models.QuerySession
// @Router       /api/filters/column [post]
func (h *Handlers) AddColumnFilterHandler(c *gin.Context) {
	var req columnFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Column == "" || req.Table == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column and table required"})
		return
	}
	c.JSON(http.StatusOK, h.session(c).AddColumnFilter(req.Column, req.Table))
}

// RemoveFilterHandler removes one clause
// @Summary      Remove a filter clause
// @Tags         Filters
// @Accept       json
// @Produce      json
// @Param        request  body      removeFilterRequest  true  "The clause to remove, verbatim"
// @Success      200      {object}  models.QuerySession
// @Router       /api/filters/remove [post]
func (h *Handlers) RemoveFilterHandler(c *gin.Context) {
	var req removeFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Clause == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clause required"})
		return
	}
	c.JSON(http.StatusOK, h.session(c).RemoveFilter(req.Clause))
}

// ClearFiltersHandler removes every clause
// @Summary      Clear all filter clauses
// @Tags         Filters
// @Produce      json
// @Success      200  {object}  models.QuerySession
// @Router       /api/filters/clear [post]
func (h *Handlers) ClearFiltersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).ClearFilters())
}

// HistoryHandler lists previously generated queries
// @Summary      List query history
// @Description  The caller's successfully generated queries, newest first
// @Tags         Query
// @Produce      json
// @Success      200  {object}  map[string][]models.QueryHistoryEntry
// @Failure      500  {object}  map[string]string  "Failed to load history"
// @Router       /api/history [get]
func (h *Handlers) HistoryHandler(c *gin.Context) {
	entries, err := h.workbench.History(userID(c), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	if entries == nil {
		entries = []models.QueryHistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}
