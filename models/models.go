package models

// Phase is the current state of the generate→execute protocol for the
// active question.
type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseGenerating           Phase = "generating"
	PhaseClarificationPending Phase = "clarification_pending"
	PhaseExecuting            Phase = "executing"
	PhaseConfirmationPending  Phase = "confirmation_pending"
	PhaseResultsReady         Phase = "results_ready"
	PhaseFailed               Phase = "failed"
)

// DatasetHandle is the client's reference to a selected, possibly-registered
// dataset file. OwnsRemoteDatabase is true when registering the dataset
// created a new backing database, which means removal must drop it.
type DatasetHandle struct {
	Filename           string `json:"filename"`
	Size               int64  `json:"size"`
	Registered         bool   `json:"registered"`
	OwnsRemoteDatabase bool   `json:"owns_remote_database"`
}

// Credentials are the connection credentials forwarded to the upload and
// remove collaborators. Never persisted beyond the in-memory session.
type Credentials struct {
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type ColumnSchema struct {
	Name    string   `json:"name"`
	Samples []string `json:"samples"`
}

type TableSchema struct {
	Name    string         `json:"name"`
	Columns []ColumnSchema `json:"columns"`
}

// SchemaIndex is the normalized table/column/sample-value metadata for a
// registered dataset. Empty until a dataset is registered, replaced
// wholesale on each registration, cleared on removal.
type SchemaIndex struct {
	Tables []TableSchema `json:"tables"`
}

func (s SchemaIndex) Empty() bool {
	return len(s.Tables) == 0
}

// SortSpec is the result-table sort state. An empty Column means no
// reordering. This is the only state that survives across sessions.
type SortSpec struct {
	Column    string `json:"column"`
	Direction string `json:"direction"` // "asc" or "desc"
}

// QuerySession is the snapshot of one user's workbench session as exposed
// to the frontend.
type QuerySession struct {
	ID             string                   `json:"id"`
	Question       string                   `json:"question"`
	Phase          Phase                    `json:"phase"`
	GeneratedSQL   string                   `json:"generated_sql,omitempty"`
	ResultRows     []map[string]interface{} `json:"result_rows,omitempty"`
	PendingMessage string                   `json:"pending_message,omitempty"`
	LastError      string                   `json:"last_error,omitempty"`
	Clauses        []string                 `json:"clauses"`
	Dataset        *DatasetHandle           `json:"dataset,omitempty"`
}

// UploadResult is the upload/remove collaborator success payload.
type UploadResult struct {
	Message            string `json:"message"`
	Database           string `json:"database,omitempty"`
	NewDatabaseCreated bool   `json:"newDatabaseCreated"`
}

// GenerateResult is the tagged union returned by the generate-query
// collaborator: type is "sql", "clarification" or "error".
type GenerateResult struct {
	Type    string `json:"type"`
	Query   string `json:"query,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	GenerateTypeSQL           = "sql"
	GenerateTypeClarification = "clarification"
	GenerateTypeError         = "error"
)

// ExecuteResult is the parsed execute-query collaborator payload. Exactly
// one of Rows or Confirmation is meaningful; both empty means the payload
// was non-tabular and the result table is suppressed.
type ExecuteResult struct {
	Rows         []map[string]interface{} `json:"rows,omitempty"`
	Confirmation string                   `json:"confirmation,omitempty"`
}

// QueryHistoryEntry records one successfully generated query.
type QueryHistoryEntry struct {
	Question  string `json:"question"`
	SQL       string `json:"sql"`
	Timestamp string `json:"timestamp"`
}
