package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/David-fi/NL2SQL/cache"
	"github.com/David-fi/NL2SQL/client"
	"github.com/David-fi/NL2SQL/config"
	"github.com/David-fi/NL2SQL/db"
	"github.com/David-fi/NL2SQL/models"
	"github.com/David-fi/NL2SQL/validation"
)

// ErrBusy means another dataset or query operation is still in flight.
// The busy gate is shared: an upload cannot race a submission.
var ErrBusy = errors.New("another operation is in progress")

// ValidationError is a precondition failure handled locally, before any
// collaborator call.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	errNoDataset       = ValidationError("Please upload a dataset file.")
	errNoQuestion      = ValidationError("Please enter a question.")
	errInvalidQuestion = ValidationError("The question appears to be invalid or gibberish. Please rephrase it.")
)

// Workbench owns all user sessions and the pieces they share: the
// collaborator client, the badger store (persisted sort spec, history) and
// the schema-preview cache.
type Workbench struct {
	mu       sync.Mutex
	sessions map[string]*Session

	backend      *client.Client
	store        *db.DB
	schemaCache  *cache.Cache
	defaultCreds models.Credentials
	suggestLimit int
}

func NewWorkbench(backend *client.Client, store *db.DB, schemaCache *cache.Cache, defaults config.DatabaseConfig, suggestLimit int) *Workbench {
	return &Workbench{
		sessions:    make(map[string]*Session),
		backend:     backend,
		store:       store,
		schemaCache: schemaCache,
		defaultCreds: models.Credentials{
			Host:     defaults.Host,
			User:     defaults.User,
			Password: defaults.Password,
		},
		suggestLimit: suggestLimit,
	}
}

// Session returns the user's workbench session, creating it on first use.
func (w *Workbench) Session(userID string) *Session {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.sessions[userID]; ok {
		return s
	}
	s := &Session{
		id:        uuid.New().String(),
		userID:    userID,
		workbench: w,
		phase:     models.PhaseIdle,
	}
	w.sessions[userID] = s
	return s
}

// SortSpec returns the persisted sort state; load failures degrade to the
// unsorted spec rather than breaking the table.
func (w *Workbench) SortSpec() models.SortSpec {
	spec, err := w.store.LoadSortSpec()
	if err != nil {
		log.Printf("Error loading sort spec: %v", err)
		return models.SortSpec{}
	}
	return spec
}

// ToggleSortColumn applies the header-click toggle and persists the result.
func (w *Workbench) ToggleSortColumn(column string) (models.SortSpec, error) {
	next := models.SortSpec{}
	if column != "" {
		next = ToggleSort(w.SortSpec(), column)
	}
	if err := w.store.SaveSortSpec(next); err != nil {
		return next, fmt.Errorf("failed to persist sort spec: %w", err)
	}
	return next, nil
}

// History returns the user's generated-query history, newest first.
func (w *Workbench) History(userID string, limit int) ([]models.QueryHistoryEntry, error) {
	return w.store.ListQueryHistory(userID, limit)
}

// Session is one user's interactive query session: the attached dataset,
// its schema index, the question under composition and the state of the
// generate→clarify→confirm→execute protocol.
type Session struct {
	mu   sync.Mutex
	busy bool

	id        string
	userID    string
	workbench *Workbench

	handle      *models.DatasetHandle
	fileContent []byte
	schema      models.SchemaIndex

	question       string
	phase          models.Phase
	generatedSQL   string
	resultRows     []map[string]interface{}
	pendingMessage string
	lastError      string

	clauses       []string
	columnFilters map[string]string
}

// begin claims the busy gate; every claiming operation must defer end.
func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Snapshot exposes the session state to the presentation layer.
func (s *Session) Snapshot() models.QuerySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.QuerySession{
		ID:             s.id,
		Question:       s.question,
		Phase:          s.phase,
		GeneratedSQL:   s.generatedSQL,
		ResultRows:     s.resultRows,
		PendingMessage: s.pendingMessage,
		LastError:      s.lastError,
		Clauses:        append([]string{}, s.clauses...),
	}
	if s.handle != nil {
		handle := *s.handle
		snap.Dataset = &handle
	}
	return snap
}

func (s *Session) Schema() models.SchemaIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schema
}

// Suggest recomputes autocomplete candidates for the current input.
// Read-only, so it bypasses the busy gate.
func (s *Session) Suggest(input string, enabled bool) []string {
	s.mu.Lock()
	index := s.schema
	s.mu.Unlock()
	return Suggest(input, enabled, index, s.workbench.suggestLimit)
}

// resetLocked clears the query session: question, outputs, errors and the
// filter state derived from them. Caller holds s.mu.
func (s *Session) resetLocked() {
	s.question = ""
	s.generatedSQL = ""
	s.resultRows = nil
	s.pendingMessage = ""
	s.lastError = ""
	s.phase = models.PhaseIdle
	s.clauses = nil
	s.columnFilters = nil
}

// SelectFile replaces the dataset handle with an unregistered one wrapping
// the chosen file. No network effect; the query session resets.
func (s *Session) SelectFile(filename string, content []byte) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.handle = &models.DatasetHandle{Filename: filename, Size: int64(len(content))}
	s.fileContent = content
	s.resetLocked()
	return nil
}

func (s *Session) fingerprint() string {
	return fmt.Sprintf("schema:%s:%d", s.handle.Filename, s.handle.Size)
}

func (w *Workbench) fillCredentials(creds models.Credentials) models.Credentials {
	if creds.Host == "" {
		creds.Host = w.defaultCreds.Host
	}
	if creds.User == "" {
		creds.User = w.defaultCreds.User
	}
	if creds.Password == "" {
		creds.Password = w.defaultCreds.Password
	}
	return creds
}

// UploadDataset registers the selected file with the upload collaborator.
// On success the handle is promoted and the schema index populated; on
// failure the handle is discarded so the user re-selects.
func (s *Session) UploadDataset(creds models.Credentials) (*models.UploadResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	s.mu.Lock()
	if s.handle == nil {
		s.mu.Unlock()
		return nil, ValidationError("No dataset file selected.")
	}
	if s.handle.Registered {
		s.mu.Unlock()
		return nil, ValidationError("Dataset is already uploaded.")
	}
	filename, content := s.handle.Filename, s.fileContent
	s.mu.Unlock()

	res, err := s.workbench.backend.Upload(filename, content, s.workbench.fillCredentials(creds))
	if err != nil {
		s.mu.Lock()
		s.handle = nil
		s.fileContent = nil
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.handle.Registered = true
	s.handle.OwnsRemoteDatabase = res.NewDatabaseCreated
	fingerprint := s.fingerprint()
	s.mu.Unlock()

	index, err := s.fetchSchemaIndex(fingerprint, filename, content)
	if err != nil {
		// The dataset is registered; a missing index only degrades
		// autocomplete and the filter sidebar.
		log.Printf("Warning: schema preview failed for %s: %v", filename, err)
		index = models.SchemaIndex{}
	}

	s.mu.Lock()
	s.schema = index
	s.mu.Unlock()
	return res, nil
}

func (s *Session) fetchSchemaIndex(fingerprint, filename string, content []byte) (models.SchemaIndex, error) {
	if cached, ok := s.workbench.schemaCache.Get(fingerprint); ok {
		if index, ok := cached.(models.SchemaIndex); ok {
			return index, nil
		}
	}
	preview, err := s.workbench.backend.SchemaPreview(filename, content)
	if err != nil {
		return models.SchemaIndex{}, err
	}
	index := BuildSchemaIndex(preview)
	s.workbench.schemaCache.SetDefault(fingerprint, index)
	return index, nil
}

// RemoveDataset detaches the registered dataset. confirmed is the explicit
// yes/no gate: removal may drop a database this system created. On failure
// the current state is preserved.
func (s *Session) RemoveDataset(creds models.Credentials, confirmed bool) (*models.UploadResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	s.mu.Lock()
	if s.handle == nil || !s.handle.Registered {
		s.mu.Unlock()
		return nil, ValidationError("No registered dataset to remove.")
	}
	if !confirmed {
		s.mu.Unlock()
		return nil, ValidationError("Dataset removal requires confirmation.")
	}
	filename, content := s.handle.Filename, s.fileContent
	ownsDatabase := s.handle.OwnsRemoteDatabase
	fingerprint := s.fingerprint()
	s.mu.Unlock()

	res, err := s.workbench.backend.Remove(filename, content, s.workbench.fillCredentials(creds), ownsDatabase)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.workbench.schemaCache.Delete(fingerprint)
	s.handle = nil
	s.fileContent = nil
	s.schema = models.SchemaIndex{}
	s.resetLocked()
	s.mu.Unlock()
	return res, nil
}

// Submit drives one full pass of the protocol. Validation failures return
// an error without touching the network; collaborator outcomes (including
// failures) land in the session state instead.
func (s *Session) Submit(question string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()
	return s.submit(question)
}

func (s *Session) submit(question string) error {
	s.mu.Lock()
	s.question = question
	registered := s.handle != nil && s.handle.Registered
	s.mu.Unlock()

	if !registered {
		return s.rejectLocally(errNoDataset)
	}
	if strings.TrimSpace(question) == "" {
		return s.rejectLocally(errNoQuestion)
	}
	if !validation.IsValidQuestion(question) {
		return s.rejectLocally(errInvalidQuestion)
	}

	s.mu.Lock()
	s.generatedSQL = ""
	s.resultRows = nil
	s.pendingMessage = ""
	s.lastError = ""
	s.phase = models.PhaseGenerating
	filename, content := s.handle.Filename, s.fileContent
	s.mu.Unlock()

	gen, err := s.workbench.backend.GenerateQuery(filename, content, question)
	if err != nil {
		s.fail(err.Error())
		return nil
	}

	switch gen.Type {
	case models.GenerateTypeClarification:
		s.mu.Lock()
		s.phase = models.PhaseClarificationPending
		s.pendingMessage = gen.Message
		s.mu.Unlock()
		return nil
	case models.GenerateTypeError:
		s.fail(gen.Message)
		return nil
	case models.GenerateTypeSQL:
		s.mu.Lock()
		s.generatedSQL = gen.Query
		s.phase = models.PhaseExecuting
		s.mu.Unlock()
		s.execute(false)
		return nil
	default:
		s.fail(fmt.Sprintf("generate-query returned unknown type %q", gen.Type))
		return nil
	}
}

func (s *Session) execute(confirmed bool) {
	s.mu.Lock()
	query := s.generatedSQL
	s.mu.Unlock()

	res, err := s.workbench.backend.ExecuteQuery(query, confirmed)
	if err != nil {
		s.fail(err.Error())
		return
	}

	if res.Confirmation != "" {
		s.mu.Lock()
		s.phase = models.PhaseConfirmationPending
		s.pendingMessage = res.Confirmation
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.resultRows = res.Rows
	s.pendingMessage = ""
	s.phase = models.PhaseResultsReady
	s.columnFilters = nil // per-column filters reset with every new result set
	question, sql := s.question, s.generatedSQL
	s.mu.Unlock()

	if err := s.workbench.store.StoreQueryHistory(s.userID, question, sql); err != nil {
		log.Printf("Error storing query history: %v", err)
	}
}

// rejectLocally records a validation failure inline and hands it back to
// the caller; the protocol phase is untouched and nothing hits the network.
func (s *Session) rejectLocally(err ValidationError) error {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
	return err
}

func (s *Session) fail(message string) {
	s.mu.Lock()
	s.phase = models.PhaseFailed
	s.lastError = message
	s.pendingMessage = ""
	s.mu.Unlock()
}

// AnswerClarification appends the answer to the stored question and
// resubmits through the full generate→execute pipeline.
func (s *Session) AnswerClarification(answer string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if strings.TrimSpace(answer) == "" {
		return ValidationError("Please enter an answer.")
	}

	s.mu.Lock()
	if s.phase != models.PhaseClarificationPending {
		s.mu.Unlock()
		return ValidationError("No clarification is pending.")
	}
	question := s.question + " " + answer
	s.pendingMessage = ""
	s.mu.Unlock()

	return s.submit(question)
}

// ConfirmDangerousQuery re-runs the generated query past the confirmation
// gate with an explicit confirmed flag.
func (s *Session) ConfirmDangerousQuery() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	if s.phase != models.PhaseConfirmationPending {
		s.mu.Unlock()
		return ValidationError("No confirmation is pending.")
	}
	s.pendingMessage = ""
	s.phase = models.PhaseExecuting
	s.mu.Unlock()

	s.execute(true)
	return nil
}

// Cancel abandons a pending clarification or confirmation and resets the
// session to idle. No collaborator call is made or aborted.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseClarificationPending && s.phase != models.PhaseConfirmationPending {
		return ValidationError("Nothing to cancel.")
	}
	s.resetLocked()
	return nil
}

// SetQuestion replaces the free-text question. Hand edits that mimic a
// clause are reconciled by literal text matching only; see the filter
// composition notes.
func (s *Session) SetQuestion(text string) {
	s.mu.Lock()
	s.question = text
	s.mu.Unlock()
}

func (s *Session) AddTableFilter(table string) models.QuerySession {
	s.mu.Lock()
	s.clauses, s.question = AddClause(s.clauses, s.question, TableClause(table))
	s.mu.Unlock()
	return s.Snapshot()
}

func (s *Session) AddColumnFilter(column, table string) models.QuerySession {
	s.mu.Lock()
	s.clauses, s.question = AddClause(s.clauses, s.question, ColumnClause(column, table))
	s.mu.Unlock()
	return s.Snapshot()
}

func (s *Session) RemoveFilter(clause string) models.QuerySession {
	s.mu.Lock()
	s.clauses, s.question = RemoveClause(s.clauses, s.question, clause)
	s.mu.Unlock()
	return s.Snapshot()
}

func (s *Session) ClearFilters() models.QuerySession {
	s.mu.Lock()
	s.clauses, s.question = ClearClauses(s.question)
	s.mu.Unlock()
	return s.Snapshot()
}

// SetColumnFilters replaces the per-column substring patterns.
func (s *Session) SetColumnFilters(filters map[string]string) {
	s.mu.Lock()
	s.columnFilters = filters
	s.mu.Unlock()
}

func (s *Session) ColumnFilters() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	filters := make(map[string]string, len(s.columnFilters))
	for k, v := range s.columnFilters {
		filters[k] = v
	}
	return filters
}

// TableView renders the current result set through the fixed
// filter→sort→format pipeline.
func (s *Session) TableView(formatted bool) ([]string, [][]string) {
	s.mu.Lock()
	rows, filters := s.resultRows, s.columnFilters
	s.mu.Unlock()
	return TableView(rows, filters, s.workbench.SortSpec(), formatted)
}

// ExportCSV serializes the current filtered+sorted result set.
func (s *Session) ExportCSV() string {
	s.mu.Lock()
	rows, filters := s.resultRows, s.columnFilters
	s.mu.Unlock()
	return ExportCSV(rows, filters, s.workbench.SortSpec())
}
