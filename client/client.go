package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/David-fi/NL2SQL/models"
)

// Client talks to the five backend collaborators: upload-dataset,
// remove-dataset, schema-preview, generate-query and execute-query.
type Client struct {
	baseURL    string
	httpClient *http.Client
	longClient *http.Client // uploads and generation may take longer
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		longClient: &http.Client{Timeout: 180 * time.Second},
	}
}

// CollaboratorError is a non-success response from a collaborator. Message
// is the structured error field when the body parses, the raw body text
// otherwise.
type CollaboratorError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *CollaboratorError) Error() string {
	return e.Message
}

// errorMessage extracts the best available message from a non-success body:
// structured {"error"} or {"type":"error","message"} first, raw text as the
// fallback so an HTML or plain-text body never crashes the pipeline.
func errorMessage(data []byte, statusCode int) string {
	var structured struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &structured); err == nil {
		if structured.Error != "" {
			return structured.Error
		}
		if structured.Message != "" {
			return structured.Message
		}
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return fmt.Sprintf("collaborator returned status %d", statusCode)
}

func (c *Client) postMultipart(client *http.Client, endpoint string, fields map[string]string, filename string, content []byte) ([]byte, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	part, err := w.CreateFormFile("dataset", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &CollaboratorError{Endpoint: endpoint, Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
	}
	return data, nil
}

// Upload sends the dataset file and connection credentials to the upload
// collaborator and reports whether a new backing database was created.
func (c *Client) Upload(filename string, content []byte, creds models.Credentials) (*models.UploadResult, error) {
	fields := map[string]string{
		"host":     creds.Host,
		"user":     creds.User,
		"password": creds.Password,
	}
	data, err := c.postMultipart(c.longClient, "/api/upload-dataset", fields, filename, content)
	if err != nil {
		return nil, err
	}

	var out models.UploadResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("upload-dataset returned unexpected payload: %w", err)
	}
	return &out, nil
}

// Remove asks the removal collaborator to detach the dataset, dropping the
// backing database only when this system created it.
func (c *Client) Remove(filename string, content []byte, creds models.Credentials, newDatabaseCreated bool) (*models.UploadResult, error) {
	fields := map[string]string{
		"host":               creds.Host,
		"user":               creds.User,
		"password":           creds.Password,
		"newDatabaseCreated": strconv.FormatBool(newDatabaseCreated),
	}
	data, err := c.postMultipart(c.httpClient, "/api/remove-dataset", fields, filename, content)
	if err != nil {
		return nil, err
	}

	var out models.UploadResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("remove-dataset returned unexpected payload: %w", err)
	}
	return &out, nil
}

// SchemaPreview fetches table→column→sample-value metadata for a dataset.
func (c *Client) SchemaPreview(filename string, content []byte) (map[string]map[string][]interface{}, error) {
	data, err := c.postMultipart(c.httpClient, "/api/schema-preview", nil, filename, content)
	if err != nil {
		return nil, err
	}

	var preview map[string]map[string][]interface{}
	if err := json.Unmarshal(data, &preview); err != nil {
		return nil, fmt.Errorf("schema-preview returned unexpected payload: %w", err)
	}
	return preview, nil
}

// GenerateQuery sends the dataset and question to the generation
// collaborator. The response is a tagged union: sql, clarification or error.
func (c *Client) GenerateQuery(filename string, content []byte, question string) (*models.GenerateResult, error) {
	fields := map[string]string{"question": question}
	data, err := c.postMultipart(c.longClient, "/api/generate-query", fields, filename, content)
	if err != nil {
		return nil, err
	}

	var out models.GenerateResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("generate-query returned unexpected payload: %w", err)
	}
	if out.Type == "" && out.Query != "" {
		// Older backends return a bare {"query": ...}.
		out.Type = models.GenerateTypeSQL
	}
	return &out, nil
}

// ExecuteQuery runs a generated query. A success payload is either a
// tabular record sequence or a {type:"confirmation"} gate for dangerous
// queries; confirmed repeats the execution past that gate.
func (c *Client) ExecuteQuery(query string, confirmed bool) (*models.ExecuteResult, error) {
	reqBody := struct {
		Query     string `json:"query"`
		Confirmed bool   `json:"confirmed,omitempty"`
	}{Query: query, Confirmed: confirmed}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/execute-query", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &CollaboratorError{Endpoint: "/api/execute-query", Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
	}

	var out struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("execute-query returned unexpected payload: %w", err)
	}
	return parseResults(out.Results), nil
}

// parseResults maps the raw results payload onto ExecuteResult. Anything
// that is neither a confirmation gate nor a record sequence yields an empty
// result, which suppresses the table.
func parseResults(raw json.RawMessage) *models.ExecuteResult {
	if len(raw) == 0 {
		return &models.ExecuteResult{}
	}

	var gate struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &gate); err == nil && gate.Type == "confirmation" {
		return &models.ExecuteResult{Confirmation: gate.Message}
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(raw, &rows); err == nil {
		return &models.ExecuteResult{Rows: rows}
	}
	return &models.ExecuteResult{}
}
