package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/David-fi/NL2SQL/models"
)

// SelectDatasetHandler attaches a dataset file to the session
// @Summary      Select a dataset file
// @Description  Replace the current dataset handle with an unregistered one wrapping the uploaded file. No collaborator is contacted yet.
// @Tags         Dataset
// @Accept       multipart/form-data
// @Produce      json
// @Param        dataset  formData  file  true  "Dataset file (.json, .jsonl, .csv)"
// @Success      200      {object}  models.QuerySession
// @Failure      400      {object}  map[string]string  "No file provided"
// @Failure      409      {object}  map[string]string  "Another operation is in progress"
// @Router       /api/dataset [post]
func (h *Handlers) SelectDatasetHandler(c *gin.Context) {
	file, err := c.FormFile("dataset")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No dataset file provided"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	sess := h.session(c)
	if err := sess.SelectFile(file.Filename, content); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

type uploadRequest struct {
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// UploadDatasetHandler registers the selected dataset with the backend
// @Summary      Upload the selected dataset
// @Description  Send the selected file and connection credentials to the upload collaborator, then fetch the schema preview
// @Tags         Dataset
// @Accept       json
// @Produce      json
// @Param        request  body      uploadRequest  false  "Connection credentials (defaults apply when omitted)"
// @Success      200      {object}  models.UploadResult
// @Failure      400      {object}  map[string]string  "No dataset selected"
// @Failure      409      {object}  map[string]string  "Another operation is in progress"
// @Failure      502      {object}  map[string]string  "Upload collaborator failed"
// @Router       /api/dataset/upload [post]
func (h *Handlers) UploadDatasetHandler(c *gin.Context) {
	var req uploadRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.session(c).UploadDataset(models.Credentials{
		Host:     req.Host,
		User:     req.User,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type removeRequest struct {
	Host      string `json:"host"`
	User      string `json:"user"`
	Password  string `json:"password"`
	Confirmed bool   `json:"confirmed"`
}

// RemoveDatasetHandler detaches the registered dataset
// @Summary      Remove the registered dataset
// @Description  Ask the removal collaborator to detach the dataset; requires explicit confirmation because a database created by this system will be dropped
// @Tags         Dataset
// @Accept       json
// @Produce      json
// @Param        request  body      removeRequest  true  "Credentials plus the confirmation flag"
// @Success      200      {object}  models.UploadResult
// @Failure      400      {object}  map[string]string  "Nothing to remove or missing confirmation"
// @Failure      409      {object}  map[string]string  "Another operation is in progress"
// @Failure      502      {object}  map[string]string  "Removal collaborator failed"
// @Router       /api/dataset/remove [post]
func (h *Handlers) RemoveDatasetHandler(c *gin.Context) {
	var req removeRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.session(c).RemoveDataset(models.Credentials{
		Host:     req.Host,
		User:     req.User,
		Password: req.Password,
	}, req.Confirmed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetSchemaHandler returns the schema index for the registered dataset
// @Summary      Get the schema index
// @Description  Table, column and sample-value metadata for the registered dataset; empty until a dataset is registered
// @Tags         Dataset
// @Produce      json
// @Success      200  {object}  models.SchemaIndex
// @Router       /api/schema [get]
func (h *Handlers) GetSchemaHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).Schema())
}
