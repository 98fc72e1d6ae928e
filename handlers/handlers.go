package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/David-fi/NL2SQL/client"
	"github.com/David-fi/NL2SQL/db"
	"github.com/David-fi/NL2SQL/service"
)

// @title           NL2SQL Workbench API
// @version         1.0
// @description     Interactive NL2SQL query workbench - upload a dataset, ask questions in natural language, review and export the executed results

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9090
// @BasePath  /

// @schemes   http https

type Handlers struct {
	workbench *service.Workbench
	store     *db.DB
	exports   *service.ExportStorage
}

func New(workbench *service.Workbench, store *db.DB, exports *service.ExportStorage) *Handlers {
	return &Handlers{
		workbench: workbench,
		store:     store,
		exports:   exports,
	}
}

// userID resolves the caller's identity from the X-User-ID header; browser
// sessions that never set one share the default workbench.
func userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "default"
}

func (h *Handlers) session(c *gin.Context) *service.Session {
	return h.workbench.Session(userID(c))
}

// respondError maps the workbench error taxonomy onto HTTP status codes:
// validation 400, busy gate 409, collaborator failures 502.
func respondError(c *gin.Context, err error) {
	var verr service.ValidationError
	var cerr *client.CollaboratorError
	switch {
	case errors.Is(err, service.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &cerr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// HealthHandler checks the health status of the service
// @Summary      Health check
// @Description  Check the health status of the workbench and its stores
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string  "Service health status"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"store":  "connected",
	})
}
