package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/David-fi/NL2SQL/cache"
	"github.com/David-fi/NL2SQL/client"
	"github.com/David-fi/NL2SQL/config"
	"github.com/David-fi/NL2SQL/db"
	_ "github.com/David-fi/NL2SQL/docs" // Swagger docs
	"github.com/David-fi/NL2SQL/handlers"
	"github.com/David-fi/NL2SQL/service"
)

func main() {
	cfg := config.GetConfig()

	// Initialize database (persisted sort spec, query history)
	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize schema-preview cache
	schemaCache := cache.New()

	// Initialize the collaborator client (upload, remove, schema-preview,
	// generate-query, execute-query)
	backend := client.New(cfg.BackendAPIBase)

	workbench := service.NewWorkbench(backend, database, schemaCache, cfg.Database, cfg.SuggestLimit)

	exports, err := service.NewExportStorage(cfg.ExportsDir)
	if err != nil {
		log.Fatalf("Failed to initialize export storage: %v", err)
	}

	h := handlers.New(workbench, database, exports)

	// Setup Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Accept", "Origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Routes
	r.GET("/health", h.HealthHandler)

	r.POST("/api/dataset", h.SelectDatasetHandler)
	r.POST("/api/dataset/upload", h.UploadDatasetHandler)
	r.POST("/api/dataset/remove", h.RemoveDatasetHandler)
	r.GET("/api/schema", h.GetSchemaHandler)

	r.GET("/api/session", h.GetSessionHandler)
	r.PUT("/api/session/question", h.SetQuestionHandler)
	r.POST("/api/query", h.SubmitQueryHandler)
	r.POST("/api/query/clarify", h.AnswerClarificationHandler)
	r.POST("/api/query/confirm", h.ConfirmQueryHandler)
	r.POST("/api/query/cancel", h.CancelQueryHandler)
	r.GET("/api/suggest", h.SuggestHandler)
	r.GET("/api/history", h.HistoryHandler)

	r.POST("/api/filters/table", h.AddTableFilterHandler)
	r.POST("/api/filters/column", h.AddColumnFilterHandler)
	r.POST("/api/filters/remove", h.RemoveFilterHandler)
	r.POST("/api/filters/clear", h.ClearFiltersHandler)

	r.GET("/api/table", h.GetTableHandler)
	r.POST("/api/table/sort", h.ToggleSortHandler)
	r.PUT("/api/table/filters", h.SetColumnFiltersHandler)
	r.GET("/api/table/export", h.ExportTableHandler)

	// Serve static files (for React app)
	r.Static("/static", "./frontend/build/static")
	r.StaticFile("/", "./frontend/build/index.html")
	r.NoRoute(func(c *gin.Context) {
		c.File("./frontend/build/index.html")
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
