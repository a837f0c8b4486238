package routes

import (
	"cloud.google.com/go/firestore"
	"firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-structura/catalog"
	"go-structura/detector"
	"go-structura/handlers"
)

func SetupRouter(
	firestoreClient *firestore.Client,
	authClient *auth.Client,
	det *detector.Client,
	openaiClient *openai.Client,
	cat *catalog.Catalog,
) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Structura!",
		})
	})

	r.GET("/health", handlers.HealthHandler)

	// Images are linked from stored inspections and reports; served without auth
	r.GET("/api/images/:filename", handlers.ServeImageHandler)

	// api routes, scoped to the authenticated caller
	api := r.Group("/api")
	api.Use(handlers.AuthRequired(authClient))
	{
		api.POST("/analyze", func(c *gin.Context) {
			handlers.AnalyzeHandler(c, firestoreClient, det, cat)
		})
		api.GET("/inspections", func(c *gin.Context) {
			handlers.ListInspectionsHandler(c, firestoreClient)
		})
		api.DELETE("/inspections/:id", func(c *gin.Context) {
			handlers.DeleteInspectionHandler(c, firestoreClient)
		})
		api.GET("/statistics", func(c *gin.Context) {
			handlers.StatsHandler(c, firestoreClient)
		})
		api.GET("/inspections/:id/report", func(c *gin.Context) {
			handlers.ReportHandler(c, firestoreClient, openaiClient, cat)
		})
	}

	return r
}
