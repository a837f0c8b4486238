package handlers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-structura/catalog"
	"go-structura/db"
	"go-structura/report"
	"go-structura/summarization"
)

// ReportHandler renders one inspection as a downloadable HTML report. With
// ?summarize=true and a configured OpenAI client, the report also carries a
// natural-language condition summary; summary failures degrade to a report
// without one.
func ReportHandler(c *gin.Context, firestoreClient *firestore.Client, openaiClient *openai.Client, cat *catalog.Catalog) {
	uid := callerUID(c)
	id := c.Param("id")

	a, err := db.GetAssessment(firestoreClient, uid, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inspection not found"})
			return
		}
		log.Printf("Failed to load inspection %s for report: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load inspection"})
		return
	}

	meta := report.Meta{ExternalID: id}
	if name := db.ImageFilename(a.ImageURL); name != "" {
		meta.ImagePath = filepath.Join(UploadDir(), filepath.Base(name))
	}

	if c.Query("summarize") == "true" && openaiClient != nil {
		summary, err := summarization.GenerateConditionSummary(c.Request.Context(), a, openaiClient)
		if err != nil {
			log.Printf("Summary generation failed for inspection %s: %v. Exporting without summary.", id, err)
		} else {
			meta.Summary = summary
		}
	}

	doc, err := report.Export(cat, a, meta)
	if err != nil {
		log.Printf("Failed to export report for inspection %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
		return
	}

	if len(doc.Warnings) > 0 {
		log.Printf("Report for inspection %s degraded: %s", id, strings.Join(doc.Warnings, "; "))
		c.Header("X-Report-Warnings", strings.Join(doc.Warnings, "; "))
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc.HTML)
}
