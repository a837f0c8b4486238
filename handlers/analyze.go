package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-structura/assessment"
	"go-structura/catalog"
	"go-structura/db"
	"go-structura/detector"
)

// UploadDir is where uploaded images land, overridable via UPLOAD_FOLDER.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_FOLDER"); dir != "" {
		return dir
	}
	return "uploads"
}

// AnalyzeHandler accepts an image upload, runs it through the external
// detector, builds the assessment and persists it for the caller.
func AnalyzeHandler(c *gin.Context, firestoreClient *firestore.Client, det *detector.Client, cat *catalog.Catalog) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}

	uid := callerUID(c)
	now := time.Now().UTC()

	// Filename scheme matches the report/image URLs: timestamp prefix keeps
	// uploads unique per user without extra bookkeeping.
	filename := fmt.Sprintf("%s_%s", now.Format("20060102_150405"), filepath.Base(fileHeader.Filename))
	imagePath := filepath.Join(UploadDir(), filename)

	if err := os.MkdirAll(UploadDir(), 0755); err != nil {
		log.Printf("Failed to create upload dir: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}
	if err := c.SaveUploadedFile(fileHeader, imagePath); err != nil {
		log.Printf("Failed to save upload %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	counts, err := det.Detect(c.Request.Context(), imagePath)
	if err != nil {
		log.Printf("Detector call failed for %s: %v", filename, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image analysis failed"})
		return
	}

	result, err := assessment.Build(cat, uuid.NewString(), now, counts)
	if err != nil {
		if errors.Is(err, assessment.ErrNegativeCount) {
			log.Printf("Detector returned malformed counts for %s: %v", filename, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Image analysis returned malformed data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build assessment"})
		return
	}
	result.ImageURL = "/api/images/" + filename

	if err := db.SaveAssessment(firestoreClient, uid, result); err != nil {
		log.Printf("Failed to persist inspection %s: %v", result.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save inspection"})
		return
	}

	log.Printf("Saved inspection %s for user %s (severity %s, score %d)", result.ID, uid, result.Severity, result.HealthScore)
	c.JSON(http.StatusOK, gin.H{
		"inspection_id":    result.ID,
		"created_at":       result.CreatedAt,
		"detected_damages": result.Counts,
		"severity":         result.Severity,
		"health_score":     result.HealthScore,
		"precautions":      result.Precautions,
		"image_url":        result.ImageURL,
	})
}
