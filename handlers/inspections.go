package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-structura/db"
	"go-structura/stats"
)

// ListInspectionsHandler returns the caller's full history, newest first.
func ListInspectionsHandler(c *gin.Context, firestoreClient *firestore.Client) {
	uid := callerUID(c)

	history, err := db.GetAssessments(firestoreClient, uid)
	if err != nil {
		log.Printf("Failed to list inspections for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inspections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inspections": stats.Recent(history)})
}

// DeleteInspectionHandler removes one inspection and its stored image. The
// image file is best-effort: a missing file is not an error.
func DeleteInspectionHandler(c *gin.Context, firestoreClient *firestore.Client) {
	uid := callerUID(c)
	id := c.Param("id")

	deleted, err := db.DeleteAssessment(firestoreClient, uid, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inspection not found"})
			return
		}
		log.Printf("Failed to delete inspection %s for %s: %v", id, uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inspection"})
		return
	}

	if name := db.ImageFilename(deleted.ImageURL); name != "" {
		imagePath := filepath.Join(UploadDir(), filepath.Base(name))
		if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove image %s: %v", name, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inspection and image deleted"})
}

// StatsHandler recomputes summary statistics over the caller's history. An
// empty history is a valid empty state, not an error.
func StatsHandler(c *gin.Context, firestoreClient *firestore.Client) {
	uid := callerUID(c)

	history, err := db.GetAssessments(firestoreClient, uid)
	if err != nil {
		log.Printf("Failed to fetch history for stats for %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, stats.Summarize(history))
}
