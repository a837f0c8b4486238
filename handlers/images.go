package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// ServeImageHandler serves a stored upload by filename. The path parameter is
// reduced to its base name so the handler never leaves the upload directory.
func ServeImageHandler(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(UploadDir(), filename)

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	c.File(path)
}

// HealthHandler reports liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
