package cronjobs

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/robfig/cron/v3"

	"go-structura/db"
)

// Uploads younger than this are never swept, so an image saved moments before
// its inspection document is written survives the sweep.
const orphanMinAge = 24 * time.Hour

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_FOLDER"); dir != "" {
		return dir
	}
	return "uploads"
}

// sweepOrphanImages deletes upload files no inspection references anymore.
// Deleting an inspection already removes its image; this catches files left
// behind by crashed requests.
func sweepOrphanImages(firestoreClient *firestore.Client) {
	referenced, err := db.ReferencedImages(firestoreClient)
	if err != nil {
		log.Printf("Orphan sweep: failed to collect referenced images: %v", err)
		return
	}

	entries, err := os.ReadDir(uploadDir())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Orphan sweep: failed to read upload dir: %v", err)
		}
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < orphanMinAge {
			continue
		}

		path := filepath.Join(uploadDir(), entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("Orphan sweep: failed to remove %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}

	log.Printf("Orphan sweep complete: %d files removed", removed)
}

func InitCronJobs(firestoreClient *firestore.Client) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Orphan image sweep: run hourly on the hour
	_, err := c.AddFunc("0 * * * *", func() {
		log.Println("\nCronJob: Orphan Image Sweep Running")
		sweepOrphanImages(firestoreClient)
	})
	if err != nil {
		log.Println("Error scheduling Orphan Image Sweep:", err)
	}

	c.Start()
}
