package db

import "strings"

// ImageFilename extracts the stored filename from an image URL of the form
// /api/images/<filename>. Empty input yields empty output.
func ImageFilename(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	parts := strings.Split(imageURL, "/")
	return parts[len(parts)-1]
}
