package detector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-structura/types"
)

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wall.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not really a jpeg"), 0644))
	return path
}

func TestDetect(t *testing.T) {
	t.Run("returns counts from the model", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/detect", r.URL.Path)

			file, header, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "wall.jpg", header.Filename)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"crack": 2, "stain": 1, "graffiti": 4}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		counts, err := client.Detect(context.Background(), writeTestImage(t))
		require.NoError(t, err)

		assert.Equal(t, types.DetectionCounts{
			types.Crack:  2,
			types.Stain:  1,
			"graffiti":   4,
		}, counts)
	})

	t.Run("empty detection map", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		counts, err := client.Detect(context.Background(), writeTestImage(t))
		require.NoError(t, err)
		assert.Empty(t, counts)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Detect(context.Background(), writeTestImage(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "detector returned status")
	})

	t.Run("malformed response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Detect(context.Background(), writeTestImage(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode detector response")
	})

	t.Run("missing image file", func(t *testing.T) {
		client := NewClient("http://localhost:0")
		_, err := client.Detect(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open image")
	})
}
