package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"

	"go-structura/catalog"
	"go-structura/cronjobs"
	"go-structura/db"
	"go-structura/detector"
	"go-structura/routes"
)

const defaultModelURL = "https://structura-model.example.com"

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Print and check env
	modelURL := os.Getenv("MODEL_URL")
	if modelURL == "" {
		modelURL = defaultModelURL
	}
	fmt.Println("MODEL_URL: ", modelURL)

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	// Auth client for verifying Firebase ID tokens
	authClient, err := db.InitAuth()
	if err != nil {
		log.Fatalf("Failed to initialize Auth client: %v", err)
	}

	// Initialize cron jobs
	cronjobs.InitCronJobs(firestoreClient)

	// Damage catalog, with optional override file
	cat := catalog.Default()
	if path := os.Getenv("CATALOG_FILE"); path != "" {
		cat, err = catalog.Load(path)
		if err != nil {
			log.Fatalf("Failed to load catalog from %s: %v", path, err)
		}
		fmt.Println("Loaded damage catalog from", path)
	}

	// Detector client for the external inference API
	det := detector.NewClient(modelURL)

	// OpenAI is optional; without a key, reports skip the condition summary
	var openaiClient *openai.Client
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		fmt.Println("OPENAI_API_KEY loaded")
		openaiClient = openai.NewClient(apiKey)
	}

	r := routes.SetupRouter(firestoreClient, authClient, det, openaiClient, cat)
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
