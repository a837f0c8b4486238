package db

import (
	"context"
	"encoding/base64"
	"log"
	"os"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// Singleton Firebase app and clients.
var (
	app        *firebase.App
	client     *firestore.Client
	authClient *auth.Client
	clientOnce sync.Once
)

func initApp() {
	clientOnce.Do(func() {
		// Decode credentials
		encodedCreds := os.Getenv("FIREBASE_CREDENTIALS")
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			log.Fatalf("Failed to decode Firebase credentials: %v", err)
		}

		// Initialize Firebase App
		opt := option.WithCredentialsJSON(creds)
		app, err = firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			log.Fatalf("Error initializing Firebase app: %v", err)
		}

		// Get Firestore Client
		client, err = app.Firestore(context.Background())
		if err != nil {
			log.Fatalf("Error getting Firestore client: %v", err)
		}

		// Get Auth Client for token verification
		authClient, err = app.Auth(context.Background())
		if err != nil {
			log.Fatalf("Error getting Auth client: %v", err)
		}
	})
}

// InitFirestore initializes the Firebase app and returns a Firestore client.
func InitFirestore() (*firestore.Client, error) {
	initApp()
	return client, nil
}

// InitAuth returns the Firebase Auth client used to verify ID tokens.
func InitAuth() (*auth.Client, error) {
	initApp()
	return authClient, nil
}

// CloseFirestore closes the Firestore client.
func CloseFirestore() {
	if client != nil {
		client.Close()
	}
}
