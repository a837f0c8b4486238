package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-structura/types"
)

// ErrNotFound reports a lookup or delete for an inspection id that does not
// exist in the caller's collection.
var ErrNotFound = fmt.Errorf("inspection not found")

func inspectionsCollection(client *firestore.Client, uid string) *firestore.CollectionRef {
	return client.Collection("users").Doc(uid).Collection("inspections")
}

// SaveAssessment stores one assessment under users/{uid}/inspections using
// the assessment's own id as the document id.
func SaveAssessment(client *firestore.Client, uid string, a types.Assessment) error {
	ctx := context.Background()
	_, err := inspectionsCollection(client, uid).Doc(a.ID).Set(ctx, a)
	if err != nil {
		return fmt.Errorf("failed to save inspection %s: %w", a.ID, err)
	}
	return nil
}

// GetAssessments retrieves every stored assessment for the user. Order is
// whatever Firestore returns; callers sort where order matters.
func GetAssessments(client *firestore.Client, uid string) ([]types.Assessment, error) {
	ctx := context.Background()
	iter := inspectionsCollection(client, uid).Documents(ctx)

	var history []types.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate inspections: %w", err)
		}

		var a types.Assessment
		if err := doc.DataTo(&a); err != nil {
			return nil, fmt.Errorf("failed to decode inspection %s: %w", doc.Ref.ID, err)
		}
		a.ID = doc.Ref.ID
		history = append(history, a)
	}

	return history, nil
}

// GetAssessment fetches a single assessment by id.
func GetAssessment(client *firestore.Client, uid, id string) (types.Assessment, error) {
	ctx := context.Background()
	doc, err := inspectionsCollection(client, uid).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Assessment{}, ErrNotFound
		}
		return types.Assessment{}, fmt.Errorf("failed to get inspection %s: %w", id, err)
	}

	var a types.Assessment
	if err := doc.DataTo(&a); err != nil {
		return types.Assessment{}, fmt.Errorf("failed to decode inspection %s: %w", id, err)
	}
	a.ID = doc.Ref.ID
	return a, nil
}

// DeleteAssessment removes one assessment and returns the deleted record so
// the caller can clean up its stored image.
func DeleteAssessment(client *firestore.Client, uid, id string) (types.Assessment, error) {
	a, err := GetAssessment(client, uid, id)
	if err != nil {
		return types.Assessment{}, err
	}

	ctx := context.Background()
	if _, err := inspectionsCollection(client, uid).Doc(id).Delete(ctx); err != nil {
		return types.Assessment{}, fmt.Errorf("failed to delete inspection %s: %w", id, err)
	}
	return a, nil
}

// ReferencedImages collects the image filenames referenced by any inspection
// across all users. Used by the cleanup job to spot orphaned uploads.
func ReferencedImages(client *firestore.Client) (map[string]bool, error) {
	ctx := context.Background()
	iter := client.CollectionGroup("inspections").Documents(ctx)

	referenced := make(map[string]bool)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate inspections: %w", err)
		}

		var a types.Assessment
		if err := doc.DataTo(&a); err != nil {
			continue
		}
		if name := ImageFilename(a.ImageURL); name != "" {
			referenced[name] = true
		}
	}

	return referenced, nil
}
