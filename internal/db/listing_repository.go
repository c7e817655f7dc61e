package db

import (
	"fmt"

	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"iopps-backend-go/internal/models"
)

// Event-like collection names.
const (
	EventsCollection       = "events"
	ScholarshipsCollection = "scholarships"
	ConferencesCollection  = "conferences"
	ProgramsCollection     = "educationPrograms"
)

type firestoreListingRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreListingRepository creates a ListingRepository bound to
// one of the event-like collections.
func NewFirestoreListingRepository(client *firestore.Client, collection string) ListingRepository {
	return &firestoreListingRepository{client: client, collection: collection}
}

func (r *firestoreListingRepository) queryListings(ctx context.Context, q firestore.Query) ([]*models.Listing, error) {
	var items []*models.Listing
	iter := q.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s query failed: %w", r.collection, err)
		}
		var listing models.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, fmt.Errorf("failed to decode %s %q: %w", r.collection, doc.Ref.ID, err)
		}
		listing.ID = doc.Ref.ID
		items = append(items, &listing)
	}
	return items, nil
}

func (r *firestoreListingRepository) ListActive(ctx context.Context) ([]*models.Listing, error) {
	q := r.client.Collection(r.collection).
		Where("active", "==", true).
		OrderBy("createdAt", firestore.Desc)
	return r.queryListings(ctx, q)
}

func (r *firestoreListingRepository) ListByOrg(ctx context.Context, orgID string) ([]*models.Listing, error) {
	q := r.client.Collection(r.collection).
		Where("employerId", "==", orgID).
		OrderBy("createdAt", firestore.Desc)
	return r.queryListings(ctx, q)
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *models.Listing) (string, error) {
	ref := r.client.Collection(r.collection).NewDoc()
	if _, err := ref.Set(ctx, listing); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", r.collection, err)
	}
	return ref.ID, nil
}

// Upsert merge-writes the given fields so anything absent from the
// payload stays untouched on an existing document. Used by the seed
// routes, which must be idempotent. MergeAll requires map data, which
// is why this takes a field map rather than a Listing.
func (r *firestoreListingRepository) Upsert(ctx context.Context, id string, fields map[string]interface{}) error {
	if _, err := r.client.Collection(r.collection).Doc(id).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to upsert %s %q: %w", r.collection, id, err)
	}
	return nil
}

func (r *firestoreListingRepository) CloseBatch(ctx context.Context, items []*models.Listing) (int, error) {
	writes := make([]batchWrite, 0, len(items))
	for _, item := range items {
		writes = append(writes, batchWrite{
			ref: r.client.Collection(r.collection).Doc(item.ID),
			updates: []firestore.Update{
				{Path: "status", Value: models.StatusClosed},
				{Path: "active", Value: false},
				{Path: "updatedAt", Value: firestore.ServerTimestamp},
			},
		})
	}
	return commitChunked(ctx, r.client, writes)
}
