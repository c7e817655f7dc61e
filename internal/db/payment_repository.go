package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"iopps-backend-go/internal/models"
)

const (
	paymentsCollection     = "payments"
	stripeEventsCollection = "stripe_events"
)

type firestorePaymentRepository struct {
	client *firestore.Client
}

// NewFirestorePaymentRepository creates a Firestore-backed
// PaymentRepository.
func NewFirestorePaymentRepository(client *firestore.Client) PaymentRepository {
	return &firestorePaymentRepository{client: client}
}

func (r *firestorePaymentRepository) Create(ctx context.Context, payment *models.Payment) (string, error) {
	ref := r.client.Collection(paymentsCollection).NewDoc()
	if _, err := ref.Set(ctx, payment); err != nil {
		return "", fmt.Errorf("failed to create payment record: %w", err)
	}
	return ref.ID, nil
}

func (r *firestorePaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	var payments []*models.Payment
	iter := r.client.Collection(paymentsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("payments query failed: %w", err)
		}
		var payment models.Payment
		if err := doc.DataTo(&payment); err != nil {
			return nil, fmt.Errorf("failed to decode payment %q: %w", doc.Ref.ID, err)
		}
		payment.ID = doc.Ref.ID
		payments = append(payments, &payment)
	}
	return payments, nil
}

func (r *firestorePaymentRepository) EventProcessed(ctx context.Context, eventID string) (bool, error) {
	_, err := r.client.Collection(stripeEventsCollection).Doc(eventID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check stripe event %q: %w", eventID, err)
	}
	return true, nil
}

func (r *firestorePaymentRepository) MarkEventProcessed(ctx context.Context, eventID, eventType string) error {
	event := &models.StripeEvent{EventID: eventID, EventType: eventType}
	if _, err := r.client.Collection(stripeEventsCollection).Doc(eventID).Set(ctx, event); err != nil {
		return fmt.Errorf("failed to mark stripe event %q processed: %w", eventID, err)
	}
	return nil
}

type firestoreStatsRepository struct {
	client *firestore.Client
}

// NewFirestoreStatsRepository creates a Firestore-backed
// StatsRepository using count aggregations.
func NewFirestoreStatsRepository(client *firestore.Client) StatsRepository {
	return &firestoreStatsRepository{client: client}
}

func (r *firestoreStatsRepository) CollectionCount(ctx context.Context, collection string) (int64, error) {
	query := r.client.Collection(collection).NewAggregationQuery().WithCount("count")
	result, err := query.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count failed for collection %q: %w", collection, err)
	}
	value, ok := result["count"]
	if !ok {
		return 0, errors.New("count aggregation returned no value")
	}
	countValue, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, errors.New("unexpected count aggregation type")
	}
	return countValue.GetIntegerValue(), nil
}
