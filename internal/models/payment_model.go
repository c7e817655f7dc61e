package models

import "time"

// Payment statuses. Transitions are one-way: pending -> active or
// pending -> cancelled; active -> cancelled.
const (
	PaymentPending   = "pending"
	PaymentActive    = "active"
	PaymentCancelled = "cancelled"
	PaymentSucceeded = "succeeded"
)

// Payment is a billing-history record created from Stripe webhook
// events. Amounts are in cents; GSTAmount is the 5% GST portion.
type Payment struct {
	ID              string            `json:"id" firestore:"-"`
	UserID          string            `json:"userId" firestore:"userId"`
	OrgID           string            `json:"orgId,omitempty" firestore:"orgId,omitempty"`
	Type            string            `json:"type" firestore:"type"`
	Description     string            `json:"description,omitempty" firestore:"description,omitempty"`
	Plan            string            `json:"plan,omitempty" firestore:"plan,omitempty"`
	Amount          int64             `json:"amount" firestore:"amount"`
	GSTAmount       int64             `json:"gstAmount" firestore:"gstAmount"`
	Currency        string            `json:"currency" firestore:"currency"`
	Status          string            `json:"status" firestore:"status"`
	PaymentIntentID string            `json:"paymentIntentId,omitempty" firestore:"paymentIntentId,omitempty"`
	SessionID       string            `json:"sessionId,omitempty" firestore:"sessionId,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty" firestore:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// StripeEvent marks a webhook event as processed so redelivered
// events are skipped rather than double-applied.
type StripeEvent struct {
	EventID     string    `json:"eventId" firestore:"eventId"`
	EventType   string    `json:"eventType" firestore:"eventType"`
	ProcessedAt time.Time `json:"processedAt" firestore:"processedAt,serverTimestamp"`
}
