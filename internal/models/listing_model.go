package models

import "time"

// Listing is the shared document shape for the event-like collections:
// events, scholarships, conferences, and education programs. They all
// carry the same core fields (title, slug, org stamp, status/active
// pair) and differ only in which optional fields are populated.
//
// Date, EndDate, and Deadline are sortable YYYY-MM-DD strings; the
// expiry sweeps compare them lexicographically against today.
type Listing struct {
	ID            string    `json:"id" firestore:"-"`
	Title         string    `json:"title" firestore:"title"`
	Slug          string    `json:"slug" firestore:"slug"`
	EmployerID    string    `json:"employerId,omitempty" firestore:"employerId,omitempty"`
	OrganizerName string    `json:"organizerName,omitempty" firestore:"organizerName,omitempty"`
	Category      string    `json:"category,omitempty" firestore:"category,omitempty"`
	EventType     string    `json:"eventType,omitempty" firestore:"eventType,omitempty"`
	Date          string    `json:"date,omitempty" firestore:"date,omitempty"`
	EndDate       string    `json:"endDate,omitempty" firestore:"endDate,omitempty"`
	Deadline      string    `json:"deadline,omitempty" firestore:"deadline,omitempty"`
	Location      string    `json:"location,omitempty" firestore:"location,omitempty"`
	Province      string    `json:"province,omitempty" firestore:"province,omitempty"`
	Description   string    `json:"description,omitempty" firestore:"description,omitempty"`
	Amount        string    `json:"amount,omitempty" firestore:"amount,omitempty"`
	AdmissionType string    `json:"admissionType,omitempty" firestore:"admissionType,omitempty"`
	PosterURL     string    `json:"posterUrl,omitempty" firestore:"posterUrl,omitempty"`
	ExternalURL   string    `json:"externalUrl,omitempty" firestore:"externalUrl,omitempty"`
	Status        string    `json:"status" firestore:"status"`
	Active        bool      `json:"active" firestore:"active"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
