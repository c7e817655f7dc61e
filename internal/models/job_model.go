package models

import "time"

// Job statuses used by the listing filters and the expiry sweep.
const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusClosed  = "closed"
)

// Job is a job posting. Listings live in the "jobs" collection; a
// legacy "posts" collection still holds imported postings and is
// consulted on duplicate checks and by-id reads until it is migrated.
//
// ClosingDate is a sortable YYYY-MM-DD string, compared
// lexicographically by the daily expiry sweep. It is never parsed.
type Job struct {
	ID                   string    `json:"id" firestore:"-"`
	Collection           string    `json:"-" firestore:"-"` // source collection, "jobs" or "posts"
	Title                string    `json:"title" firestore:"title"`
	EmployerID           string    `json:"employerId,omitempty" firestore:"employerId,omitempty"`
	EmployerName         string    `json:"employerName,omitempty" firestore:"employerName,omitempty"`
	Company              string    `json:"company,omitempty" firestore:"company,omitempty"`
	Location             string    `json:"location,omitempty" firestore:"location,omitempty"`
	Province             string    `json:"province,omitempty" firestore:"province,omitempty"`
	EmploymentType       string    `json:"employmentType,omitempty" firestore:"employmentType,omitempty"`
	Category             string    `json:"category,omitempty" firestore:"category,omitempty"`
	RemoteFlag           bool      `json:"remoteFlag" firestore:"remoteFlag"`
	IndigenousPreference bool      `json:"indigenousPreference" firestore:"indigenousPreference"`
	Description          string    `json:"description,omitempty" firestore:"description,omitempty"`
	Salary               string    `json:"salary,omitempty" firestore:"salary,omitempty"`
	ExternalURL          string    `json:"externalUrl,omitempty" firestore:"externalUrl,omitempty"`
	ApplicationURL       string    `json:"applicationUrl,omitempty" firestore:"applicationUrl,omitempty"`
	ApplicationEmail     string    `json:"applicationEmail,omitempty" firestore:"applicationEmail,omitempty"`
	Source               string    `json:"source,omitempty" firestore:"source,omitempty"`
	Status               string    `json:"status" firestore:"status"`
	Active               bool      `json:"active" firestore:"active"`
	Featured             bool      `json:"featured" firestore:"featured"`
	ClosingDate          string    `json:"closingDate,omitempty" firestore:"closingDate,omitempty"`
	ViewCount            int64     `json:"viewCount" firestore:"viewCount"`
	PaymentStatus        string    `json:"paymentStatus,omitempty" firestore:"paymentStatus,omitempty"`
	PaymentID            string    `json:"paymentId,omitempty" firestore:"paymentId,omitempty"`
	CreatedAt            time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt            time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
