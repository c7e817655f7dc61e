package models

import "time"

// User roles.
const (
	RoleCommunity = "community"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

// User represents a registered user. The Firebase Auth UID is the
// Firestore document ID.
type User struct {
	ID              string    `json:"id" firestore:"-"`
	Email           string    `json:"email" firestore:"email"`
	DisplayName     string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	Role            string    `json:"role" firestore:"role"`
	EmployerID      string    `json:"employerId,omitempty" firestore:"employerId,omitempty"`
	NewsletterOptIn bool      `json:"newsletterOptIn" firestore:"newsletterOptIn"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt       time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// Member is the org-membership record, keyed by the member's UID.
// It predates User.EmployerID as the way a user is tied to an
// organization; both records still exist in production and are
// consulted in order (members first, then users).
type Member struct {
	UID         string    `json:"uid" firestore:"-"`
	OrgID       string    `json:"orgId" firestore:"orgId"`
	OrgName     string    `json:"orgName,omitempty" firestore:"orgName,omitempty"`
	OrgRole     string    `json:"orgRole,omitempty" firestore:"orgRole,omitempty"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	Email       string    `json:"email,omitempty" firestore:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
