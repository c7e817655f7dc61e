package db

import (
	"context"
	"errors"

	"iopps-backend-go/internal/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// JobRepository defines storage operations for job postings. Reads
// consult both the canonical "jobs" collection and the legacy "posts"
// collection; all writes go to "jobs".
type JobRepository interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	ListActive(ctx context.Context) ([]*models.Job, error)
	ListByOrg(ctx context.Context, orgID string) ([]*models.Job, error)
	Create(ctx context.Context, job *models.Job) (string, error)
	// CreateBatch writes jobs in chunks of at most 400 per atomic
	// batch, committing chunks sequentially. Returns how many were
	// written before any error.
	CreateBatch(ctx context.Context, jobs []*models.Job) (int, error)
	UpdateFields(ctx context.Context, collection, id string, fields map[string]interface{}) error
	IncrementViews(ctx context.Context, id string) error
	// ExistsByExternalURL checks both jobs and posts for a document
	// sharing the given external URL.
	ExistsByExternalURL(ctx context.Context, url string) (bool, error)
	// CloseBatch transitions the given jobs to status "closed" via
	// chunked batch updates. Each job's Collection field says which
	// collection holds it.
	CloseBatch(ctx context.Context, jobs []*models.Job) (int, error)
}

// ListingRepository defines storage operations for one event-like
// collection (events, scholarships, conferences, educationPrograms).
type ListingRepository interface {
	ListActive(ctx context.Context) ([]*models.Listing, error)
	ListByOrg(ctx context.Context, orgID string) ([]*models.Listing, error)
	Create(ctx context.Context, listing *models.Listing) (string, error)
	// Upsert merge-writes the given fields under the document ID;
	// fields absent from the map are left untouched.
	Upsert(ctx context.Context, id string, fields map[string]interface{}) error
	CloseBatch(ctx context.Context, items []*models.Listing) (int, error)
}

// OrgRepository covers organizations plus the two membership records
// (members and users) that tie a uid to an org.
type OrgRepository interface {
	GetMember(ctx context.Context, uid string) (*models.Member, error)
	GetUser(ctx context.Context, uid string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUserFields(ctx context.Context, uid string, fields map[string]interface{}) error
	GetOrganization(ctx context.Context, orgID string) (*models.Organization, error)
	ListOrganizations(ctx context.Context) ([]*models.Organization, error)
	UpdateFields(ctx context.Context, orgID string, fields map[string]interface{}) error
	AppendActivity(ctx context.Context, orgID string, entry *models.ActivityEntry) error
	CountProfileViews(ctx context.Context, orgID string) (int64, error)
}

// PaymentRepository stores billing history and webhook idempotency
// markers.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (string, error)
	List(ctx context.Context) ([]*models.Payment, error)
	EventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID, eventType string) error
}

// StatsRepository exposes collection-level counts for the admin
// dashboard.
type StatsRepository interface {
	CollectionCount(ctx context.Context, collection string) (int64, error)
}
