package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"iopps-backend-go/internal/models"
	"iopps-backend-go/internal/serialize"
)

const (
	jobsCollection = "jobs"
	// postsCollection is the legacy import collection. It is
	// read-only here; duplicate checks and by-id reads still consult
	// it until the migration to "jobs" completes.
	postsCollection = "posts"
)

type firestoreJobRepository struct {
	client *firestore.Client
}

// NewFirestoreJobRepository creates a Firestore-backed JobRepository.
func NewFirestoreJobRepository(client *firestore.Client) JobRepository {
	return &firestoreJobRepository{client: client}
}

func decodeJob(doc *firestore.DocumentSnapshot, collection string) (*models.Job, error) {
	var job models.Job
	if err := doc.DataTo(&job); err != nil {
		// Legacy posts written by the old app store some date fields
		// as native timestamps where strings are expected. Normalize
		// the raw document and retry before giving up.
		if derr := decodeCleaned(doc.Data(), &job); derr != nil {
			return nil, fmt.Errorf("failed to decode job %q: %w", doc.Ref.ID, err)
		}
	}
	job.ID = doc.Ref.ID
	job.Collection = collection
	return &job, nil
}

func decodeCleaned(data map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		TagName:    "firestore",
		Result:     out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(serialize.CleanMap(data))
}

// GetByID reads the job from "jobs", falling back to "posts".
func (r *firestoreJobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	if id == "" {
		return nil, errors.New("job id cannot be empty")
	}
	for _, collection := range []string{jobsCollection, postsCollection} {
		doc, err := r.client.Collection(collection).Doc(id).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				continue
			}
			return nil, fmt.Errorf("failed to get job %q: %w", id, err)
		}
		return decodeJob(doc, collection)
	}
	return nil, fmt.Errorf("job %q: %w", id, ErrNotFound)
}

func (r *firestoreJobRepository) queryJobs(ctx context.Context, q firestore.Query, collection string) ([]*models.Job, error) {
	var jobs []*models.Job
	iter := q.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("job query failed: %w", err)
		}
		job, err := decodeJob(doc, collection)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// ListActive returns active jobs from both collections, newest first
// within each collection. Substring filters and pagination are applied
// by the service layer; the store only handles the equality
// constraint and ordering.
func (r *firestoreJobRepository) ListActive(ctx context.Context) ([]*models.Job, error) {
	var all []*models.Job
	for _, collection := range []string{jobsCollection, postsCollection} {
		q := r.client.Collection(collection).
			Where("active", "==", true).
			OrderBy("createdAt", firestore.Desc)
		jobs, err := r.queryJobs(ctx, q, collection)
		if err != nil {
			return nil, err
		}
		all = append(all, jobs...)
	}
	return all, nil
}

func (r *firestoreJobRepository) ListByOrg(ctx context.Context, orgID string) ([]*models.Job, error) {
	q := r.client.Collection(jobsCollection).
		Where("employerId", "==", orgID).
		OrderBy("createdAt", firestore.Desc)
	return r.queryJobs(ctx, q, jobsCollection)
}

func (r *firestoreJobRepository) Create(ctx context.Context, job *models.Job) (string, error) {
	ref := r.client.Collection(jobsCollection).NewDoc()
	if _, err := ref.Set(ctx, job); err != nil {
		return "", fmt.Errorf("failed to create job: %w", err)
	}
	return ref.ID, nil
}

func (r *firestoreJobRepository) CreateBatch(ctx context.Context, jobs []*models.Job) (int, error) {
	writes := make([]batchWrite, 0, len(jobs))
	for _, job := range jobs {
		writes = append(writes, batchWrite{
			ref:  r.client.Collection(jobsCollection).NewDoc(),
			data: job,
		})
	}
	return commitChunked(ctx, r.client, writes)
}

func (r *firestoreJobRepository) UpdateFields(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for key, value := range fields {
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	if _, err := r.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("job %q: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to update job %q: %w", id, err)
	}
	return nil
}

func (r *firestoreJobRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection(jobsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "viewCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("job %q: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to increment views for job %q: %w", id, err)
	}
	return nil
}

func (r *firestoreJobRepository) ExistsByExternalURL(ctx context.Context, url string) (bool, error) {
	for _, collection := range []string{jobsCollection, postsCollection} {
		iter := r.client.Collection(collection).
			Where("externalUrl", "==", url).
			Limit(1).
			Documents(ctx)
		_, err := iter.Next()
		iter.Stop()
		if err == nil {
			return true, nil
		}
		if err != iterator.Done {
			return false, fmt.Errorf("duplicate check failed for %q: %w", url, err)
		}
	}
	return false, nil
}

func (r *firestoreJobRepository) CloseBatch(ctx context.Context, jobs []*models.Job) (int, error) {
	writes := make([]batchWrite, 0, len(jobs))
	for _, job := range jobs {
		collection := job.Collection
		if collection == "" {
			collection = jobsCollection
		}
		writes = append(writes, batchWrite{
			ref: r.client.Collection(collection).Doc(job.ID),
			updates: []firestore.Update{
				{Path: "status", Value: models.StatusClosed},
				{Path: "active", Value: false},
				{Path: "updatedAt", Value: firestore.ServerTimestamp},
			},
		})
	}
	return commitChunked(ctx, r.client, writes)
}
