package core

import (
	"context"
	"fmt"
	"strconv"

	"iopps-backend-go/internal/db"
	"iopps-backend-go/internal/models"
)

// In-memory repository fakes shared by the service tests.

type fakeJobRepo struct {
	jobs    map[string]*models.Job
	nextID  int
	updates map[string]map[string]interface{}
	failURL error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:    make(map[string]*models.Job),
		updates: make(map[string]map[string]interface{}),
	}
}

func (f *fakeJobRepo) add(job *models.Job) string {
	f.nextID++
	id := "job-" + strconv.Itoa(f.nextID)
	copied := *job
	copied.ID = id
	if copied.Collection == "" {
		copied.Collection = "jobs"
	}
	f.jobs[id] = &copied
	return id
}

func (f *fakeJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %q: %w", id, db.ErrNotFound)
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) ListActive(_ context.Context) ([]*models.Job, error) {
	var out []*models.Job
	for i := 1; i <= f.nextID; i++ {
		job, ok := f.jobs["job-"+strconv.Itoa(i)]
		if ok && job.Active {
			copied := *job
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListByOrg(_ context.Context, orgID string) ([]*models.Job, error) {
	var out []*models.Job
	for i := 1; i <= f.nextID; i++ {
		job, ok := f.jobs["job-"+strconv.Itoa(i)]
		if ok && job.EmployerID == orgID {
			copied := *job
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Create(_ context.Context, job *models.Job) (string, error) {
	return f.add(job), nil
}

func (f *fakeJobRepo) CreateBatch(_ context.Context, jobs []*models.Job) (int, error) {
	for _, job := range jobs {
		f.add(job)
	}
	return len(jobs), nil
}

func (f *fakeJobRepo) UpdateFields(_ context.Context, _, id string, fields map[string]interface{}) error {
	if _, ok := f.jobs[id]; !ok {
		return fmt.Errorf("job %q: %w", id, db.ErrNotFound)
	}
	f.updates[id] = fields
	return nil
}

func (f *fakeJobRepo) IncrementViews(_ context.Context, id string) error {
	job, ok := f.jobs[id]
	if !ok {
		return fmt.Errorf("job %q: %w", id, db.ErrNotFound)
	}
	job.ViewCount++
	return nil
}

func (f *fakeJobRepo) ExistsByExternalURL(_ context.Context, url string) (bool, error) {
	if f.failURL != nil {
		return false, f.failURL
	}
	for _, job := range f.jobs {
		if job.ExternalURL == url {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeJobRepo) CloseBatch(_ context.Context, jobs []*models.Job) (int, error) {
	for _, job := range jobs {
		stored, ok := f.jobs[job.ID]
		if !ok {
			continue
		}
		stored.Status = models.StatusClosed
		stored.Active = false
	}
	return len(jobs), nil
}

type fakeListingRepo struct {
	items   map[string]*models.Listing
	nextID  int
	upserts map[string]map[string]interface{}
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		items:   make(map[string]*models.Listing),
		upserts: make(map[string]map[string]interface{}),
	}
}

func (f *fakeListingRepo) add(listing *models.Listing) string {
	f.nextID++
	id := "listing-" + strconv.Itoa(f.nextID)
	copied := *listing
	copied.ID = id
	f.items[id] = &copied
	return id
}

func (f *fakeListingRepo) ListActive(_ context.Context) ([]*models.Listing, error) {
	var out []*models.Listing
	for i := 1; i <= f.nextID; i++ {
		item, ok := f.items["listing-"+strconv.Itoa(i)]
		if ok && item.Active {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) ListByOrg(_ context.Context, orgID string) ([]*models.Listing, error) {
	var out []*models.Listing
	for i := 1; i <= f.nextID; i++ {
		item, ok := f.items["listing-"+strconv.Itoa(i)]
		if ok && item.EmployerID == orgID {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) Create(_ context.Context, listing *models.Listing) (string, error) {
	return f.add(listing), nil
}

func (f *fakeListingRepo) Upsert(_ context.Context, id string, fields map[string]interface{}) error {
	if existing, ok := f.upserts[id]; ok {
		for key, value := range fields {
			existing[key] = value
		}
		return nil
	}
	copied := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	f.upserts[id] = copied
	return nil
}

func (f *fakeListingRepo) CloseBatch(_ context.Context, items []*models.Listing) (int, error) {
	for _, item := range items {
		stored, ok := f.items[item.ID]
		if !ok {
			continue
		}
		stored.Status = models.StatusClosed
		stored.Active = false
	}
	return len(items), nil
}

type fakeOrgRepo struct {
	members      map[string]*models.Member
	users        map[string]*models.User
	orgs         map[string]*models.Organization
	orgUpdates   map[string]map[string]interface{}
	userUpdates  map[string]map[string]interface{}
	activity     map[string][]*models.ActivityEntry
	profileViews int64
	viewsErr     error
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		members:     make(map[string]*models.Member),
		users:       make(map[string]*models.User),
		orgs:        make(map[string]*models.Organization),
		orgUpdates:  make(map[string]map[string]interface{}),
		userUpdates: make(map[string]map[string]interface{}),
		activity:    make(map[string][]*models.ActivityEntry),
	}
}

func (f *fakeOrgRepo) GetMember(_ context.Context, uid string) (*models.Member, error) {
	member, ok := f.members[uid]
	if !ok {
		return nil, fmt.Errorf("member %q: %w", uid, db.ErrNotFound)
	}
	return member, nil
}

func (f *fakeOrgRepo) GetUser(_ context.Context, uid string) (*models.User, error) {
	user, ok := f.users[uid]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", uid, db.ErrNotFound)
	}
	return user, nil
}

func (f *fakeOrgRepo) ListUsers(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeOrgRepo) UpdateUserFields(_ context.Context, uid string, fields map[string]interface{}) error {
	if _, ok := f.users[uid]; !ok {
		return fmt.Errorf("user %q: %w", uid, db.ErrNotFound)
	}
	f.userUpdates[uid] = fields
	return nil
}

func (f *fakeOrgRepo) GetOrganization(_ context.Context, orgID string) (*models.Organization, error) {
	org, ok := f.orgs[orgID]
	if !ok {
		return nil, fmt.Errorf("organization %q: %w", orgID, db.ErrNotFound)
	}
	return org, nil
}

func (f *fakeOrgRepo) ListOrganizations(_ context.Context) ([]*models.Organization, error) {
	var out []*models.Organization
	for _, org := range f.orgs {
		out = append(out, org)
	}
	return out, nil
}

func (f *fakeOrgRepo) UpdateFields(_ context.Context, orgID string, fields map[string]interface{}) error {
	if _, ok := f.orgs[orgID]; !ok {
		return fmt.Errorf("organization %q: %w", orgID, db.ErrNotFound)
	}
	f.orgUpdates[orgID] = fields
	return nil
}

func (f *fakeOrgRepo) AppendActivity(_ context.Context, orgID string, entry *models.ActivityEntry) error {
	f.activity[orgID] = append(f.activity[orgID], entry)
	return nil
}

func (f *fakeOrgRepo) CountProfileViews(_ context.Context, _ string) (int64, error) {
	if f.viewsErr != nil {
		return 0, f.viewsErr
	}
	return f.profileViews, nil
}

type fakePaymentRepo struct {
	payments []*models.Payment
	events   map[string]string
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{events: make(map[string]string)}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) (string, error) {
	copied := *payment
	copied.ID = "payment-" + strconv.Itoa(len(f.payments)+1)
	f.payments = append(f.payments, &copied)
	return copied.ID, nil
}

func (f *fakePaymentRepo) List(_ context.Context) ([]*models.Payment, error) {
	return f.payments, nil
}

func (f *fakePaymentRepo) EventProcessed(_ context.Context, eventID string) (bool, error) {
	_, ok := f.events[eventID]
	return ok, nil
}

func (f *fakePaymentRepo) MarkEventProcessed(_ context.Context, eventID, eventType string) error {
	f.events[eventID] = eventType
	return nil
}

type fakeStatsRepo struct {
	counts map[string]int64
}

func (f *fakeStatsRepo) CollectionCount(_ context.Context, collection string) (int64, error) {
	return f.counts[collection], nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(to, _, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}
