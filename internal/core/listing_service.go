package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"iopps-backend-go/internal/db"
	"iopps-backend-go/internal/models"
)

// ListingQuery filters an event-like public listing. These routes use
// cursor pagination (startAfterId) rather than page numbers.
type ListingQuery struct {
	Search       string
	Category     string
	EventType    string
	Location     string
	Province     string
	Limit        int
	StartAfterID string
}

// ListingPage is one cursor page. Cursor is the ID of the last item,
// to be passed back as startAfterId.
type ListingPage struct {
	Items   []*models.Listing `json:"items"`
	Count   int               `json:"count"`
	Cursor  string            `json:"cursor,omitempty"`
	HasMore bool              `json:"hasMore"`
}

// ListingService owns one event-like collection (events,
// scholarships, conferences, education programs). The collections
// share shape and rules; expiryDate selects which date field the
// daily sweep compares.
type ListingService struct {
	repo       db.ListingRepository
	kind       string
	expiryDate func(*models.Listing) string
	logger     *zap.Logger
}

// NewEventService builds the events service; events expire on their
// (start) date.
func NewEventService(repo db.ListingRepository, logger *zap.Logger) *ListingService {
	return &ListingService{
		repo: repo, kind: "event", logger: logger,
		expiryDate: func(l *models.Listing) string { return l.Date },
	}
}

// NewScholarshipService builds the scholarships service; scholarships
// expire on their application deadline.
func NewScholarshipService(repo db.ListingRepository, logger *zap.Logger) *ListingService {
	return &ListingService{
		repo: repo, kind: "scholarship", logger: logger,
		expiryDate: func(l *models.Listing) string { return l.Deadline },
	}
}

// NewConferenceService builds the conferences service.
func NewConferenceService(repo db.ListingRepository, logger *zap.Logger) *ListingService {
	return &ListingService{
		repo: repo, kind: "conference", logger: logger,
		expiryDate: func(l *models.Listing) string { return l.EndDate },
	}
}

// NewProgramService builds the education-programs service. Programs
// have no expiry sweep.
func NewProgramService(repo db.ListingRepository, logger *zap.Logger) *ListingService {
	return &ListingService{
		repo: repo, kind: "program", logger: logger,
		expiryDate: func(*models.Listing) string { return "" },
	}
}

// ListPublic returns a cursor page of active listings.
func (s *ListingService) ListPublic(ctx context.Context, query ListingQuery) (*ListingPage, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Listing, 0, len(items))
	for _, item := range items {
		if query.Category != "" && !containsFold(item.Category, query.Category) {
			continue
		}
		if query.EventType != "" && !containsFold(item.EventType, query.EventType) {
			continue
		}
		if query.Location != "" && !containsFold(item.Location, query.Location) {
			continue
		}
		if query.Province != "" && !containsFold(item.Province, query.Province) {
			continue
		}
		if query.Search != "" &&
			!containsFold(item.Title, query.Search) &&
			!containsFold(item.Description, query.Search) {
			continue
		}
		filtered = append(filtered, item)
	}

	start := 0
	if query.StartAfterID != "" {
		for i, item := range filtered {
			if item.ID == query.StartAfterID {
				start = i + 1
				break
			}
		}
	}
	limit := query.Limit
	if limit < 1 {
		limit = DefaultListingPageSize
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	page := filtered[start:end]
	if page == nil {
		page = []*models.Listing{}
	}

	result := &ListingPage{
		Items:   page,
		Count:   len(page),
		HasMore: end < len(filtered),
	}
	if len(page) > 0 {
		result.Cursor = page[len(page)-1].ID
	}
	return result, nil
}

// CreateForOrg creates a listing on behalf of the resolved org,
// stamping the org id and organizer name and generating the slug from
// the title.
func (s *ListingService) CreateForOrg(ctx context.Context, org *OrgContext, req models.CreateListingRequest) (*models.Listing, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	organizer := org.OrgName
	if organizer == "" {
		organizer = req.OrganizerName
	}
	listing := &models.Listing{
		Title:         req.Title,
		Slug:          Slugify(req.Title),
		EmployerID:    org.OrgID,
		OrganizerName: organizer,
		Category:      req.Category,
		EventType:     req.EventType,
		Date:          req.Date,
		EndDate:       req.EndDate,
		Deadline:      req.Deadline,
		Location:      req.Location,
		Province:      req.Province,
		Description:   req.Description,
		Amount:        req.Amount,
		AdmissionType: req.AdmissionType,
		PosterURL:     req.PosterURL,
		ExternalURL:   req.ExternalURL,
		Status:        models.StatusActive,
		Active:        true,
	}
	id, err := s.repo.Create(ctx, listing)
	if err != nil {
		return nil, err
	}
	listing.ID = id
	return listing, nil
}

// ListForOrg returns the org's own listings.
func (s *ListingService) ListForOrg(ctx context.Context, orgID string) ([]*models.Listing, error) {
	items, err := s.repo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Listing{}
	}
	return items, nil
}

// Seed merge-upserts listings keyed by slug. Re-running the same
// payload is a no-op; fields absent from an entry are left untouched
// on existing documents.
func (s *ListingService) Seed(ctx context.Context, entries []models.SeedScholarship) (int, error) {
	if len(entries) == 0 {
		return 0, fmt.Errorf("%w: entries required", ErrInvalidInput)
	}
	count := 0
	for _, entry := range entries {
		if entry.Slug == "" || entry.Title == "" {
			continue
		}
		fields := map[string]interface{}{
			"title":  entry.Title,
			"slug":   entry.Slug,
			"status": models.StatusActive,
			"active": true,
		}
		if entry.Deadline != "" {
			fields["deadline"] = entry.Deadline
		}
		if entry.Amount != "" {
			fields["amount"] = entry.Amount
		}
		if entry.Province != "" {
			fields["province"] = entry.Province
		}
		if entry.Description != "" {
			fields["description"] = entry.Description
		}
		if entry.ExternalURL != "" {
			fields["externalUrl"] = entry.ExternalURL
		}
		if err := s.repo.Upsert(ctx, entry.Slug, fields); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ExpireBefore closes active listings whose expiry date string is
// lexicographically less than today (YYYY-MM-DD). Same contract as
// the job sweep: raw string comparison, no date parsing, listings
// without the date field never expire.
func (s *ListingService) ExpireBefore(ctx context.Context, today string) (int, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	var expired []*models.Listing
	for _, item := range items {
		date := s.expiryDate(item)
		if date != "" && date < today {
			expired = append(expired, item)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}
	return s.repo.CloseBatch(ctx, expired)
}
