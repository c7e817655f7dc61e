package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"iopps-backend-go/internal/db"
	"iopps-backend-go/internal/models"
)

// JobQuery filters the public jobs listing.
type JobQuery struct {
	Search         string
	Category       string
	EmploymentType string
	Location       string
	Province       string
	EmployerName   string
	RemoteOnly     bool
	IndigenousOnly bool
	Page           int
	Limit          int
}

// JobPage is one page of the public jobs listing. Count is the number
// of jobs on this page; Total the size of the filtered set.
type JobPage struct {
	Jobs       []*models.Job `json:"jobs"`
	Count      int           `json:"count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

// ImportResult reports a bulk import: stored titles and skipped
// entries with the skip reason appended.
type ImportResult struct {
	Imported       int      `json:"imported"`
	Skipped        int      `json:"skipped"`
	ImportedTitles []string `json:"importedTitles"`
	SkippedTitles  []string `json:"skippedTitles"`
}

// JobService owns job listing, mutation, import, and expiry rules.
type JobService struct {
	jobs   db.JobRepository
	logger *zap.Logger
}

// NewJobService creates a JobService.
func NewJobService(jobs db.JobRepository, logger *zap.Logger) *JobService {
	return &JobService{jobs: jobs, logger: logger}
}

// ListPublic returns a page of active jobs. The store handles the
// active constraint and ordering; substring filters run in memory and
// pagination is applied last.
func (s *JobService) ListPublic(ctx context.Context, query JobQuery) (*JobPage, error) {
	jobs, err := s.jobs.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Job, 0, len(jobs))
	for _, job := range jobs {
		if query.EmployerName != "" &&
			!containsFold(job.EmployerName, query.EmployerName) &&
			!containsFold(job.Company, query.EmployerName) {
			continue
		}
		if query.Category != "" && !containsFold(job.Category, query.Category) {
			continue
		}
		if query.EmploymentType != "" && !containsFold(job.EmploymentType, query.EmploymentType) {
			continue
		}
		if query.Location != "" && !containsFold(job.Location, query.Location) {
			continue
		}
		if query.Province != "" && !containsFold(job.Province, query.Province) {
			continue
		}
		if query.RemoteOnly && !job.RemoteFlag {
			continue
		}
		if query.IndigenousOnly && !job.IndigenousPreference {
			continue
		}
		if query.Search != "" &&
			!containsFold(job.Title, query.Search) &&
			!containsFold(job.Description, query.Search) {
			continue
		}
		filtered = append(filtered, job)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = DefaultJobPageSize
	}
	start, end, totalPages := pageBounds(len(filtered), page, limit)
	items := filtered[start:end]
	if items == nil {
		items = []*models.Job{}
	}

	return &JobPage{
		Jobs:       items,
		Count:      len(items),
		Page:       page,
		Limit:      limit,
		Total:      len(filtered),
		TotalPages: totalPages,
	}, nil
}

// GetActive returns a single public job. Missing and inactive jobs
// are indistinguishable to callers.
func (s *JobService) GetActive(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if !job.Active {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// RecordView bumps the view counter. Failures are logged, not
// surfaced; the view endpoint always answers 200.
func (s *JobService) RecordView(ctx context.Context, id string) {
	if err := s.jobs.IncrementViews(ctx, id); err != nil {
		s.logger.Debug("view increment failed", zap.String("jobId", id), zap.Error(err))
	}
}

// CreateForOrg creates an employer job posting, stamping the resolved
// org onto the record so a caller can never write into another
// tenant.
func (s *JobService) CreateForOrg(ctx context.Context, org *OrgContext, req models.CreateJobRequest) (*models.Job, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	job := &models.Job{
		Title:                req.Title,
		EmployerID:           org.OrgID,
		EmployerName:         org.OrgName,
		Location:             req.Location,
		Province:             req.Province,
		EmploymentType:       req.EmploymentType,
		Category:             req.Category,
		RemoteFlag:           req.RemoteFlag,
		IndigenousPreference: req.IndigenousPreference,
		Description:          req.Description,
		Salary:               req.Salary,
		ApplicationURL:       req.ApplicationURL,
		ApplicationEmail:     req.ApplicationEmail,
		ClosingDate:          req.ClosingDate,
		Status:               models.StatusActive,
		Active:               true,
	}
	id, err := s.jobs.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	job.ID = id
	job.Collection = "jobs"
	return job, nil
}

// ListForOrg returns an employer's own postings, active or not.
func (s *JobService) ListForOrg(ctx context.Context, orgID string) ([]*models.Job, error) {
	jobs, err := s.jobs.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*models.Job{}
	}
	return jobs, nil
}

// Import bulk-loads scraped jobs. A job is accepted only when no
// document in either legacy collection shares its externalUrl;
// duplicates are skipped and reported, never overwritten. Accepted
// jobs are written in chunked batches, so a re-run after a partial
// failure is safe: everything already committed is skipped as a
// duplicate.
func (s *JobService) Import(ctx context.Context, entries []models.ImportJob) (*ImportResult, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: jobs array required", ErrInvalidInput)
	}

	result := &ImportResult{ImportedTitles: []string{}, SkippedTitles: []string{}}
	seen := make(map[string]bool)
	var accepted []*models.Job

	for _, entry := range entries {
		if entry.Title == "" || entry.ExternalURL == "" {
			title := entry.Title
			if title == "" {
				title = "untitled"
			}
			result.SkippedTitles = append(result.SkippedTitles, title)
			continue
		}
		if seen[entry.ExternalURL] {
			result.SkippedTitles = append(result.SkippedTitles, entry.Title+" (duplicate)")
			continue
		}
		exists, err := s.jobs.ExistsByExternalURL(ctx, entry.ExternalURL)
		if err != nil {
			return nil, err
		}
		if exists {
			result.SkippedTitles = append(result.SkippedTitles, entry.Title+" (duplicate)")
			continue
		}
		seen[entry.ExternalURL] = true

		company := entry.Company
		if company == "" {
			company = "Unknown"
		}
		accepted = append(accepted, &models.Job{
			Title:          entry.Title,
			Company:        company,
			EmployerName:   company,
			Location:       entry.Location,
			Description:    entry.Description,
			EmploymentType: entry.EmploymentType,
			Salary:         entry.Salary,
			ExternalURL:    entry.ExternalURL,
			ApplicationURL: entry.ExternalURL,
			Source:         "feed-import",
			Status:         models.StatusPending,
			Active:         false,
		})
		result.ImportedTitles = append(result.ImportedTitles, entry.Title)
	}

	if len(accepted) > 0 {
		if _, err := s.jobs.CreateBatch(ctx, accepted); err != nil {
			return nil, err
		}
	}
	result.Imported = len(result.ImportedTitles)
	result.Skipped = len(result.SkippedTitles)
	return result, nil
}

// ExpireBefore closes every active job whose closing date string is
// lexicographically less than today (YYYY-MM-DD). The comparison is
// on the raw strings; the field is stored sortable and is never
// parsed here. Jobs without a closing date never expire.
func (s *JobService) ExpireBefore(ctx context.Context, today string) (int, error) {
	jobs, err := s.jobs.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	var expired []*models.Job
	for _, job := range jobs {
		if job.ClosingDate != "" && job.ClosingDate < today {
			expired = append(expired, job)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}
	return s.jobs.CloseBatch(ctx, expired)
}
