package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"iopps-backend-go/internal/db"
	"iopps-backend-go/internal/models"
)

// OrgContext identifies the organization an authenticated user may
// act on behalf of.
type OrgContext struct {
	UID     string `json:"uid"`
	OrgID   string `json:"orgId"`
	OrgRole string `json:"orgRole"`
	OrgName string `json:"orgName,omitempty"`
}

// profileAllowedFields is the allow-list for employer profile
// updates. Anything not listed is ignored, never written.
var profileAllowedFields = map[string]bool{
	"name": true, "tagline": true, "description": true, "location": true,
	"website": true, "contactEmail": true, "phone": true, "province": true,
	"indigenousGroups": true, "nation": true, "treatyTerritory": true,
	"tags": true, "services": true, "socialLinks": true,
	"logoUrl": true, "bannerUrl": true,
}

// Mailer sends notification email. Nil-safe at the call sites; when
// email is unconfigured the service simply skips sending.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// OrgQuery filters the public organization directory.
type OrgQuery struct {
	Search   string
	Type     string
	Province string
	Location string
	Page     int
	Limit    int
}

// OrgPage is one page of the public directory.
type OrgPage struct {
	Organizations []*models.Organization `json:"organizations"`
	Count         int                    `json:"count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Total         int                    `json:"total"`
	TotalPages    int                    `json:"totalPages"`
}

// EmployerStats is the employer dashboard summary.
type EmployerStats struct {
	JobCount     int   `json:"jobCount"`
	ActiveJobs   int   `json:"activeJobs"`
	TotalViews   int64 `json:"totalViews"`
	ProfileViews int64 `json:"profileViews"`
}

// OrgService resolves org membership and owns organization-level
// business rules.
type OrgService struct {
	orgs   db.OrgRepository
	jobs   db.JobRepository
	mailer Mailer
	logger *zap.Logger
}

// NewOrgService creates an OrgService. mailer may be nil.
func NewOrgService(orgs db.OrgRepository, jobs db.JobRepository, mailer Mailer, logger *zap.Logger) *OrgService {
	return &OrgService{orgs: orgs, jobs: jobs, mailer: mailer, logger: logger}
}

// ResolveOrg maps a verified uid to the organization it may act for.
// Two membership models accreted over time, so the lookup is ordered:
// members/{uid} wins, then users/{uid}.employerId for employer-role
// users. Some organizations only have one of the two records; both
// lookups must stay until the members migration completes.
func (s *OrgService) ResolveOrg(ctx context.Context, uid string) (*OrgContext, error) {
	member, err := s.orgs.GetMember(ctx, uid)
	if err == nil && member.OrgID != "" {
		role := member.OrgRole
		if role == "" {
			role = "member"
		}
		return &OrgContext{UID: uid, OrgID: member.OrgID, OrgRole: role, OrgName: member.OrgName}, nil
	}
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("member lookup failed: %w", err)
	}

	user, err := s.orgs.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotAnEmployer
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if user.Role == models.RoleEmployer && user.EmployerID != "" {
		return &OrgContext{UID: uid, OrgID: user.EmployerID, OrgRole: "owner"}, nil
	}
	return nil, ErrNotAnEmployer
}

// ListPublic returns the organization directory page. Only verified
// organizations on a plan are publicly listed; plan and verified
// jointly gate visibility.
func (s *OrgService) ListPublic(ctx context.Context, query OrgQuery) (*OrgPage, error) {
	orgs, err := s.orgs.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Organization, 0, len(orgs))
	for _, org := range orgs {
		if !org.Verified || org.Plan == "" {
			continue
		}
		if query.Type != "" && !strings.EqualFold(org.Type, query.Type) {
			continue
		}
		if query.Province != "" && !strings.EqualFold(org.Province, query.Province) {
			continue
		}
		if query.Location != "" && !containsFold(org.Location, query.Location) {
			continue
		}
		if query.Search != "" &&
			!containsFold(org.Name, query.Search) &&
			!containsFold(org.Description, query.Search) {
			continue
		}
		filtered = append(filtered, org)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = DefaultListingPageSize
	}
	start, end, totalPages := pageBounds(len(filtered), page, limit)
	items := filtered[start:end]

	return &OrgPage{
		Organizations: items,
		Count:         len(items),
		Page:          page,
		Limit:         limit,
		Total:         len(filtered),
		TotalPages:    totalPages,
	}, nil
}

// UpdateProfile applies allow-listed fields to the organization and
// appends an activity log entry. Returns the keys actually written.
func (s *OrgService) UpdateProfile(ctx context.Context, orgID string, body map[string]interface{}) ([]string, error) {
	updates := make(map[string]interface{})
	for key, value := range body {
		if profileAllowedFields[key] {
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no valid fields to update", ErrInvalidInput)
	}

	if err := s.orgs.UpdateFields(ctx, orgID, updates); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}

	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	entry := &models.ActivityEntry{
		Type:    "profile_update",
		Message: "Profile updated: " + strings.Join(keys, ", "),
	}
	if err := s.orgs.AppendActivity(ctx, orgID, entry); err != nil {
		// The profile write already landed; a failed log append is
		// not worth failing the request over.
		s.logger.Warn("activity append failed", zap.String("orgId", orgID), zap.Error(err))
	}
	return keys, nil
}

// Stats summarizes an employer's postings. The profile-view
// subcollection read degrades to zero on error rather than failing
// the dashboard.
func (s *OrgService) Stats(ctx context.Context, orgID string) (*EmployerStats, error) {
	jobs, err := s.jobs.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	stats := &EmployerStats{JobCount: len(jobs)}
	for _, job := range jobs {
		stats.TotalViews += job.ViewCount
		if job.Active {
			stats.ActiveJobs++
		}
	}
	views, err := s.orgs.CountProfileViews(ctx, orgID)
	if err != nil {
		s.logger.Warn("profile view count failed, defaulting to 0",
			zap.String("orgId", orgID), zap.Error(err))
		views = 0
	}
	stats.ProfileViews = views
	return stats, nil
}

// SetVerification approves or revokes an organization's verified
// flag, logs the decision, and on approval sends a notification email
// when mail is configured.
func (s *OrgService) SetVerification(ctx context.Context, orgID string, approve bool) error {
	org, err := s.orgs.GetOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrOrgNotFound
		}
		return err
	}

	if err := s.orgs.UpdateFields(ctx, orgID, map[string]interface{}{"verified": approve}); err != nil {
		return err
	}

	action := "rejected"
	if approve {
		action = "approved"
	}
	entry := &models.ActivityEntry{Type: "verification", Message: "Verification " + action}
	if err := s.orgs.AppendActivity(ctx, orgID, entry); err != nil {
		s.logger.Warn("activity append failed", zap.String("orgId", orgID), zap.Error(err))
	}

	if approve && s.mailer != nil && org.ContactEmail != "" {
		body := "<p>Good news! <strong>" + org.Name + "</strong> has been verified on IOPPS. " +
			"Your organization now appears in the public directory.</p>"
		if err := s.mailer.Send(org.ContactEmail, "Your organization has been verified", body); err != nil {
			s.logger.Warn("approval email failed", zap.String("orgId", orgID), zap.Error(err))
		}
	}
	return nil
}
