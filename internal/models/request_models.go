package models

// CreateJobRequest is the employer-facing job creation payload.
// EmployerID is never taken from the client; it is stamped from the
// resolved org.
type CreateJobRequest struct {
	Title                string `json:"title" binding:"required"`
	Location             string `json:"location,omitempty"`
	Province             string `json:"province,omitempty"`
	EmploymentType       string `json:"employmentType,omitempty"`
	Category             string `json:"category,omitempty"`
	RemoteFlag           bool   `json:"remoteFlag,omitempty"`
	IndigenousPreference bool   `json:"indigenousPreference,omitempty"`
	Description          string `json:"description,omitempty"`
	Salary               string `json:"salary,omitempty"`
	ApplicationURL       string `json:"applicationUrl,omitempty"`
	ApplicationEmail     string `json:"applicationEmail,omitempty"`
	ClosingDate          string `json:"closingDate,omitempty"` // YYYY-MM-DD
}

// CreateListingRequest covers employer-created events and scholarships.
type CreateListingRequest struct {
	Title         string `json:"title" binding:"required"`
	Category      string `json:"category,omitempty"`
	EventType     string `json:"eventType,omitempty"`
	Date          string `json:"date,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	Deadline      string `json:"deadline,omitempty"`
	Location      string `json:"location,omitempty"`
	Province      string `json:"province,omitempty"`
	Description   string `json:"description,omitempty"`
	Amount        string `json:"amount,omitempty"`
	AdmissionType string `json:"admissionType,omitempty"`
	PosterURL     string `json:"posterUrl,omitempty"`
	ExternalURL   string `json:"externalUrl,omitempty"`
	OrganizerName string `json:"organizerName,omitempty"`
}

// ImportJob is one entry of the bulk job-import payload fed by the
// external feed scraper.
type ImportJob struct {
	Title          string `json:"title"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	Description    string `json:"description,omitempty"`
	EmploymentType string `json:"employmentType,omitempty"`
	Salary         string `json:"salary,omitempty"`
	ExternalURL    string `json:"externalUrl"`
	DatePosted     string `json:"datePosted,omitempty"`
}

// ImportJobsRequest is the body of POST /api/admin/import-jobs.
type ImportJobsRequest struct {
	Jobs []ImportJob `json:"jobs"`
}

// SeedScholarship is one merge-write upsert entry, keyed by slug.
type SeedScholarship struct {
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Deadline    string `json:"deadline,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Province    string `json:"province,omitempty"`
	Description string `json:"description,omitempty"`
	ExternalURL string `json:"externalUrl,omitempty"`
}

// SessionRequest exchanges a Firebase ID token for the session cookie.
type SessionRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// CheckoutRequest starts a Stripe checkout for a job-posting product.
type CheckoutRequest struct {
	ProductType string `json:"productType" binding:"required"`
	JobID       string `json:"jobId,omitempty"`
	ReturnURL   string `json:"returnUrl,omitempty"`
}
