package core

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"iopps-backend-go/internal/models"
)

func newTestOrgService(orgs *fakeOrgRepo, jobs *fakeJobRepo, mailer Mailer) *OrgService {
	return NewOrgService(orgs, jobs, mailer, zap.NewNop())
}

func TestResolveOrgMemberWins(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.members["u1"] = &models.Member{UID: "u1", OrgID: "org-a", OrgRole: "editor"}
	orgs.users["u1"] = &models.User{ID: "u1", Role: models.RoleEmployer, EmployerID: "org-b"}

	svc := newTestOrgService(orgs, newFakeJobRepo(), nil)
	org, err := svc.ResolveOrg(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected resolution, got %v", err)
	}
	if org.OrgID != "org-a" {
		t.Fatalf("expected members record to win, got org %s", org.OrgID)
	}
	if org.OrgRole != "editor" {
		t.Fatalf("expected orgRole editor, got %s", org.OrgRole)
	}
}

func TestResolveOrgUserFallback(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.users["u2"] = &models.User{ID: "u2", Role: models.RoleEmployer, EmployerID: "org-b"}

	svc := newTestOrgService(orgs, newFakeJobRepo(), nil)
	org, err := svc.ResolveOrg(context.Background(), "u2")
	if err != nil {
		t.Fatalf("expected fallback resolution, got %v", err)
	}
	if org.OrgID != "org-b" || org.OrgRole != "owner" {
		t.Fatalf("expected org-b/owner, got %s/%s", org.OrgID, org.OrgRole)
	}
}

func TestResolveOrgNotAnEmployer(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.users["u3"] = &models.User{ID: "u3", Role: models.RoleCommunity}

	svc := newTestOrgService(orgs, newFakeJobRepo(), nil)
	if _, err := svc.ResolveOrg(context.Background(), "u3"); !errors.Is(err, ErrNotAnEmployer) {
		t.Fatalf("expected ErrNotAnEmployer, got %v", err)
	}
	if _, err := svc.ResolveOrg(context.Background(), "missing"); !errors.Is(err, ErrNotAnEmployer) {
		t.Fatalf("expected ErrNotAnEmployer for unknown uid, got %v", err)
	}
}

func TestUpdateProfileAllowList(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.orgs["org-a"] = &models.Organization{ID: "org-a", Name: "Eagle Feather Works"}

	svc := newTestOrgService(orgs, newFakeJobRepo(), nil)
	keys, err := svc.UpdateProfile(context.Background(), "org-a", map[string]interface{}{
		"name":     "Eagle Feather Works Ltd",
		"tagline":  "Building community",
		"role":     "admin",
		"verified": true,
	})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 allow-listed keys, got %v", keys)
	}
	updates := orgs.orgUpdates["org-a"]
	if _, ok := updates["role"]; ok {
		t.Fatalf("role must never pass the allow-list")
	}
	if _, ok := updates["verified"]; ok {
		t.Fatalf("verified must never pass the allow-list")
	}
	if len(orgs.activity["org-a"]) != 1 {
		t.Fatalf("expected one activity entry, got %d", len(orgs.activity["org-a"]))
	}
}

func TestUpdateProfileNoValidFields(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.orgs["org-a"] = &models.Organization{ID: "org-a"}

	svc := newTestOrgService(orgs, newFakeJobRepo(), nil)
	_, err := svc.UpdateProfile(context.Background(), "org-a", map[string]interface{}{"uid": "x"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListPublicGatesOnPlanAndVerified(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.orgs["a"] = &models.Organization{ID: "a", Name: "Listed", Verified: true, Plan: "annual", Type: "school"}
	orgs.orgs["b"] = &models.Organization{ID: "b", Name: "Unverified", Verified: false, Plan: "annual"}
	orgs.orgs["c"] = &models.Organization{ID: "c", Name: "No Plan", Verified: true}

	svc := newTestOrgService(orgs, newFakeJobRepo(), nil)
	page, err := svc.ListPublic(context.Background(), OrgQuery{})
	if err != nil {
		t.Fatalf("expected listing, got %v", err)
	}
	if page.Total != 1 || page.Organizations[0].ID != "a" {
		t.Fatalf("expected only the verified+plan org, got %d", page.Total)
	}

	schools, err := svc.ListPublic(context.Background(), OrgQuery{Type: "school"})
	if err != nil {
		t.Fatalf("expected school listing, got %v", err)
	}
	if schools.Total != 1 {
		t.Fatalf("expected the school to match the type filter, got %d", schools.Total)
	}
}

func TestStatsProfileViewsDegradeToZero(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.viewsErr = errors.New("subcollection unavailable")
	jobs := newFakeJobRepo()
	jobs.add(&models.Job{EmployerID: "org-a", Active: true, ViewCount: 7})
	jobs.add(&models.Job{EmployerID: "org-a", Active: false, ViewCount: 3})

	svc := newTestOrgService(orgs, jobs, nil)
	stats, err := svc.Stats(context.Background(), "org-a")
	if err != nil {
		t.Fatalf("expected stats despite view error, got %v", err)
	}
	if stats.JobCount != 2 || stats.ActiveJobs != 1 {
		t.Fatalf("unexpected job counts: %+v", stats)
	}
	if stats.TotalViews != 10 {
		t.Fatalf("expected 10 total views, got %d", stats.TotalViews)
	}
	if stats.ProfileViews != 0 {
		t.Fatalf("expected profile views to degrade to 0, got %d", stats.ProfileViews)
	}
}

func TestSetVerificationApproveSendsMail(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.orgs["org-a"] = &models.Organization{ID: "org-a", Name: "Raven Co", ContactEmail: "hello@raven.example"}
	mailer := &fakeMailer{}

	svc := newTestOrgService(orgs, newFakeJobRepo(), mailer)
	if err := svc.SetVerification(context.Background(), "org-a", true); err != nil {
		t.Fatalf("expected approval to succeed, got %v", err)
	}
	if got := orgs.orgUpdates["org-a"]["verified"]; got != true {
		t.Fatalf("expected verified=true, got %v", got)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "hello@raven.example" {
		t.Fatalf("expected approval email, got %v", mailer.sent)
	}

	if err := svc.SetVerification(context.Background(), "missing", true); !errors.Is(err, ErrOrgNotFound) {
		t.Fatalf("expected ErrOrgNotFound, got %v", err)
	}
}
