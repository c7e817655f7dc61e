package core

import (
	"context"
	"errors"
	"testing"

	"iopps-backend-go/internal/models"
)

func TestUpdateUserRoleAllowList(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.users["u1"] = &models.User{ID: "u1", Role: models.RoleCommunity}
	svc := NewAdminService(orgs, &fakeStatsRepo{}, newFakePaymentRepo())

	if err := svc.UpdateUser(context.Background(), "u1", map[string]interface{}{"role": "employer"}); err != nil {
		t.Fatalf("expected role update, got %v", err)
	}
	if orgs.userUpdates["u1"]["role"] != "employer" {
		t.Fatalf("expected role written, got %v", orgs.userUpdates["u1"])
	}

	err := svc.UpdateUser(context.Background(), "u1", map[string]interface{}{"role": "superadmin"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected unknown role rejected, got %v", err)
	}
}

func TestUpdateUserIgnoresUnlistedFields(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.users["u1"] = &models.User{ID: "u1", Email: "u1@example.ca"}
	svc := NewAdminService(orgs, &fakeStatsRepo{}, newFakePaymentRepo())

	err := svc.UpdateUser(context.Background(), "u1", map[string]interface{}{
		"newsletterOptIn": true,
		"email":           "hijack@example.ca",
	})
	if err != nil {
		t.Fatalf("expected update, got %v", err)
	}
	updates := orgs.userUpdates["u1"]
	if _, ok := updates["email"]; ok {
		t.Fatalf("email must never be writable")
	}
	if updates["newsletterOptIn"] != true {
		t.Fatalf("expected newsletterOptIn written, got %v", updates)
	}

	err = svc.UpdateUser(context.Background(), "u1", map[string]interface{}{"email": "x@example.ca"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected no-valid-fields error, got %v", err)
	}
}

func TestUpdateUserMissing(t *testing.T) {
	svc := NewAdminService(newFakeOrgRepo(), &fakeStatsRepo{}, newFakePaymentRepo())
	err := svc.UpdateUser(context.Background(), "nobody", map[string]interface{}{"role": "admin"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCounts(t *testing.T) {
	stats := &fakeStatsRepo{counts: map[string]int64{
		"jobs": 12, "organizations": 4, "users": 30, "events": 7, "scholarships": 9,
	}}
	svc := NewAdminService(newFakeOrgRepo(), stats, newFakePaymentRepo())

	counts, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("expected counts, got %v", err)
	}
	if counts.Jobs != 12 || counts.Organizations != 4 || counts.Users != 30 || counts.Events != 7 || counts.Scholarships != 9 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
