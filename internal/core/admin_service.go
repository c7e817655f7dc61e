package core

import (
	"context"
	"errors"
	"fmt"

	"iopps-backend-go/internal/db"
	"iopps-backend-go/internal/models"
)

// userAllowedRoles guards admin role changes. Role is never accepted
// from profile updates; only this explicit admin operation can
// change it, and only to a known value.
var userAllowedRoles = map[string]bool{
	models.RoleCommunity: true,
	models.RoleEmployer:  true,
	models.RoleAdmin:     true,
}

// PlatformCounts is the admin dashboard summary.
type PlatformCounts struct {
	Jobs          int64 `json:"jobs"`
	Organizations int64 `json:"organizations"`
	Users         int64 `json:"users"`
	Events        int64 `json:"events"`
	Scholarships  int64 `json:"scholarships"`
}

// AdminService backs the privileged admin routes.
type AdminService struct {
	orgs     db.OrgRepository
	stats    db.StatsRepository
	payments db.PaymentRepository
}

// NewAdminService creates an AdminService.
func NewAdminService(orgs db.OrgRepository, stats db.StatsRepository, payments db.PaymentRepository) *AdminService {
	return &AdminService{orgs: orgs, stats: stats, payments: payments}
}

// Counts gathers per-collection totals via count aggregations.
func (s *AdminService) Counts(ctx context.Context) (*PlatformCounts, error) {
	counts := &PlatformCounts{}
	for _, item := range []struct {
		collection string
		target     *int64
	}{
		{"jobs", &counts.Jobs},
		{"organizations", &counts.Organizations},
		{"users", &counts.Users},
		{"events", &counts.Events},
		{"scholarships", &counts.Scholarships},
	} {
		n, err := s.stats.CollectionCount(ctx, item.collection)
		if err != nil {
			return nil, err
		}
		*item.target = n
	}
	return counts, nil
}

// ListUsers returns all user records for the admin console.
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.orgs.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// UpdateUser applies an allow-listed admin update to a user record.
// Only role and newsletterOptIn may change; uid and email are never
// writable through the API.
func (s *AdminService) UpdateUser(ctx context.Context, uid string, body map[string]interface{}) error {
	updates := make(map[string]interface{})
	if role, ok := body["role"].(string); ok {
		if !userAllowedRoles[role] {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
		}
		updates["role"] = role
	}
	if optIn, ok := body["newsletterOptIn"].(bool); ok {
		updates["newsletterOptIn"] = optIn
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: no valid fields to update", ErrInvalidInput)
	}
	if err := s.orgs.UpdateUserFields(ctx, uid, updates); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ListPayments returns billing history for the admin payments view.
func (s *AdminService) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return payments, nil
}
