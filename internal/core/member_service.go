package core

import (
	"context"
	"errors"
	"fmt"

	"iopps-backend-go/internal/db"
	"iopps-backend-go/internal/models"
)

// memberAllowedFields is the allow-list for self-service profile
// updates. Role, uid, and email can never be changed this way.
var memberAllowedFields = map[string]bool{
	"displayName": true, "photoUrl": true, "bio": true,
	"location": true, "province": true, "phone": true,
	"newsletterOptIn": true,
}

// MemberService backs the member self-service profile routes.
type MemberService struct {
	orgs db.OrgRepository
}

// NewMemberService creates a MemberService.
func NewMemberService(orgs db.OrgRepository) *MemberService {
	return &MemberService{orgs: orgs}
}

// Profile returns the caller's own user record.
func (s *MemberService) Profile(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.orgs.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies allow-listed fields to the caller's own user
// record. Returns the keys actually written.
func (s *MemberService) UpdateProfile(ctx context.Context, uid string, body map[string]interface{}) ([]string, error) {
	updates := make(map[string]interface{})
	for key, value := range body {
		if memberAllowedFields[key] {
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no valid fields to update", ErrInvalidInput)
	}
	if err := s.orgs.UpdateUserFields(ctx, uid, updates); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	return keys, nil
}
