package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"iopps-backend-go/internal/models"
)

const (
	organizationsCollection = "organizations"
	membersCollection       = "members"
	usersCollection         = "users"
	activitySubcollection   = "activity"
	profileViewsSub         = "profileViews"
)

type firestoreOrgRepository struct {
	client *firestore.Client
}

// NewFirestoreOrgRepository creates a Firestore-backed OrgRepository.
func NewFirestoreOrgRepository(client *firestore.Client) OrgRepository {
	return &firestoreOrgRepository{client: client}
}

func (r *firestoreOrgRepository) GetMember(ctx context.Context, uid string) (*models.Member, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty")
	}
	doc, err := r.client.Collection(membersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("member %q: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get member %q: %w", uid, err)
	}
	var member models.Member
	if err := doc.DataTo(&member); err != nil {
		return nil, fmt.Errorf("failed to decode member %q: %w", uid, err)
	}
	member.UID = doc.Ref.ID
	return &member, nil
}

func (r *firestoreOrgRepository) GetUser(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty")
	}
	doc, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user %q: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %q: %w", uid, err)
	}
	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %q: %w", uid, err)
	}
	user.ID = doc.Ref.ID
	return &user, nil
}

func (r *firestoreOrgRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	iter := r.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("users query failed: %w", err)
		}
		var user models.User
		if err := doc.DataTo(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user %q: %w", doc.Ref.ID, err)
		}
		user.ID = doc.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}

func (r *firestoreOrgRepository) UpdateUserFields(ctx context.Context, uid string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for key, value := range fields {
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	if _, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user %q: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update user %q: %w", uid, err)
	}
	return nil
}

func (r *firestoreOrgRepository) GetOrganization(ctx context.Context, orgID string) (*models.Organization, error) {
	if orgID == "" {
		return nil, errors.New("orgID cannot be empty")
	}
	doc, err := r.client.Collection(organizationsCollection).Doc(orgID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("organization %q: %w", orgID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get organization %q: %w", orgID, err)
	}
	var org models.Organization
	if err := doc.DataTo(&org); err != nil {
		return nil, fmt.Errorf("failed to decode organization %q: %w", orgID, err)
	}
	org.ID = doc.Ref.ID
	return &org, nil
}

func (r *firestoreOrgRepository) ListOrganizations(ctx context.Context) ([]*models.Organization, error) {
	var orgs []*models.Organization
	iter := r.client.Collection(organizationsCollection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("organizations query failed: %w", err)
		}
		var org models.Organization
		if err := doc.DataTo(&org); err != nil {
			return nil, fmt.Errorf("failed to decode organization %q: %w", doc.Ref.ID, err)
		}
		org.ID = doc.Ref.ID
		orgs = append(orgs, &org)
	}
	return orgs, nil
}

func (r *firestoreOrgRepository) UpdateFields(ctx context.Context, orgID string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for key, value := range fields {
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	if _, err := r.client.Collection(organizationsCollection).Doc(orgID).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("organization %q: %w", orgID, ErrNotFound)
		}
		return fmt.Errorf("failed to update organization %q: %w", orgID, err)
	}
	return nil
}

func (r *firestoreOrgRepository) AppendActivity(ctx context.Context, orgID string, entry *models.ActivityEntry) error {
	_, _, err := r.client.Collection(organizationsCollection).
		Doc(orgID).
		Collection(activitySubcollection).
		Add(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to append activity for organization %q: %w", orgID, err)
	}
	return nil
}

// CountProfileViews runs a count aggregation over the profileViews
// subcollection. Callers treat any error as a zero count.
func (r *firestoreOrgRepository) CountProfileViews(ctx context.Context, orgID string) (int64, error) {
	query := r.client.Collection(organizationsCollection).
		Doc(orgID).
		Collection(profileViewsSub).
		NewAggregationQuery().
		WithCount("count")
	result, err := query.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("profile view count failed for organization %q: %w", orgID, err)
	}
	value, ok := result["count"]
	if !ok {
		return 0, errors.New("count aggregation returned no value")
	}
	countValue, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, errors.New("unexpected count aggregation type")
	}
	return countValue.GetIntegerValue(), nil
}
