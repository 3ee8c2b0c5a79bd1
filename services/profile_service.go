package services

import (
	"context"
	"errors"
	"time"

	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/model"
	"gorm.io/datatypes"
)

// ProfileService reads and updates profiles
type ProfileService struct {
	store database.ProfileStore
	now   func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(store database.ProfileStore) *ProfileService {
	return &ProfileService{store: store, now: time.Now}
}

// GetOrCreateOwn returns the caller's profile, creating it from the
// identity on first access.
func (s *ProfileService) GetOrCreateOwn(ctx context.Context, caller *Caller) (*model.Profile, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, caller.ID())
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, Internal("Failed to fetch profile.", err)
	}

	now := s.now().UTC()
	profile = &model.Profile{
		ID:        caller.ID(),
		Email:     caller.Identity.Email,
		FullName:  caller.Identity.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		return nil, Internal("Failed to fetch profile.", err)
	}
	return profile, nil
}

// Get returns userID's profile to its owner or a global admin
func (s *ProfileService) Get(ctx context.Context, caller *Caller, userID string) (*model.Profile, error) {
	if err := RequireOwnerOrGlobalAdmin(ctx, caller, userID, "You can only view your own profile."); err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found.", "Failed to fetch user profile.")
	}
	return profile, nil
}

// Update merges patch into userID's profile. id, createdAt and updatedAt
// in the patch are ignored; email and fullName update their columns and
// every other key is kept as a free-form attribute.
func (s *ProfileService) Update(ctx context.Context, caller *Caller, userID string, patch map[string]interface{}) (*model.Profile, error) {
	if err := RequireOwnerOrGlobalAdmin(ctx, caller, userID, "You can only update your own profile."); err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found.", "Failed to update profile.")
	}

	attributes := model.CloneAttributes(profile.Attributes)
	if attributes == nil {
		attributes = map[string]interface{}{}
	}

	for key, value := range patch {
		switch key {
		case "id", "createdAt", "updatedAt":
			continue
		case "email":
			email, ok := value.(string)
			if !ok {
				return nil, Validation("email must be a string.")
			}
			profile.Email = email
		case "fullName":
			fullName, ok := value.(string)
			if !ok {
				return nil, Validation("fullName must be a string.")
			}
			profile.FullName = fullName
		default:
			attributes[key] = value
		}
	}

	profile.Attributes = datatypes.JSONMap(attributes)
	profile.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, storeError(err, "User not found.", "Failed to update profile.")
	}
	return profile, nil
}
