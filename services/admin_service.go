package services

import (
	"context"
	"errors"
	"time"

	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/sahilchouksey/unifriend-api/utils/validation"
)

// AdminEntry is one global admin with its profile, if any
type AdminEntry struct {
	UserID   string                 `json:"userId"`
	RoleData model.GlobalAdminGrant `json:"roleData"`
	UserData *model.Profile         `json:"userData"`
}

// UniversityAdminEntry is one university admin with profile and university
type UniversityAdminEntry struct {
	UserID         string                     `json:"userId"`
	RoleData       model.UniversityAdminGrant `json:"roleData"`
	UserData       *model.Profile             `json:"userData"`
	UniversityData *model.University          `json:"universityData"`
}

// AdminService manages both grant tables. Every operation requires a
// global admin caller.
type AdminService struct {
	store database.Storage
	now   func() time.Time
}

// NewAdminService creates a new admin service
func NewAdminService(store database.Storage) *AdminService {
	return &AdminService{store: store, now: time.Now}
}

func (s *AdminService) requireProfile(ctx context.Context, userID string) error {
	if _, err := s.store.GetProfile(ctx, userID); err != nil {
		return storeError(err, "User not found.", "Failed to verify user.")
	}
	return nil
}

// GrantGlobalAdmin makes userID a global admin. Granting twice refreshes
// grantedAt and grantedBy.
func (s *AdminService) GrantGlobalAdmin(ctx context.Context, caller *Caller, userID string) error {
	if err := RequireGlobalAdmin(ctx, caller); err != nil {
		return err
	}
	userID = validation.SanitizeString(userID)
	if userID == "" {
		return Validation("User ID is required.")
	}
	if err := s.requireProfile(ctx, userID); err != nil {
		return err
	}

	grant := &model.GlobalAdminGrant{UserID: userID, GrantedAt: s.now().UTC(), GrantedBy: caller.ID()}
	if err := s.store.PutGlobalAdminGrant(ctx, grant); err != nil {
		return Internal("Failed to grant admin role.", err)
	}
	return nil
}

// RevokeGlobalAdmin removes userID's global admin grant. Callers can never
// revoke their own.
func (s *AdminService) RevokeGlobalAdmin(ctx context.Context, caller *Caller, userID string) error {
	if err := RequireGlobalAdmin(ctx, caller); err != nil {
		return err
	}
	if userID == caller.ID() {
		return Forbidden("You cannot revoke your own admin role.")
	}
	if err := s.store.DeleteGlobalAdminGrant(ctx, userID); err != nil {
		return storeError(err, "User does not have admin role.", "Failed to revoke admin role.")
	}
	return nil
}

// ListGlobalAdmins returns every global admin
func (s *AdminService) ListGlobalAdmins(ctx context.Context, caller *Caller) ([]AdminEntry, error) {
	if err := RequireGlobalAdmin(ctx, caller); err != nil {
		return nil, err
	}
	grants, err := s.store.ListGlobalAdminGrants(ctx)
	if err != nil {
		return nil, Internal("Failed to fetch admin users.", err)
	}

	admins := make([]AdminEntry, 0, len(grants))
	for _, grant := range grants {
		profile, err := s.optionalProfile(ctx, grant.UserID)
		if err != nil {
			return nil, Internal("Failed to fetch admin users.", err)
		}
		admins = append(admins, AdminEntry{UserID: grant.UserID, RoleData: grant, UserData: profile})
	}
	return admins, nil
}

// GrantUniversityAdmin scopes userID to universityID, replacing any
// previous university assignment.
func (s *AdminService) GrantUniversityAdmin(ctx context.Context, caller *Caller, userID, universityID string) error {
	if err := RequireGlobalAdmin(ctx, caller); err != nil {
		return err
	}
	userID = validation.SanitizeString(userID)
	universityID = validation.SanitizeString(universityID)
	if userID == "" || universityID == "" {
		return Validation("User ID and University ID are required.")
	}
	if err := s.requireProfile(ctx, userID); err != nil {
		return err
	}
	if _, err := s.store.GetUniversity(ctx, universityID); err != nil {
		return storeError(err, "University not found.", "Failed to verify university.")
	}

	grant := &model.UniversityAdminGrant{
		UserID:       userID,
		UniversityID: universityID,
		GrantedAt:    s.now().UTC(),
		GrantedBy:    caller.ID(),
	}
	if err := s.store.PutUniversityAdminGrant(ctx, grant); err != nil {
		return Internal("Failed to grant university role.", err)
	}
	return nil
}

// RevokeUniversityAdmin removes userID's university grant
func (s *AdminService) RevokeUniversityAdmin(ctx context.Context, caller *Caller, userID string) error {
	if err := RequireGlobalAdmin(ctx, caller); err != nil {
		return err
	}
	if err := s.store.DeleteUniversityAdminGrant(ctx, userID); err != nil {
		return storeError(err, "User does not have university admin role.", "Failed to revoke university role.")
	}
	return nil
}

// ListUniversityAdmins returns every university admin
func (s *AdminService) ListUniversityAdmins(ctx context.Context, caller *Caller) ([]UniversityAdminEntry, error) {
	if err := RequireGlobalAdmin(ctx, caller); err != nil {
		return nil, err
	}
	grants, err := s.store.ListUniversityAdminGrants(ctx)
	if err != nil {
		return nil, Internal("Failed to fetch university admins.", err)
	}

	entries := make([]UniversityAdminEntry, 0, len(grants))
	for _, grant := range grants {
		profile, err := s.optionalProfile(ctx, grant.UserID)
		if err != nil {
			return nil, Internal("Failed to fetch university admins.", err)
		}
		university, err := s.store.GetUniversity(ctx, grant.UniversityID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return nil, Internal("Failed to fetch university admins.", err)
		}
		entries = append(entries, UniversityAdminEntry{
			UserID:         grant.UserID,
			RoleData:       grant,
			UserData:       profile,
			UniversityData: university,
		})
	}
	return entries, nil
}

func (s *AdminService) optionalProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return profile, err
}
