package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/sahilchouksey/unifriend-api/utils/auth"
)

// AuthService exchanges identity tokens for profile and role information
type AuthService struct {
	verifier auth.TokenVerifier
	profiles database.ProfileStore
	resolver *RoleResolver
}

// NewAuthService creates a new auth service
func NewAuthService(verifier auth.TokenVerifier, profiles database.ProfileStore, resolver *RoleResolver) *AuthService {
	return &AuthService{verifier: verifier, profiles: profiles, resolver: resolver}
}

// Session is the result of a token exchange
type Session struct {
	Identity auth.Identity
	Profile  *model.Profile // nil until the profile is first fetched
	Roles    Roles
}

// UserDocument merges the identity with the stored profile. Profile keys
// win over identity keys.
func (s *Session) UserDocument() (map[string]interface{}, error) {
	doc := map[string]interface{}{
		"uid":           s.Identity.UID,
		"email":         s.Identity.Email,
		"emailVerified": s.Identity.EmailVerified,
		"name":          s.Identity.Name,
		"picture":       s.Identity.Picture,
	}
	if s.Profile == nil {
		return doc, nil
	}

	raw, err := json.Marshal(s.Profile)
	if err != nil {
		return nil, err
	}
	profile := map[string]interface{}{}
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	for key, value := range profile {
		doc[key] = value
	}
	return doc, nil
}

// Authenticate verifies a bearer token and returns the caller
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Caller, error) {
	identity, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, Unauthenticated("Invalid or expired token. Please login again.", err)
	}
	return NewCaller(*identity, s.resolver), nil
}

// VerifyToken handles the token exchange. The profile is read, never created.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, Validation("Token is required.")
	}

	identity, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, Unauthenticated("Invalid or expired token.", err)
	}

	session := &Session{Identity: *identity}

	profile, err := s.profiles.GetProfile(ctx, identity.UID)
	switch {
	case err == nil:
		session.Profile = profile
	case !errors.Is(err, database.ErrNotFound):
		return nil, Internal("Failed to fetch user profile.", err)
	}

	roles, err := s.resolver.Resolve(ctx, identity.UID)
	if err != nil {
		return nil, err
	}
	session.Roles = roles

	return session, nil
}

// Me returns the caller's stored profile and roles
func (s *AuthService) Me(ctx context.Context, caller *Caller) (*model.Profile, Roles, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return nil, Roles{}, err
	}

	profile, err := s.profiles.GetProfile(ctx, caller.ID())
	if err != nil {
		return nil, Roles{}, storeError(err, "User profile not found.", "Failed to fetch user profile.")
	}

	roles, err := caller.Roles(ctx)
	if err != nil {
		return nil, Roles{}, err
	}
	return profile, roles, nil
}
