package services

import (
	"context"
	"errors"
	"sync"

	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/utils/auth"
)

// Roles is the privilege set of one identity. The zero value is a plain user.
type Roles struct {
	IsGlobalAdmin     bool    `json:"isAdmin"`
	IsUniversityAdmin bool    `json:"isUniversityAdmin"`
	UniversityID      *string `json:"universityId"`
}

// CanManageUniversity reports whether the holder may administer
// universityID. Global admins bypass the university match.
func (r Roles) CanManageUniversity(universityID string) bool {
	if r.IsGlobalAdmin {
		return true
	}
	return r.IsUniversityAdmin && r.UniversityID != nil && *r.UniversityID == universityID
}

// RoleResolver classifies an identity from the two grant tables.
type RoleResolver struct {
	store database.RoleStore
}

func NewRoleResolver(store database.RoleStore) *RoleResolver {
	return &RoleResolver{store: store}
}

// Resolve performs two independent point lookups. A missing grant is the
// false case, not an error.
func (r *RoleResolver) Resolve(ctx context.Context, uid string) (Roles, error) {
	var roles Roles

	if _, err := r.store.GetGlobalAdminGrant(ctx, uid); err == nil {
		roles.IsGlobalAdmin = true
	} else if !errors.Is(err, database.ErrNotFound) {
		return Roles{}, Internal("Failed to verify admin status.", err)
	}

	grant, err := r.store.GetUniversityAdminGrant(ctx, uid)
	switch {
	case err == nil:
		roles.IsUniversityAdmin = true
		universityID := grant.UniversityID
		roles.UniversityID = &universityID
	case !errors.Is(err, database.ErrNotFound):
		return Roles{}, Internal("Failed to verify university admin status.", err)
	}

	return roles, nil
}

// Caller is the authenticated principal of one request. Roles are looked
// up on first use and reused for the rest of the request.
type Caller struct {
	Identity auth.Identity

	resolver *RoleResolver
	once     sync.Once
	roles    Roles
	err      error
}

func NewCaller(identity auth.Identity, resolver *RoleResolver) *Caller {
	return &Caller{Identity: identity, resolver: resolver}
}

// ID is the identity-provider uid.
func (c *Caller) ID() string { return c.Identity.UID }

func (c *Caller) Roles(ctx context.Context) (Roles, error) {
	c.once.Do(func() {
		c.roles, c.err = c.resolver.Resolve(ctx, c.Identity.UID)
	})
	return c.roles, c.err
}
