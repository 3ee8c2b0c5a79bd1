package services

import "context"

// Guards compose by conjunction; each returns nil to pass. Callers stop at
// the first error so later guards never cost a lookup.

func RequireAuthenticated(caller *Caller) error {
	if caller == nil || caller.ID() == "" {
		return Unauthenticated("Authentication required.", nil)
	}
	return nil
}

func RequireGlobalAdmin(ctx context.Context, caller *Caller) error {
	if err := RequireAuthenticated(caller); err != nil {
		return err
	}
	roles, err := caller.Roles(ctx)
	if err != nil {
		return err
	}
	if !roles.IsGlobalAdmin {
		return Forbidden("Admin access required.")
	}
	return nil
}

// RequireUniversityAdmin passes university admins and returns the
// university they administer.
func RequireUniversityAdmin(ctx context.Context, caller *Caller) (string, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return "", err
	}
	roles, err := caller.Roles(ctx)
	if err != nil {
		return "", err
	}
	if !roles.IsUniversityAdmin || roles.UniversityID == nil {
		return "", Forbidden("University admin access required.")
	}
	return *roles.UniversityID, nil
}

// RequireOwnerOrGlobalAdmin skips the role lookup when the caller owns
// the resource.
func RequireOwnerOrGlobalAdmin(ctx context.Context, caller *Caller, ownerID, message string) error {
	if err := RequireAuthenticated(caller); err != nil {
		return err
	}
	if caller.ID() == ownerID {
		return nil
	}
	roles, err := caller.Roles(ctx)
	if err != nil {
		return err
	}
	if !roles.IsGlobalAdmin {
		if message == "" {
			message = "You do not have permission to access this resource."
		}
		return Forbidden(message)
	}
	return nil
}

// requireUniversityManager passes global admins and the university admin
// of universityID. mismatch is the message for a university admin of a
// different university.
func requireUniversityManager(ctx context.Context, caller *Caller, universityID, mismatch string) error {
	if err := RequireAuthenticated(caller); err != nil {
		return err
	}
	roles, err := caller.Roles(ctx)
	if err != nil {
		return err
	}
	if roles.CanManageUniversity(universityID) {
		return nil
	}
	if roles.IsUniversityAdmin {
		return Forbidden(mismatch)
	}
	return Forbidden("Admin or University Admin access required.")
}
