package database

import (
	"context"
	"errors"
	"time"

	"github.com/sahilchouksey/unifriend-api/model"
)

// ErrNotFound is returned by every store when the addressed record is absent.
var ErrNotFound = errors.New("record not found")

// UniversityFilter narrows a university listing. Zero values disable a filter.
type UniversityFilter struct {
	Location  string
	Type      string
	MinRating *float64
	MaxRating *float64
	// Search is a case-insensitive substring over name, address and about.
	// It is applied before Limit/Offset.
	Search string
	Limit  int
	Offset int
}

// Page is an offset+limit window. Limit <= 0 means no limit.
type Page struct {
	Limit  int
	Offset int
}

// ProfileStore persists profiles.
type ProfileStore interface {
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	CreateProfile(ctx context.Context, profile *model.Profile) error
	// UpdateProfile overwrites email, full name, attributes and updatedAt.
	// Returns ErrNotFound when no profile has profile.ID.
	UpdateProfile(ctx context.Context, profile *model.Profile) error
}

// UniversityStore persists university listings.
type UniversityStore interface {
	GetUniversity(ctx context.Context, id string) (*model.University, error)
	ListUniversities(ctx context.Context, filter UniversityFilter) ([]model.University, error)
	CreateUniversity(ctx context.Context, university *model.University) error
	UpdateUniversity(ctx context.Context, university *model.University) error
	DeleteUniversity(ctx context.Context, id string) error
}

// ApplicationStore persists applications.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, application *model.Application) error
	// GetApplication looks an application up by id across all students.
	GetApplication(ctx context.Context, id string) (*model.Application, error)
	// GetStudentApplication only finds applications owned by studentID.
	GetStudentApplication(ctx context.Context, studentID, id string) (*model.Application, error)
	ListStudentApplications(ctx context.Context, studentID string, page Page) ([]model.Application, error)
	ListUniversityApplications(ctx context.Context, universityID string, page Page) ([]model.Application, error)
	// UpdateApplicationStatus overwrites status and updatedAt in one write.
	// Concurrent updates are last-writer-wins.
	UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus, at time.Time) (*model.Application, error)
	// CountDanglingApplications counts applications whose university no longer exists.
	CountDanglingApplications(ctx context.Context) (int64, error)
}

// RoleStore persists both grant tables.
type RoleStore interface {
	GetGlobalAdminGrant(ctx context.Context, userID string) (*model.GlobalAdminGrant, error)
	PutGlobalAdminGrant(ctx context.Context, grant *model.GlobalAdminGrant) error
	DeleteGlobalAdminGrant(ctx context.Context, userID string) error
	ListGlobalAdminGrants(ctx context.Context) ([]model.GlobalAdminGrant, error)

	GetUniversityAdminGrant(ctx context.Context, userID string) (*model.UniversityAdminGrant, error)
	PutUniversityAdminGrant(ctx context.Context, grant *model.UniversityAdminGrant) error
	DeleteUniversityAdminGrant(ctx context.Context, userID string) error
	ListUniversityAdminGrants(ctx context.Context) ([]model.UniversityAdminGrant, error)
}

// LeadStore persists registrations and newsletter subscriptions.
type LeadStore interface {
	CreateRegistration(ctx context.Context, registration *model.Registration) error
	ListRegistrations(ctx context.Context, page Page) ([]model.Registration, error)
	CreateSubscription(ctx context.Context, subscription *model.NewsletterSubscription) error
	ListSubscriptions(ctx context.Context, page Page) ([]model.NewsletterSubscription, error)
}

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck(ctx context.Context) error

	ProfileStore
	UniversityStore
	ApplicationStore
	RoleStore
	LeadStore
}
