package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/sahilchouksey/unifriend-api/utils/validation"
)

// CreateApplicationInput is the body of a new application
type CreateApplicationInput struct {
	UniversityID   string  `json:"universityId" validate:"required"`
	UniversityName string  `json:"universityName"`
	CourseName     string  `json:"courseName" validate:"required"`
	TradeName      *string `json:"tradeName"`
	StudentName    string  `json:"studentName" validate:"required"`
	Email          string  `json:"email" validate:"required"`
	Phone          *string `json:"phone"`
	City           *string `json:"city"`
	Message        *string `json:"message"`
}

// ApplicationService handles submission, lookup and the status workflow
type ApplicationService struct {
	applications database.ApplicationStore
	universities database.UniversityStore
	validator    *validation.Validator
	now          func() time.Time
}

// NewApplicationService creates a new application service
func NewApplicationService(applications database.ApplicationStore, universities database.UniversityStore) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		universities: universities,
		validator:    validation.NewValidator(),
		now:          time.Now,
	}
}

func statusList() string {
	names := make([]string, len(model.ApplicationStatuses))
	for i, status := range model.ApplicationStatuses {
		names[i] = string(status)
	}
	return strings.Join(names, ", ")
}

// Create submits an application for the caller. Fees are resolved from
// the university's course/trade list now and never recomputed.
func (s *ApplicationService) Create(ctx context.Context, caller *Caller, input CreateApplicationInput) (*model.Application, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	input.UniversityID = validation.SanitizeString(input.UniversityID)
	input.CourseName = validation.SanitizeString(input.CourseName)
	input.StudentName = validation.SanitizeString(input.StudentName)
	input.Email = validation.SanitizeString(input.Email)
	if err := s.validator.ValidateStruct(input); err != nil {
		return nil, Validation("University ID, course name, student name, and email are required.")
	}

	university, err := s.universities.GetUniversity(ctx, input.UniversityID)
	if err != nil {
		return nil, storeError(err, "University not found.", "Failed to create application.")
	}

	tradeName := validation.SanitizeOptional(input.TradeName)
	fees := model.FeesNotAvailable
	if tradeName != nil {
		fees = university.TradeFees(input.CourseName, *tradeName)
	}

	universityName := validation.SanitizeString(input.UniversityName)
	if universityName == "" {
		universityName = university.Name
	}

	application := &model.Application{
		StudentID:      caller.ID(),
		StudentName:    input.StudentName,
		Email:          input.Email,
		Phone:          validation.SanitizeOptional(input.Phone),
		City:           validation.SanitizeOptional(input.City),
		Message:        validation.SanitizeOptional(input.Message),
		UniversityID:   input.UniversityID,
		UniversityName: universityName,
		CourseName:     input.CourseName,
		TradeName:      tradeName,
		Fees:           fees,
		Status:         model.ApplicationStatusPending,
		SubmittedAt:    s.now().UTC(),
	}

	if err := s.applications.CreateApplication(ctx, application); err != nil {
		return nil, Internal("Failed to create application.", err)
	}
	return application, nil
}

// ListOwn returns the caller's applications, newest first
func (s *ApplicationService) ListOwn(ctx context.Context, caller *Caller, page database.Page) ([]model.Application, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	applications, err := s.applications.ListStudentApplications(ctx, caller.ID(), page)
	if err != nil {
		return nil, Internal("Failed to fetch applications.", err)
	}
	return nonNil(applications), nil
}

// Get returns one application. Owners see their own; a global admin sees
// any; a university admin sees those of their university.
func (s *ApplicationService) Get(ctx context.Context, caller *Caller, id string) (*model.Application, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	application, err := s.applications.GetStudentApplication(ctx, caller.ID(), id)
	if err == nil {
		return application, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, Internal("Failed to fetch application.", err)
	}

	roles, err := caller.Roles(ctx)
	if err != nil {
		return nil, err
	}
	if !roles.IsGlobalAdmin && !roles.IsUniversityAdmin {
		return nil, NotFound("Application not found.")
	}

	application, err = s.applications.GetApplication(ctx, id)
	if err != nil {
		return nil, storeError(err, "Application not found.", "Failed to fetch application.")
	}
	if !roles.CanManageUniversity(application.UniversityID) {
		return nil, Forbidden("You can only view applications for your university.")
	}
	return application, nil
}

// SetStatus moves an application to status. Any of the enumerated values
// may follow any other; the previous status is not kept.
func (s *ApplicationService) SetStatus(ctx context.Context, caller *Caller, id, status string) (*model.Application, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	next := model.ApplicationStatus(status)
	if !next.IsValid() {
		return nil, Validation("Status must be one of: %s", statusList())
	}

	application, err := s.applications.GetApplication(ctx, id)
	if err != nil {
		return nil, storeError(err, "Application not found.", "Failed to update application status.")
	}

	if err := requireUniversityManager(ctx, caller, application.UniversityID, "You can only update applications for your university."); err != nil {
		return nil, err
	}

	updated, err := s.applications.UpdateApplicationStatus(ctx, id, next, s.now().UTC())
	if err != nil {
		return nil, storeError(err, "Application not found.", "Failed to update application status.")
	}
	return updated, nil
}

// ListForUniversity returns a university's applications, newest first
func (s *ApplicationService) ListForUniversity(ctx context.Context, caller *Caller, universityID string, page database.Page) ([]model.Application, error) {
	if err := requireUniversityManager(ctx, caller, universityID, "You can only view applications for your university."); err != nil {
		return nil, err
	}
	applications, err := s.applications.ListUniversityApplications(ctx, universityID, page)
	if err != nil {
		return nil, Internal("Failed to fetch applications.", err)
	}
	return nonNil(applications), nil
}

// ListManaged returns the applications of the university the caller
// administers.
func (s *ApplicationService) ListManaged(ctx context.Context, caller *Caller, page database.Page) (string, []model.Application, error) {
	universityID, err := RequireUniversityAdmin(ctx, caller)
	if err != nil {
		return "", nil, err
	}
	applications, err := s.applications.ListUniversityApplications(ctx, universityID, page)
	if err != nil {
		return "", nil, Internal("Failed to fetch applications.", err)
	}
	return universityID, nonNil(applications), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
