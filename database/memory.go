package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/unifriend-api/model"
	"gorm.io/datatypes"
)

var (
	_ Storage = (*GORMStore)(nil)
	_ Storage = (*MemoryStore)(nil)
)

// MemoryStore keeps every table in process memory. It is used with
// DB_DRIVER=memory and in tests. Records are copied on the way in and out.
type MemoryStore struct {
	mu sync.RWMutex

	profiles         map[string]model.Profile
	universities     map[string]model.University
	applications     map[string]model.Application
	globalAdmins     map[string]model.GlobalAdminGrant
	universityAdmins map[string]model.UniversityAdminGrant
	registrations    []model.Registration
	subscriptions    []model.NewsletterSubscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:         map[string]model.Profile{},
		universities:     map[string]model.University{},
		applications:     map[string]model.Application{},
		globalAdmins:     map[string]model.GlobalAdminGrant{},
		universityAdmins: map[string]model.UniversityAdminGrant{},
	}
}

func (s *MemoryStore) Init() error                           { return nil }
func (s *MemoryStore) Close() error                          { return nil }
func (s *MemoryStore) HealthCheck(ctx context.Context) error { return ctx.Err() }

func window[T any](items []T, page Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	if page.Offset > 0 {
		items = items[page.Offset:]
	}
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}

func copyProfile(p model.Profile) model.Profile {
	p.Attributes = datatypes.JSONMap(model.CloneAttributes(p.Attributes))
	return p
}

func copyUniversity(u model.University) model.University {
	u.Attributes = datatypes.JSONMap(model.CloneAttributes(u.Attributes))
	if u.Courses != nil {
		courses := make([]model.Course, len(u.Courses))
		for i, course := range u.Courses {
			course.Trades = append([]model.Trade(nil), course.Trades...)
			courses[i] = course
		}
		u.Courses = courses
	}
	if u.Rating != nil {
		rating := *u.Rating
		u.Rating = &rating
	}
	return u
}

// Profiles

func (s *MemoryStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyProfile(profile)
	return &out, nil
}

func (s *MemoryStore) CreateProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = copyProfile(*profile)
	return nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.profiles[profile.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Email = profile.Email
	existing.FullName = profile.FullName
	existing.Attributes = datatypes.JSONMap(model.CloneAttributes(profile.Attributes))
	existing.UpdatedAt = profile.UpdatedAt
	s.profiles[profile.ID] = existing
	return nil
}

// Universities

func (s *MemoryStore) GetUniversity(ctx context.Context, id string) (*model.University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	university, ok := s.universities[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyUniversity(university)
	return &out, nil
}

func (s *MemoryStore) ListUniversities(ctx context.Context, filter UniversityFilter) ([]model.University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matches := []model.University{}
	for _, u := range s.universities {
		if filter.Location != "" && u.Location != filter.Location {
			continue
		}
		if filter.Type != "" && u.Type != filter.Type {
			continue
		}
		if filter.MinRating != nil && (u.Rating == nil || *u.Rating < *filter.MinRating) {
			continue
		}
		if filter.MaxRating != nil && (u.Rating == nil || *u.Rating > *filter.MaxRating) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Address), search) &&
			!strings.Contains(strings.ToLower(u.About), search) {
			continue
		}
		matches = append(matches, copyUniversity(u))
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Name != matches[j].Name {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].ID < matches[j].ID
	})
	return window(matches, Page{Limit: filter.Limit, Offset: filter.Offset}), nil
}

func (s *MemoryStore) CreateUniversity(ctx context.Context, university *model.University) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if university.ID == "" {
		university.ID = uuid.NewString()
	}
	s.universities[university.ID] = copyUniversity(*university)
	return nil
}

func (s *MemoryStore) UpdateUniversity(ctx context.Context, university *model.University) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.universities[university.ID]
	if !ok {
		return ErrNotFound
	}
	updated := copyUniversity(*university)
	updated.CreatedAt = existing.CreatedAt
	s.universities[university.ID] = updated
	return nil
}

func (s *MemoryStore) DeleteUniversity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.universities[id]; !ok {
		return ErrNotFound
	}
	delete(s.universities, id)
	return nil
}

// Applications

func (s *MemoryStore) CreateApplication(ctx context.Context, application *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	s.applications[application.ID] = *application
	return nil
}

func (s *MemoryStore) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	application, ok := s.applications[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &application, nil
}

func (s *MemoryStore) GetStudentApplication(ctx context.Context, studentID, id string) (*model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	application, ok := s.applications[id]
	if !ok || application.StudentID != studentID {
		return nil, ErrNotFound
	}
	return &application, nil
}

func (s *MemoryStore) listApplications(match func(model.Application) bool, page Page) []model.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Application{}
	for _, application := range s.applications {
		if match(application) {
			out = append(out, application)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return window(out, page)
}

func (s *MemoryStore) ListStudentApplications(ctx context.Context, studentID string, page Page) ([]model.Application, error) {
	return s.listApplications(func(a model.Application) bool { return a.StudentID == studentID }, page), nil
}

func (s *MemoryStore) ListUniversityApplications(ctx context.Context, universityID string, page Page) ([]model.Application, error) {
	return s.listApplications(func(a model.Application) bool { return a.UniversityID == universityID }, page), nil
}

func (s *MemoryStore) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus, at time.Time) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	application, ok := s.applications[id]
	if !ok {
		return nil, ErrNotFound
	}
	application.Status = status
	application.UpdatedAt = &at
	s.applications[id] = application
	return &application, nil
}

func (s *MemoryStore) CountDanglingApplications(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, application := range s.applications {
		if _, ok := s.universities[application.UniversityID]; !ok {
			count++
		}
	}
	return count, nil
}

// Role grants

func (s *MemoryStore) GetGlobalAdminGrant(ctx context.Context, userID string) (*model.GlobalAdminGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grant, ok := s.globalAdmins[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &grant, nil
}

func (s *MemoryStore) PutGlobalAdminGrant(ctx context.Context, grant *model.GlobalAdminGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalAdmins[grant.UserID] = *grant
	return nil
}

func (s *MemoryStore) DeleteGlobalAdminGrant(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.globalAdmins[userID]; !ok {
		return ErrNotFound
	}
	delete(s.globalAdmins, userID)
	return nil
}

func (s *MemoryStore) ListGlobalAdminGrants(ctx context.Context) ([]model.GlobalAdminGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grants := make([]model.GlobalAdminGrant, 0, len(s.globalAdmins))
	for _, grant := range s.globalAdmins {
		grants = append(grants, grant)
	}
	sort.Slice(grants, func(i, j int) bool { return grants[i].GrantedAt.Before(grants[j].GrantedAt) })
	return grants, nil
}

func (s *MemoryStore) GetUniversityAdminGrant(ctx context.Context, userID string) (*model.UniversityAdminGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grant, ok := s.universityAdmins[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &grant, nil
}

func (s *MemoryStore) PutUniversityAdminGrant(ctx context.Context, grant *model.UniversityAdminGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.universityAdmins[grant.UserID] = *grant
	return nil
}

func (s *MemoryStore) DeleteUniversityAdminGrant(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.universityAdmins[userID]; !ok {
		return ErrNotFound
	}
	delete(s.universityAdmins, userID)
	return nil
}

func (s *MemoryStore) ListUniversityAdminGrants(ctx context.Context) ([]model.UniversityAdminGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grants := make([]model.UniversityAdminGrant, 0, len(s.universityAdmins))
	for _, grant := range s.universityAdmins {
		grants = append(grants, grant)
	}
	sort.Slice(grants, func(i, j int) bool { return grants[i].GrantedAt.Before(grants[j].GrantedAt) })
	return grants, nil
}

// Leads

func (s *MemoryStore) CreateRegistration(ctx context.Context, registration *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if registration.ID == "" {
		registration.ID = uuid.NewString()
	}
	s.registrations = append(s.registrations, *registration)
	return nil
}

func (s *MemoryStore) ListRegistrations(ctx context.Context, page Page) ([]model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]model.Registration(nil), s.registrations...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return window(out, page), nil
}

func (s *MemoryStore) CreateSubscription(ctx context.Context, subscription *model.NewsletterSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if subscription.ID == "" {
		subscription.ID = uuid.NewString()
	}
	s.subscriptions = append(s.subscriptions, *subscription)
	return nil
}

func (s *MemoryStore) ListSubscriptions(ctx context.Context, page Page) ([]model.NewsletterSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]model.NewsletterSubscription(nil), s.subscriptions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return window(out, page), nil
}
