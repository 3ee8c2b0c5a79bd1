package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/sahilchouksey/unifriend-api/utils/validation"
	"gorm.io/datatypes"
)

// UniversityPatch is a create or update payload. Nil fields were absent
// from the body. Extra holds every key that is not a listing column.
type UniversityPatch struct {
	Name     *string                `json:"name"`
	Address  *string                `json:"address"`
	Location *string                `json:"location"`
	Type     *string                `json:"type"`
	About    *string                `json:"about"`
	Rating   *float64               `json:"rating"`
	Courses  *[]model.Course        `json:"courses"`
	Extra    map[string]interface{} `json:"-"`
}

var universityColumns = map[string]bool{
	"name": true, "address": true, "location": true, "type": true,
	"about": true, "rating": true, "courses": true,
	// server-managed
	"id": true, "createdAt": true, "updatedAt": true,
}

// ParseUniversityPatch decodes a JSON object into a patch
func ParseUniversityPatch(body []byte) (*UniversityPatch, error) {
	patch := &UniversityPatch{}
	if err := json.Unmarshal(body, patch); err != nil {
		return nil, Validation("Invalid university payload.")
	}

	raw := map[string]interface{}{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, Validation("Invalid university payload.")
	}
	for key, value := range raw {
		if universityColumns[key] {
			continue
		}
		if patch.Extra == nil {
			patch.Extra = map[string]interface{}{}
		}
		patch.Extra[key] = value
	}
	return patch, nil
}

func (p *UniversityPatch) apply(u *model.University) {
	if p.Name != nil {
		u.Name = validation.SanitizeString(*p.Name)
	}
	if p.Address != nil {
		u.Address = validation.SanitizeString(*p.Address)
	}
	if p.Location != nil {
		u.Location = validation.SanitizeString(*p.Location)
	}
	if p.Type != nil {
		u.Type = validation.SanitizeString(*p.Type)
	}
	if p.About != nil {
		u.About = *p.About
	}
	if p.Rating != nil {
		rating := *p.Rating
		u.Rating = &rating
	}
	if p.Courses != nil {
		u.Courses = datatypes.JSONSlice[model.Course](*p.Courses)
	}
	if len(p.Extra) > 0 {
		attributes := model.CloneAttributes(u.Attributes)
		if attributes == nil {
			attributes = map[string]interface{}{}
		}
		for key, value := range p.Extra {
			attributes[key] = value
		}
		u.Attributes = datatypes.JSONMap(attributes)
	}
}

// UniversityService manages university listings
type UniversityService struct {
	store database.UniversityStore
	now   func() time.Time
}

// NewUniversityService creates a new university service
func NewUniversityService(store database.UniversityStore) *UniversityService {
	return &UniversityService{store: store, now: time.Now}
}

// List returns universities matching filter. Search runs before paging.
func (s *UniversityService) List(ctx context.Context, filter database.UniversityFilter) ([]model.University, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	universities, err := s.store.ListUniversities(ctx, filter)
	if err != nil {
		return nil, Internal("Failed to fetch universities.", err)
	}
	if universities == nil {
		universities = []model.University{}
	}
	return universities, nil
}

// Get returns one university
func (s *UniversityService) Get(ctx context.Context, id string) (*model.University, error) {
	university, err := s.store.GetUniversity(ctx, id)
	if err != nil {
		return nil, storeError(err, "University not found.", "Failed to fetch university.")
	}
	return university, nil
}

// Create stores a new university. Name and address are required.
func (s *UniversityService) Create(ctx context.Context, patch *UniversityPatch) (*model.University, error) {
	if patch == nil || patch.Name == nil || patch.Address == nil ||
		validation.SanitizeString(*patch.Name) == "" || validation.SanitizeString(*patch.Address) == "" {
		return nil, Validation("Name and address are required.")
	}

	university := &model.University{}
	patch.apply(university)

	now := s.now().UTC()
	university.CreatedAt = now
	university.UpdatedAt = now

	if err := s.store.CreateUniversity(ctx, university); err != nil {
		return nil, Internal("Failed to create university.", err)
	}
	return university, nil
}

// Update applies patch to university id. The university must exist
// before roles are checked.
func (s *UniversityService) Update(ctx context.Context, caller *Caller, id string, patch *UniversityPatch) (*model.University, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	university, err := s.store.GetUniversity(ctx, id)
	if err != nil {
		return nil, storeError(err, "University not found.", "Failed to update university.")
	}

	if err := requireUniversityManager(ctx, caller, id, "You can only update your own university."); err != nil {
		return nil, err
	}

	if patch != nil {
		patch.apply(university)
	}
	university.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateUniversity(ctx, university); err != nil {
		return nil, storeError(err, "University not found.", "Failed to update university.")
	}
	return university, nil
}

// Delete removes university id. Applications that reference it are kept.
func (s *UniversityService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteUniversity(ctx, id); err != nil {
		return storeError(err, "University not found.", "Failed to delete university.")
	}
	return nil
}
