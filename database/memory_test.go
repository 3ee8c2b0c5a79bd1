package database

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func seedUniversities(t *testing.T, store *MemoryStore) {
	t.Helper()
	ctx := context.Background()
	for _, u := range []model.University{
		{ID: "u1", Name: "Alpha Institute", Address: "Pune", Location: "Pune", Type: "Private", Rating: floatPtr(4.5)},
		{ID: "u2", Name: "Beta College", Address: "Delhi", Location: "Delhi", Type: "Government", Rating: floatPtr(3.2), About: "Known for engineering"},
		{ID: "u3", Name: "Gamma University", Address: "Mumbai", Location: "Mumbai", Type: "Private"},
		{ID: "u4", Name: "Delta Engineering", Address: "Pune", Location: "Pune", Type: "Private", Rating: floatPtr(4.0)},
	} {
		u := u
		require.NoError(t, store.CreateUniversity(ctx, &u))
	}
}

func TestMemoryStoreListUniversitiesFilters(t *testing.T) {
	store := NewMemoryStore()
	seedUniversities(t, store)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter UniversityFilter
		want   []string
	}{
		{name: "no filter sorted by name", filter: UniversityFilter{}, want: []string{"u1", "u2", "u4", "u3"}},
		{name: "location", filter: UniversityFilter{Location: "Pune"}, want: []string{"u1", "u4"}},
		{name: "type", filter: UniversityFilter{Type: "Government"}, want: []string{"u2"}},
		{name: "min rating skips unrated", filter: UniversityFilter{MinRating: floatPtr(4.0)}, want: []string{"u1", "u4"}},
		{name: "max rating", filter: UniversityFilter{MaxRating: floatPtr(4.0)}, want: []string{"u2", "u4"}},
		{name: "search is case-insensitive over about", filter: UniversityFilter{Search: "ENGINEERING"}, want: []string{"u2", "u4"}},
		{name: "search before pagination", filter: UniversityFilter{Search: "engineering", Limit: 1, Offset: 1}, want: []string{"u4"}},
		{name: "offset past end", filter: UniversityFilter{Offset: 10}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListUniversities(ctx, tt.filter)
			require.NoError(t, err)
			ids := []string{}
			for _, u := range got {
				ids = append(ids, u.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	university := &model.University{
		Name:    "Alpha",
		Address: "Pune",
		Courses: []model.Course{{Name: "MBA", Trades: []model.Trade{{Name: "HR", Fees: "100"}}}},
	}
	require.NoError(t, store.CreateUniversity(ctx, university))
	require.NotEmpty(t, university.ID)

	university.Courses[0].Trades[0].Fees = "999"

	stored, err := store.GetUniversity(ctx, university.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Fee("100"), stored.Courses[0].Trades[0].Fees)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.UpdateProfile(ctx, &model.Profile{ID: "missing"}), ErrNotFound)
	assert.ErrorIs(t, store.DeleteUniversity(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, store.DeleteGlobalAdminGrant(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, store.DeleteUniversityAdminGrant(ctx, "missing"), ErrNotFound)

	_, err = store.UpdateApplicationStatus(ctx, "missing", model.ApplicationStatusApproved, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreApplications(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, studentID := range []string{"s1", "s1", "s2"} {
		require.NoError(t, store.CreateApplication(ctx, &model.Application{
			ID:           []string{"a1", "a2", "a3"}[i],
			StudentID:    studentID,
			UniversityID: "u1",
			Status:       model.ApplicationStatusPending,
			SubmittedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	own, err := store.ListStudentApplications(ctx, "s1", Page{})
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "a2", own[0].ID, "newest first")

	_, err = store.GetStudentApplication(ctx, "s2", "a1")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := store.ListUniversityApplications(ctx, "u1", Page{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	at := base.Add(24 * time.Hour)
	updated, err := store.UpdateApplicationStatus(ctx, "a1", model.ApplicationStatusInReview, at)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusInReview, updated.Status)
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.Equal(at))

	dangling, err := store.CountDanglingApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), dangling)

	require.NoError(t, store.CreateUniversity(ctx, &model.University{ID: "u1", Name: "U", Address: "A"}))
	dangling, err = store.CountDanglingApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), dangling)
}

func TestMemoryStoreUniversityGrantIsOnePerIdentity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.PutUniversityAdminGrant(ctx, &model.UniversityAdminGrant{UserID: "x", UniversityID: "A"}))
	require.NoError(t, store.PutUniversityAdminGrant(ctx, &model.UniversityAdminGrant{UserID: "x", UniversityID: "B"}))

	grants, err := store.ListUniversityAdminGrants(ctx)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "B", grants[0].UniversityID)
}
