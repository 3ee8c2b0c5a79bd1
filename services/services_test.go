package services

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/sahilchouksey/unifriend-api/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx      context.Context
	store    *database.MemoryStore
	resolver *RoleResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := database.NewMemoryStore()
	return &fixture{ctx: context.Background(), store: store, resolver: NewRoleResolver(store)}
}

func (f *fixture) caller(uid string) *Caller {
	return NewCaller(auth.Identity{UID: uid, Email: uid + "@example.com", Name: uid}, f.resolver)
}

func (f *fixture) globalAdmin(t *testing.T, uid string) *Caller {
	t.Helper()
	require.NoError(t, f.store.PutGlobalAdminGrant(f.ctx, &model.GlobalAdminGrant{UserID: uid, GrantedAt: time.Now()}))
	return f.caller(uid)
}

func (f *fixture) universityAdmin(t *testing.T, uid, universityID string) *Caller {
	t.Helper()
	require.NoError(t, f.store.PutUniversityAdminGrant(f.ctx, &model.UniversityAdminGrant{UserID: uid, UniversityID: universityID, GrantedAt: time.Now()}))
	return f.caller(uid)
}

func (f *fixture) university(t *testing.T, id string, courses ...model.Course) *model.University {
	t.Helper()
	university := &model.University{ID: id, Name: "University " + id, Address: "Address " + id, Courses: courses}
	require.NoError(t, f.store.CreateUniversity(f.ctx, university))
	return university
}

func strPtr(s string) *string { return &s }

// countingRoles wraps a RoleStore and counts lookups.
type countingRoles struct {
	database.RoleStore
	lookups int
}

func (c *countingRoles) GetGlobalAdminGrant(ctx context.Context, uid string) (*model.GlobalAdminGrant, error) {
	c.lookups++
	return c.RoleStore.GetGlobalAdminGrant(ctx, uid)
}

func TestRoleResolution(t *testing.T) {
	f := newFixture(t)
	f.globalAdmin(t, "root")
	f.universityAdmin(t, "registrar", "u1")

	roles, err := f.resolver.Resolve(f.ctx, "root")
	require.NoError(t, err)
	assert.True(t, roles.IsGlobalAdmin)
	assert.False(t, roles.IsUniversityAdmin)
	assert.True(t, roles.CanManageUniversity("anything"))

	roles, err = f.resolver.Resolve(f.ctx, "registrar")
	require.NoError(t, err)
	assert.False(t, roles.IsGlobalAdmin)
	assert.True(t, roles.IsUniversityAdmin)
	require.NotNil(t, roles.UniversityID)
	assert.Equal(t, "u1", *roles.UniversityID)
	assert.True(t, roles.CanManageUniversity("u1"))
	assert.False(t, roles.CanManageUniversity("u2"))

	roles, err = f.resolver.Resolve(f.ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, Roles{}, roles)
}

func TestCallerResolvesRolesOnce(t *testing.T) {
	f := newFixture(t)
	f.globalAdmin(t, "root")

	counting := &countingRoles{RoleStore: f.store}
	caller := NewCaller(auth.Identity{UID: "root"}, NewRoleResolver(counting))

	for i := 0; i < 3; i++ {
		require.NoError(t, RequireGlobalAdmin(f.ctx, caller))
	}
	assert.Equal(t, 1, counting.lookups)

	// The owner path never consults the grant tables.
	owner := NewCaller(auth.Identity{UID: "self"}, NewRoleResolver(counting))
	require.NoError(t, RequireOwnerOrGlobalAdmin(f.ctx, owner, "self", ""))
	assert.Equal(t, 1, counting.lookups)
}

func TestGuards(t *testing.T) {
	f := newFixture(t)
	student := f.caller("student")
	registrar := f.universityAdmin(t, "registrar", "u1")

	assert.Equal(t, KindUnauthenticated, KindOf(RequireAuthenticated(nil)))
	assert.Equal(t, KindForbidden, KindOf(RequireGlobalAdmin(f.ctx, student)))

	_, err := RequireUniversityAdmin(f.ctx, student)
	assert.Equal(t, KindForbidden, KindOf(err))

	universityID, err := RequireUniversityAdmin(f.ctx, registrar)
	require.NoError(t, err)
	assert.Equal(t, "u1", universityID)

	err = RequireOwnerOrGlobalAdmin(f.ctx, student, "someone-else", "")
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.Equal(t, "You do not have permission to access this resource.", err.(*Error).Message)
}

func TestApplicationCreateResolvesFees(t *testing.T) {
	f := newFixture(t)
	f.university(t, "u1", model.Course{
		Name:   "B.Tech",
		Trades: []model.Trade{{Name: "CSE", Fees: "1,20,000"}, {Name: "ME"}},
	})
	service := NewApplicationService(f.store, f.store)
	student := f.caller("student")

	input := CreateApplicationInput{UniversityID: "u1", CourseName: "B.Tech", StudentName: "Asha", Email: "a@example.com"}

	tests := []struct {
		name  string
		trade *string
		want  string
	}{
		{name: "priced trade", trade: strPtr("CSE"), want: "1,20,000"},
		{name: "trade without fee", trade: strPtr("ME"), want: model.FeesNotAvailable},
		{name: "unknown trade", trade: strPtr("Civil"), want: model.FeesNotAvailable},
		{name: "no trade", trade: nil, want: model.FeesNotAvailable},
		{name: "blank trade", trade: strPtr("  "), want: model.FeesNotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input
			in.TradeName = tt.trade
			application, err := service.Create(f.ctx, student, in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, application.Fees)
			assert.Equal(t, model.ApplicationStatusPending, application.Status)
			assert.Equal(t, "student", application.StudentID)
			assert.Equal(t, "University u1", application.UniversityName)
		})
	}
}

func TestApplicationCreateValidation(t *testing.T) {
	f := newFixture(t)
	service := NewApplicationService(f.store, f.store)
	student := f.caller("student")

	_, err := service.Create(f.ctx, student, CreateApplicationInput{UniversityID: "u1", CourseName: "B.Tech", StudentName: "  "})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "University ID, course name, student name, and email are required.", err.(*Error).Message)

	_, err = service.Create(f.ctx, student, CreateApplicationInput{UniversityID: "gone", CourseName: "B.Tech", StudentName: "Asha", Email: "a@example.com"})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestApplicationStatusWorkflow(t *testing.T) {
	f := newFixture(t)
	f.university(t, "u1")
	f.university(t, "u2")
	service := NewApplicationService(f.store, f.store)

	application, err := service.Create(f.ctx, f.caller("student"), CreateApplicationInput{
		UniversityID: "u1", CourseName: "MBA", StudentName: "Asha", Email: "a@example.com",
	})
	require.NoError(t, err)

	admin := f.globalAdmin(t, "root")
	ownRegistrar := f.universityAdmin(t, "own", "u1")
	otherRegistrar := f.universityAdmin(t, "other", "u2")

	_, err = service.SetStatus(f.ctx, admin, application.ID, "Bogus")
	assert.Equal(t, KindValidation, KindOf(err))
	stored, err := f.store.GetApplication(f.ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, stored.Status)

	_, err = service.SetStatus(f.ctx, admin, "missing", "Approved")
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = service.SetStatus(f.ctx, otherRegistrar, application.ID, "Approved")
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.Equal(t, "You can only update applications for your university.", err.(*Error).Message)

	_, err = service.SetStatus(f.ctx, f.caller("student"), application.ID, "Approved")
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.Equal(t, "Admin or University Admin access required.", err.(*Error).Message)

	// Any status may follow any other.
	for _, next := range []string{"Rejected", "In Review", "Pending", "Approved"} {
		updated, err := service.SetStatus(f.ctx, ownRegistrar, application.ID, next)
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatus(next), updated.Status)
		require.NotNil(t, updated.UpdatedAt)
	}

	updated, err := service.SetStatus(f.ctx, admin, application.ID, "Reviewed")
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusReviewed, updated.Status)
}

func TestApplicationGetAccess(t *testing.T) {
	f := newFixture(t)
	f.university(t, "u1")
	service := NewApplicationService(f.store, f.store)

	application, err := service.Create(f.ctx, f.caller("student"), CreateApplicationInput{
		UniversityID: "u1", CourseName: "MBA", StudentName: "Asha", Email: "a@example.com",
	})
	require.NoError(t, err)

	got, err := service.Get(f.ctx, f.caller("student"), application.ID)
	require.NoError(t, err)
	assert.Equal(t, application.ID, got.ID)

	_, err = service.Get(f.ctx, f.caller("stranger"), application.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = service.Get(f.ctx, f.globalAdmin(t, "root"), application.ID)
	assert.NoError(t, err)

	_, err = service.Get(f.ctx, f.universityAdmin(t, "own", "u1"), application.ID)
	assert.NoError(t, err)

	_, err = service.Get(f.ctx, f.universityAdmin(t, "other", "u2"), application.ID)
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestUniversityUpdateChecksExistenceFirst(t *testing.T) {
	f := newFixture(t)
	f.university(t, "u1")
	service := NewUniversityService(f.store)

	patch, err := ParseUniversityPatch([]byte(`{"about":"new","images":["a.png"],"id":"hijack"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"images": []interface{}{"a.png"}}, patch.Extra)

	_, err = service.Update(f.ctx, f.caller("student"), "missing", patch)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = service.Update(f.ctx, f.caller("student"), "u1", patch)
	assert.Equal(t, KindForbidden, KindOf(err))

	updated, err := service.Update(f.ctx, f.universityAdmin(t, "own", "u1"), "u1", patch)
	require.NoError(t, err)
	assert.Equal(t, "u1", updated.ID)
	assert.Equal(t, "new", updated.About)
	assert.Equal(t, []interface{}{"a.png"}, updated.Attributes["images"])

	_, err = ParseUniversityPatch([]byte(`[1,2]`))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestUniversityCreateRequiresNameAndAddress(t *testing.T) {
	f := newFixture(t)
	service := NewUniversityService(f.store)

	_, err := service.Create(f.ctx, &UniversityPatch{Name: strPtr("Alpha"), Address: strPtr(" ")})
	assert.Equal(t, KindValidation, KindOf(err))

	university, err := service.Create(f.ctx, &UniversityPatch{Name: strPtr(" Alpha "), Address: strPtr("Indore")})
	require.NoError(t, err)
	assert.NotEmpty(t, university.ID)
	assert.Equal(t, "Alpha", university.Name)
	assert.False(t, university.CreatedAt.IsZero())
}

func TestProfileUpdate(t *testing.T) {
	f := newFixture(t)
	service := NewProfileService(f.store)
	owner := f.caller("student")

	_, err := service.Update(f.ctx, owner, "student", map[string]interface{}{"fullName": "x"})
	assert.Equal(t, KindNotFound, KindOf(err))

	created, err := service.GetOrCreateOwn(f.ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", created.Email)

	updated, err := service.Update(f.ctx, owner, "student", map[string]interface{}{
		"id":        "hijack",
		"createdAt": "1999-01-01",
		"fullName":  "Asha K",
		"city":      "Pune",
	})
	require.NoError(t, err)
	assert.Equal(t, "student", updated.ID)
	assert.Equal(t, "Asha K", updated.FullName)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Pune", updated.Attributes["city"])

	_, err = service.Update(f.ctx, owner, "student", map[string]interface{}{"email": 42})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = service.Update(f.ctx, f.caller("stranger"), "student", map[string]interface{}{"city": "Goa"})
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = service.Update(f.ctx, f.globalAdmin(t, "root"), "student", map[string]interface{}{"city": "Goa"})
	assert.NoError(t, err)
}

func TestAdminGrants(t *testing.T) {
	f := newFixture(t)
	f.university(t, "u1")
	f.university(t, "u2")
	require.NoError(t, f.store.CreateProfile(f.ctx, &model.Profile{ID: "registrar"}))
	service := NewAdminService(f.store)
	root := f.globalAdmin(t, "root")

	err := service.GrantGlobalAdmin(f.ctx, f.caller("student"), "registrar")
	assert.Equal(t, KindForbidden, KindOf(err))

	require.NoError(t, service.GrantUniversityAdmin(f.ctx, root, "registrar", "u1"))
	require.NoError(t, service.GrantUniversityAdmin(f.ctx, root, "registrar", "u2"))

	grant, err := f.store.GetUniversityAdminGrant(f.ctx, "registrar")
	require.NoError(t, err)
	assert.Equal(t, "u2", grant.UniversityID)
	assert.Equal(t, "root", grant.GrantedBy)

	err = service.GrantUniversityAdmin(f.ctx, root, "registrar", "gone")
	assert.Equal(t, KindNotFound, KindOf(err))

	admins, err := service.ListUniversityAdmins(f.ctx, root)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "u2", admins[0].UniversityData.ID)
	assert.Equal(t, "registrar", admins[0].UserData.ID)

	err = service.RevokeGlobalAdmin(f.ctx, root, "root")
	assert.Equal(t, KindForbidden, KindOf(err))

	err = service.RevokeGlobalAdmin(f.ctx, root, "registrar")
	assert.Equal(t, KindNotFound, KindOf(err))

	globals, err := service.ListGlobalAdmins(f.ctx, root)
	require.NoError(t, err)
	require.Len(t, globals, 1)
	assert.Nil(t, globals[0].UserData)
}

func TestLeadCapture(t *testing.T) {
	f := newFixture(t)
	service := NewLeadService(f.store)

	base := CreateRegistrationInput{
		FullName: "Ravi", Email: "r@example.com", MobileNumber: "99", City: "Bhopal", CourseInterestedIn: "MBA",
	}
	for value, want := range map[interface{}]bool{true: true, "true": true, false: false, "yes": false, 1.0: false} {
		in := base
		in.OnlineDistance = value
		registration, err := service.CreateRegistration(f.ctx, in)
		require.NoError(t, err)
		assert.Equal(t, want, registration.OnlineDistance, "%v", value)
	}

	in := base
	in.City = ""
	_, err := service.CreateRegistration(f.ctx, in)
	assert.Equal(t, KindValidation, KindOf(err))

	subscription, err := service.Subscribe(f.ctx, SubscribeInput{Email: "r@example.com", Course: strPtr("MBA")})
	require.NoError(t, err)
	assert.Nil(t, subscription.MobileNumber)
	assert.Equal(t, "MBA", *subscription.Course)

	subscriptions, err := service.ListSubscriptions(f.ctx, database.Page{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, subscriptions, 1)
}
