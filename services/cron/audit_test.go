package cron

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func TestAuditDanglingApplications(t *testing.T) {
	store := database.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateUniversity(ctx, &model.University{ID: "kept", Name: "Kept", Address: "A"}))
	for _, universityID := range []string{"kept", "deleted", "deleted"} {
		require.NoError(t, store.CreateApplication(ctx, &model.Application{
			StudentID:    "s1",
			UniversityID: universityID,
			Status:       model.ApplicationStatusPending,
			SubmittedAt:  time.Now(),
		}))
	}

	log, hook := test.NewNullLogger()
	reg := prometheus.NewRegistry()
	manager := NewCronManager(store, log, reg)

	require.NoError(t, manager.AuditDanglingApplications(ctx))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, int64(2), entry.Data["count"])
	assert.Equal(t, 2.0, gaugeValue(t, reg, "unifriend_dangling_applications"))

	// The audit never mutates.
	applications, err := store.ListStudentApplications(ctx, "s1", database.Page{})
	require.NoError(t, err)
	assert.Len(t, applications, 3)
}

func TestAuditOrphanedUniversityGrants(t *testing.T) {
	store := database.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateUniversity(ctx, &model.University{ID: "u1", Name: "U1", Address: "A"}))
	require.NoError(t, store.PutUniversityAdminGrant(ctx, &model.UniversityAdminGrant{UserID: "ok", UniversityID: "u1"}))
	require.NoError(t, store.PutUniversityAdminGrant(ctx, &model.UniversityAdminGrant{UserID: "stale", UniversityID: "gone"}))

	log, hook := test.NewNullLogger()
	reg := prometheus.NewRegistry()
	manager := NewCronManager(store, log, reg)

	require.NoError(t, manager.AuditOrphanedUniversityGrants(ctx))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, []string{"stale"}, entry.Data["user_ids"])
	assert.Equal(t, 1.0, gaugeValue(t, reg, "unifriend_orphaned_university_admin_grants"))
}

func TestRegisterJobs(t *testing.T) {
	log, _ := test.NewNullLogger()
	manager := NewCronManager(database.NewMemoryStore(), log, nil)

	require.NoError(t, manager.registerJobs())
	assert.Len(t, manager.cron.Entries(), 2)
}
