package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedBootstrapAdmin(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, RunSeeds(ctx, store, "root-uid", nil))

	profile, err := store.GetProfile(ctx, "root-uid")
	require.NoError(t, err)
	assert.Equal(t, "root-uid", profile.ID)

	grant, err := store.GetGlobalAdminGrant(ctx, "root-uid")
	require.NoError(t, err)
	assert.Equal(t, SeedGrantor, grant.GrantedBy)

	universities, err := store.ListUniversities(ctx, UniversityFilter{})
	require.NoError(t, err)
	assert.Len(t, universities, len(sampleUniversities))

	// Running again is a no-op.
	require.NoError(t, RunSeeds(ctx, store, "root-uid", nil))
	universities, err = store.ListUniversities(ctx, UniversityFilter{})
	require.NoError(t, err)
	assert.Len(t, universities, len(sampleUniversities))
}

func TestSeedWithoutBootstrapUID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, NewSeeder(store, nil).SeedBootstrapAdmin(ctx, ""))

	grants, err := store.ListGlobalAdminGrants(ctx)
	require.NoError(t, err)
	assert.Empty(t, grants)
}
