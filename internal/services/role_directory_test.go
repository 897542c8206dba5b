package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/entities"
)

func TestRoleDirectory_UserIDsByRole(t *testing.T) {
	users := newFakeUserRepo(
		entities.User{ID: "a1", Role: entities.RoleAdmin},
		entities.User{ID: "a2", Role: entities.RoleAdmin},
		entities.User{ID: "m1", Role: entities.RoleManager},
		entities.User{ID: "t1", Role: entities.RoleTechnician},
	)
	dir := NewRoleDirectory(testBase(nil), users, 0)

	ids, err := dir.UserIDsByRole(context.Background(), entities.RoleAdmin, entities.RoleManager, entities.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "m1"}, ids)
}

func TestRoleDirectory_CachesAndInvalidates(t *testing.T) {
	cache := newFakeCache()
	users := newFakeUserRepo(entities.User{ID: "a1", Role: entities.RoleAdmin})
	dir := NewRoleDirectory(testBase(cache), users, time.Minute)
	ctx := context.Background()

	ids, err := dir.UserIDsByRole(ctx, entities.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids)
	assert.Equal(t, `["a1"]`, cache.values["users:role:admin"])
	assert.Equal(t, time.Minute, cache.expires["users:role:admin"])

	users.items["a2"] = &entities.User{ID: "a2", Role: entities.RoleAdmin}
	ids, err = dir.UserIDsByRole(ctx, entities.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids, "served from cache")

	dir.Invalidate(ctx)
	ids, err = dir.UserIDsByRole(ctx, entities.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, ids)
}

func TestRoleDirectory_BrokenCacheEntryFallsBackToStore(t *testing.T) {
	cache := newFakeCache()
	cache.values["users:role:manager"] = "{not json"
	users := newFakeUserRepo(entities.User{ID: "m1", Role: entities.RoleManager})
	dir := NewRoleDirectory(testBase(cache), users, time.Minute)

	ids, err := dir.UserIDsByRole(context.Background(), entities.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, ids)
}
