package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
)

const roleCacheKeyPrefix = "users:role:"

// RoleDirectoryInterface answers "who holds this role" for notification fan-out.
type RoleDirectoryInterface interface {
	UserIDsByRole(ctx context.Context, roles ...entities.UserRole) ([]string, error)
	// Invalidate drops every cached role list. Called after user writes.
	Invalidate(ctx context.Context)
}

type RoleDirectory struct {
	*BaseService
	userRepo repositories.UserRepositoryInterface
	ttl      time.Duration
}

func NewRoleDirectory(base *BaseService, userRepo repositories.UserRepositoryInterface, ttl time.Duration) *RoleDirectory {
	return &RoleDirectory{BaseService: base, userRepo: userRepo, ttl: ttl}
}

// UserIDsByRole returns the ids of users holding any of roles, in role order without duplicates.
func (d *RoleDirectory) UserIDsByRole(ctx context.Context, roles ...entities.UserRole) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, role := range roles {
		ids, err := d.idsForRole(ctx, role)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out, nil
}

func (d *RoleDirectory) idsForRole(ctx context.Context, role entities.UserRole) ([]string, error) {
	key := roleCacheKeyPrefix + string(role)
	var ids []string
	if d.ttl > 0 && d.CacheGet(ctx, key, &ids) {
		return ids, nil
	}

	users, err := d.userRepo.ListByRoles(ctx, role)
	if err != nil {
		return nil, err
	}
	ids = make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	if d.ttl > 0 {
		d.CacheSet(ctx, key, ids, d.ttl)
	}
	d.logger.Debug("role directory loaded", zap.String("role", string(role)), zap.Int("users", len(ids)))
	return ids, nil
}

func (d *RoleDirectory) Invalidate(ctx context.Context) {
	keys := []string{
		roleCacheKeyPrefix + string(entities.RoleAdmin),
		roleCacheKeyPrefix + string(entities.RoleManager),
		roleCacheKeyPrefix + string(entities.RoleTechnician),
		roleCacheKeyPrefix + string(entities.RoleUser),
	}
	d.CacheDel(ctx, keys...)
}
