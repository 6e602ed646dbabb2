// Package access holds the role based filter that gates groups of handlers.
package access

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/tg-lang-bot/internal/logger"
	"github.com/MKhiriev/tg-lang-bot/internal/pipeline"
	"github.com/MKhiriev/tg-lang-bot/internal/store"
	"github.com/MKhiriev/tg-lang-bot/models"
)

// ErrNoRoles is returned when a filter is built without any role.
var ErrNoRoles = fmt.Errorf("%w: role filter requires at least one role", pipeline.ErrConfiguration)

// RoleGetter reads the stored role of a user.
type RoleGetter interface {
	GetRole(ctx context.Context, q store.Querier, userID int64) (models.Role, bool, error)
}

// RoleFilter accepts users holding one of a fixed set of roles.
type RoleFilter struct {
	users RoleGetter
	roles []models.Role
}

// NewRoleFilter builds a filter for roles. Every role must be valid and at
// least one must be given.
func NewRoleFilter(users RoleGetter, roles ...models.Role) (*RoleFilter, error) {
	if len(roles) == 0 {
		return nil, ErrNoRoles
	}
	for _, role := range roles {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: %w: %q", pipeline.ErrConfiguration, models.ErrUnknownRole, role)
		}
	}

	return &RoleFilter{users: users, roles: slices.Clone(roles)}, nil
}

// Allow reports whether actor holds one of the filter roles. An event
// without actor and an unknown user are rejected.
func (f *RoleFilter) Allow(ctx context.Context, q store.Querier, actor *models.Actor) (bool, error) {
	if actor == nil {
		return false, nil
	}

	role, found, err := f.users.GetRole(ctx, q, actor.ID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*RoleFilter.Allow").
			Int64("user_id", actor.ID).Msg("error reading user role")
		return false, err
	}
	if !found {
		return false, nil
	}

	return slices.Contains(f.roles, role), nil
}

// Roles returns the roles accepted by the filter.
func (f *RoleFilter) Roles() []models.Role {
	return slices.Clone(f.roles)
}
