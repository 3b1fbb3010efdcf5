package authz

import (
	"github.com/rs/zerolog/log"

	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

// Grant is a single hydrated permission held by a role entry.
type Grant struct {
	Action   Action
	Resource Resource
}

// RoleGrant is one hydrated role entry of a Principal: the role's name, the
// scope the assignment carried, and the role's resolved permission bundle.
// Each entry's scope is independent of the others.
type RoleGrant struct {
	RoleID   uint
	RoleName string
	Scope    Scope
	Grants   []Grant
}

// isSuperAdmin reports whether the bundle contains MANAGE on the wildcard
// resource. A super-admin entry grants everything regardless of its own
// scope: the wildcard already implies cross-tenant authority.
func (rg RoleGrant) isSuperAdmin() bool {
	for _, g := range rg.Grants {
		if g.Action == ActionManage && g.Resource == ResourceAll {
			return true
		}
	}

	return false
}

// allows reports whether the bundle holds a permission matching the
// requested action and resource, ignoring scope.
func (rg RoleGrant) allows(action Action, resource Resource) bool {
	for _, g := range rg.Grants {
		if g.Resource.Matches(resource) && (g.Action == action || g.Action == ActionManage) {
			return true
		}
	}

	return false
}

// Principal is the hydrated, in-memory representation of the authenticated
// user: identity plus resolved role/permission/scope entries. It is built
// fresh on every login and session restore, treated as immutable afterwards,
// and never persisted. Replacing it wholesale (never mutating it) is what
// makes repeated Can calls over the same snapshot safe and repeatable.
type Principal struct {
	UserID    uint64
	Email     string
	FirstName string
	LastName  string
	Roles     []RoleGrant
}

// StaleRefKind says which catalog a dangling reference pointed into.
type StaleRefKind string

const (
	// StaleRole marks an assignment referencing a deleted role.
	StaleRole StaleRefKind = "role"
	// StalePermission marks a role-permission link referencing a deleted
	// or unparseable permission.
	StalePermission StaleRefKind = "permission"
)

// StaleRef describes a dangling reference dropped during hydration.
type StaleRef struct {
	Kind         StaleRefKind
	UserID       uint64
	RoleID       uint
	PermissionID uint
}

// StaleRefFunc observes dropped references. The hook is diagnostic only:
// it cannot veto the drop or otherwise change the authorization outcome.
type StaleRefFunc func(ref StaleRef)

// BuildPrincipal hydrates a user and its role assignments into a Principal.
//
// The assignments must already be filtered to the given user; roles, links
// and permissions are the full catalogs. An assignment whose role no longer
// exists is skipped silently, as is a link whose permission no longer exists
// or no longer parses: stale data always degrades to reduced access, never
// to a failed build. Each skip is reported to onStale; a nil hook logs a
// warning instead.
//
// The function is a pure transformation over already-fetched inputs: no
// I/O, no stored state.
func BuildPrincipal(
	user models.User,
	assignments []models.RoleAssignment,
	roles []models.Role,
	links []models.RolePermission,
	permissions []models.Permission,
	onStale StaleRefFunc,
) Principal {
	if onStale == nil {
		onStale = logStaleRef
	}

	roleByID := make(map[uint]models.Role, len(roles))
	for _, r := range roles {
		roleByID[r.ID] = r
	}

	permByID := make(map[uint]models.Permission, len(permissions))
	for _, p := range permissions {
		permByID[p.ID] = p
	}

	linksByRole := make(map[uint][]uint, len(links))
	for _, l := range links {
		linksByRole[l.RoleID] = append(linksByRole[l.RoleID], l.PermissionID)
	}

	entries := make([]RoleGrant, 0, len(assignments))

	for _, a := range assignments {
		role, ok := roleByID[a.RoleID]
		if !ok {
			// dangling role reference: treat the assignment as revoked
			onStale(StaleRef{Kind: StaleRole, UserID: user.ID, RoleID: a.RoleID})
			continue
		}

		grants := make([]Grant, 0, len(linksByRole[role.ID]))

		for _, permID := range linksByRole[role.ID] {
			perm, permOK := permByID[permID]
			if !permOK {
				onStale(StaleRef{Kind: StalePermission, UserID: user.ID, RoleID: role.ID, PermissionID: permID})
				continue
			}

			action, actionOK := ParseAction(perm.Action)
			if !actionOK {
				onStale(StaleRef{Kind: StalePermission, UserID: user.ID, RoleID: role.ID, PermissionID: permID})
				continue
			}

			grants = append(grants, Grant{Action: action, Resource: Resource(perm.Resource)})
		}

		entries = append(entries, RoleGrant{
			RoleID:   role.ID,
			RoleName: role.Name,
			Scope:    Scope{SiteID: a.SiteID, CampusID: a.CampusID},
			Grants:   grants,
		})
	}

	return Principal{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     entries,
	}
}

func logStaleRef(ref StaleRef) {
	log.Warn().
		Str("kind", string(ref.Kind)).
		Uint64("user_id", ref.UserID).
		Uint("role_id", ref.RoleID).
		Uint("permission_id", ref.PermissionID).
		Msg("dropped dangling reference while hydrating principal")
}
