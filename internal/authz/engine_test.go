package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// principalWith builds a single-entry principal for decision tests.
func principalWith(t *testing.T, entries ...RoleGrant) *Principal {
	t.Helper()

	return &Principal{
		UserID: 1,
		Email:  "user@fwm.org",
		Roles:  entries,
	}
}

func superAdminEntry() RoleGrant {
	return RoleGrant{
		RoleName: "SUPER_ADMIN",
		Grants:   []Grant{{Action: ActionManage, Resource: ResourceAll}},
	}
}

func conferenceManagerEntry(siteID string) RoleGrant {
	return RoleGrant{
		RoleName: "CONFERENCE_MANAGER",
		Scope:    Scope{SiteID: siteID},
		Grants:   []Grant{{Action: ActionRead, Resource: ResourceConferencePortal}},
	}
}

func TestCanNilPrincipal(t *testing.T) {
	assert.False(t, Can(nil, ActionRead, ResourceSite, Scope{}))
	assert.False(t, Can(nil, ActionManage, ResourceAll, Scope{SiteID: "site_1"}))
}

func TestCanNoRoleEntries(t *testing.T) {
	p := principalWith(t)

	assert.False(t, Can(p, ActionRead, ResourceSite, Scope{}))
	assert.False(t, Can(p, ActionManage, ResourceAll, Scope{}))
}

func TestCanSuperAdmin(t *testing.T) {
	p := principalWith(t, superAdminEntry())

	testCases := []struct {
		name     string
		action   Action
		resource Resource
		scope    Scope
	}{
		{name: "any action any resource unscoped", action: ActionDelete, resource: "anything"},
		{name: "scoped request", action: ActionDelete, resource: "anything", scope: Scope{SiteID: "whatever"}},
		{name: "campus scoped request", action: ActionExport, resource: ResourceSettings, scope: Scope{SiteID: "s", CampusID: "c"}},
		{name: "manage wildcard itself", action: ActionManage, resource: ResourceAll},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, Can(p, tc.action, tc.resource, tc.scope))
		})
	}
}

// A super-admin entry grants across tenants even when the assignment itself
// carried a scope: the wildcard permission implies cross-tenant authority.
func TestCanSuperAdminIgnoresOwnScope(t *testing.T) {
	entry := superAdminEntry()
	entry.Scope = Scope{SiteID: "site_home"}
	p := principalWith(t, entry)

	assert.True(t, Can(p, ActionDelete, ResourceSite, Scope{SiteID: "site_other"}))
}

func TestCanScopeContainment(t *testing.T) {
	p := principalWith(t, conferenceManagerEntry("site_conf_1"))

	testCases := []struct {
		name     string
		action   Action
		resource Resource
		scope    Scope
		want     bool
	}{
		{
			name:     "matching site",
			action:   ActionRead,
			resource: ResourceConferencePortal,
			scope:    Scope{SiteID: "site_conf_1"},
			want:     true,
		},
		{
			name:     "mismatching site",
			action:   ActionRead,
			resource: ResourceConferencePortal,
			scope:    Scope{SiteID: "site_hotel_1"},
			want:     false,
		},
		{
			name:     "action not granted",
			action:   ActionUpdate,
			resource: ResourceConferencePortal,
			scope:    Scope{SiteID: "site_conf_1"},
			want:     false,
		},
		{
			name:     "resource not granted",
			action:   ActionRead,
			resource: ResourceHotelPortal,
			scope:    Scope{SiteID: "site_conf_1"},
			want:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Can(p, tc.action, tc.resource, tc.scope))
		})
	}
}

// An unscoped request matches a site-scoped role entry. This is the
// documented sharp edge of the scope rules, not a defect: call sites that
// guard tenant data must always pass an explicit site scope, while
// global-dashboard checks rely on this behavior to light up portals the
// user can reach somewhere.
func TestCanUnscopedRequestMatchesScopedRole(t *testing.T) {
	p := principalWith(t, conferenceManagerEntry("site_conf_1"))

	assert.True(t, Can(p, ActionRead, ResourceConferencePortal, Scope{}))
	assert.Equal(t,
		Can(p, ActionRead, ResourceConferencePortal, Scope{SiteID: "site_conf_1"}),
		Can(p, ActionRead, ResourceConferencePortal, Scope{}),
	)
}

func TestCanManageSubsumption(t *testing.T) {
	p := principalWith(t, RoleGrant{
		RoleName: "SITE_ADMIN",
		Grants:   []Grant{{Action: ActionManage, Resource: ResourceSite}},
	})

	for _, action := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionExport, ActionImport} {
		assert.True(t, Can(p, action, ResourceSite, Scope{}), "MANAGE should subsume %s", action)
	}

	// subsumption stays within the resource
	assert.False(t, Can(p, ActionRead, ResourceUser, Scope{}))
}

// (READ, "*") means "read anything" without being a full super admin.
func TestCanWildcardResourceWithoutManage(t *testing.T) {
	p := principalWith(t, RoleGrant{
		RoleName: "AUDITOR",
		Grants:   []Grant{{Action: ActionRead, Resource: ResourceAll}},
	})

	assert.True(t, Can(p, ActionRead, ResourceBankPortal, Scope{}))
	assert.True(t, Can(p, ActionRead, "some_custom_resource", Scope{}))
	assert.False(t, Can(p, ActionDelete, ResourceBankPortal, Scope{}))
}

func TestCanCampusScope(t *testing.T) {
	p := principalWith(t, RoleGrant{
		RoleName: "CHURCH_ADMIN",
		Scope:    Scope{SiteID: "site_church_1", CampusID: "campus_west"},
		Grants:   []Grant{{Action: ActionManage, Resource: ResourceChurchPortal}},
	})

	assert.True(t, Can(p, ActionUpdate, ResourceChurchPortal, Scope{SiteID: "site_church_1", CampusID: "campus_west"}))
	assert.False(t, Can(p, ActionUpdate, ResourceChurchPortal, Scope{SiteID: "site_church_1", CampusID: "campus_east"}))
	assert.False(t, Can(p, ActionUpdate, ResourceChurchPortal, Scope{SiteID: "site_church_2", CampusID: "campus_west"}))
}

// Grants from different role entries never cross-contaminate: each entry's
// permissions are checked against that entry's own scope.
func TestCanMultiTenantEntriesStayIsolated(t *testing.T) {
	p := principalWith(t,
		conferenceManagerEntry("site_conf_1"),
		RoleGrant{
			RoleName: "HOTEL_MANAGER",
			Scope:    Scope{SiteID: "site_hotel_1"},
			Grants:   []Grant{{Action: ActionRead, Resource: ResourceHotelPortal}},
		},
	)

	assert.True(t, Can(p, ActionRead, ResourceConferencePortal, Scope{SiteID: "site_conf_1"}))
	assert.True(t, Can(p, ActionRead, ResourceHotelPortal, Scope{SiteID: "site_hotel_1"}))

	// the hotel role must not lend its scope to the conference permission
	assert.False(t, Can(p, ActionRead, ResourceConferencePortal, Scope{SiteID: "site_hotel_1"}))
	assert.False(t, Can(p, ActionRead, ResourceHotelPortal, Scope{SiteID: "site_conf_1"}))
}

// Adding a permission to a bundle can only flip decisions from deny to
// grant, never the reverse (the model is purely additive).
func TestCanMonotonicity(t *testing.T) {
	entry := conferenceManagerEntry("site_conf_1")
	before := principalWith(t, entry)

	requests := []struct {
		action   Action
		resource Resource
		scope    Scope
	}{
		{ActionRead, ResourceConferencePortal, Scope{SiteID: "site_conf_1"}},
		{ActionUpdate, ResourceConferencePortal, Scope{SiteID: "site_conf_1"}},
		{ActionRead, ResourceHotelPortal, Scope{}},
		{ActionDelete, ResourceSite, Scope{SiteID: "site_conf_1"}},
	}

	grown := entry
	grown.Grants = append(append([]Grant{}, entry.Grants...), Grant{Action: ActionUpdate, Resource: ResourceConferencePortal})
	after := principalWith(t, grown)

	for _, req := range requests {
		if Can(before, req.action, req.resource, req.scope) {
			assert.True(t, Can(after, req.action, req.resource, req.scope),
				"adding a grant must not revoke %s %s", req.action, req.resource)
		}
	}

	// and the added permission now grants
	assert.True(t, Can(after, ActionUpdate, ResourceConferencePortal, Scope{SiteID: "site_conf_1"}))
}

// Can is a pure function over the snapshot: same inputs, same answer.
func TestCanIdempotent(t *testing.T) {
	p := principalWith(t, conferenceManagerEntry("site_conf_1"))

	first := Can(p, ActionRead, ResourceConferencePortal, Scope{SiteID: "site_conf_1"})
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Can(p, ActionRead, ResourceConferencePortal, Scope{SiteID: "site_conf_1"}))
	}
}
