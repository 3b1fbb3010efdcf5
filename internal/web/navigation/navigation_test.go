package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwm-platform/ecosystem-console/internal/authz"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

func testSites() []models.Site {
	return []models.Site{
		{ID: "site_conf_1", Name: "Conference One", Type: models.SiteTypeConference},
		{ID: "site_conf_2", Name: "Conference Two", Type: models.SiteTypeConference},
		{ID: "site_hotel_1", Name: "Hotel One", Type: models.SiteTypeHotel},
	}
}

func TestForPrincipal_NilPrincipal(t *testing.T) {
	tree := ForPrincipal(nil, testSites())

	assert.Empty(t, tree.Portals)
	assert.Empty(t, tree.Admin)
}

func TestForPrincipal_SiteScopedManager(t *testing.T) {
	principal := &authz.Principal{
		UserID: 1,
		Roles: []authz.RoleGrant{
			{
				RoleName: "CONFERENCE_MANAGER",
				Scope:    authz.Scope{SiteID: "site_conf_1"},
				Grants: []authz.Grant{
					{Action: authz.ActionManage, Resource: authz.ResourceConferencePortal},
				},
			},
		},
	}

	tree := ForPrincipal(principal, testSites())

	// only the scoped site's portal, not the other conference site
	assert.Len(t, tree.Portals, 1)
	assert.Equal(t, "site_conf_1", tree.Portals[0].SiteID)
	assert.Equal(t, "CONFERENCE", tree.Portals[0].SiteType)
	assert.Empty(t, tree.Admin)
}

func TestForPrincipal_SuperAdmin(t *testing.T) {
	principal := &authz.Principal{
		UserID: 2,
		Roles: []authz.RoleGrant{
			{
				RoleName: "SUPER_ADMIN",
				Grants: []authz.Grant{
					{Action: authz.ActionManage, Resource: authz.ResourceAll},
				},
			},
		},
	}

	tree := ForPrincipal(principal, testSites())

	assert.Len(t, tree.Portals, 3)
	assert.Len(t, tree.Admin, 3)
}

func TestForPrincipal_AdminSectionsFollowPermissions(t *testing.T) {
	principal := &authz.Principal{
		UserID: 3,
		Roles: []authz.RoleGrant{
			{
				RoleName: "USER_ADMIN",
				Grants: []authz.Grant{
					{Action: authz.ActionManage, Resource: authz.ResourceUser},
				},
			},
		},
	}

	tree := ForPrincipal(principal, testSites())

	assert.Empty(t, tree.Portals)
	assert.Len(t, tree.Admin, 1)
	assert.Equal(t, "Users", tree.Admin[0].Title)
}
