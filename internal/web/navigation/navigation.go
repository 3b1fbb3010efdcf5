// Package navigation builds the per-user navigation tree: which portals and
// admin sections a principal may see, computed from the same permission
// checks that guard the routes behind the links.
package navigation

import (
	"github.com/fwm-platform/ecosystem-console/internal/authz"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

// Entry represents a single navigation link.
type Entry struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	SiteID   string `json:"siteId,omitempty"`
	SiteType string `json:"siteType,omitempty"`
}

// Tree is the full navigation payload for one principal.
type Tree struct {
	Portals []Entry `json:"portals"`
	Admin   []Entry `json:"admin"`
}

// portalResources maps each site type to the resource that gates its portal.
var portalResources = map[models.SiteType]authz.Resource{
	models.SiteTypeConference: authz.ResourceConferencePortal,
	models.SiteTypeHotel:      authz.ResourceHotelPortal,
	models.SiteTypeChurch:     authz.ResourceChurchPortal,
	models.SiteTypeSchool:     authz.ResourceSchoolPortal,
	models.SiteTypeBank:       authz.ResourceBankPortal,
	models.SiteTypeHR:         authz.ResourceHRPortal,
	models.SiteTypeComms:      authz.ResourceCommsPortal,
}

// adminSection is one candidate admin link with the permission that gates it.
type adminSection struct {
	title    string
	url      string
	action   authz.Action
	resource authz.Resource
}

var adminSections = []adminSection{
	{"Users", "/admin/users", authz.ActionRead, authz.ResourceUser},
	{"Roles", "/admin/roles", authz.ActionRead, authz.ResourceRole},
	{"Sites", "/sites", authz.ActionRead, authz.ResourceSite},
}

// ForPrincipal computes the navigation tree for a principal over the given
// site list. Each portal entry is checked within its own site's scope, so a
// manager of one conference site does not see every conference site.
func ForPrincipal(principal *authz.Principal, sites []models.Site) Tree {
	tree := Tree{
		Portals: make([]Entry, 0),
		Admin:   make([]Entry, 0),
	}

	if principal == nil {
		return tree
	}

	for i := range sites {
		site := &sites[i]

		resource, ok := portalResources[site.Type]
		if !ok {
			continue
		}

		if !authz.Can(principal, authz.ActionRead, resource, authz.Scope{SiteID: site.ID}) {
			continue
		}

		tree.Portals = append(tree.Portals, Entry{
			Title:    site.Name,
			URL:      "/portal/" + site.ID,
			SiteID:   site.ID,
			SiteType: string(site.Type),
		})
	}

	for _, section := range adminSections {
		if !authz.Can(principal, section.action, section.resource, authz.Scope{}) {
			continue
		}

		tree.Admin = append(tree.Admin, Entry{Title: section.title, URL: section.url})
	}

	return tree
}
