package daemon

import (
	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/authz"
	"github.com/fwm-platform/ecosystem-console/internal/config"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/assignment"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/permission"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/role"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/site"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

// System role names provisioned by the seed.
const (
	RoleSuperAdmin        = "SUPER_ADMIN"
	RoleSiteAdmin         = "SITE_ADMIN"
	RoleConferenceManager = "CONFERENCE_MANAGER"
	RoleHotelManager      = "HOTEL_MANAGER"
	RoleBankManager       = "BANK_MANAGER"
	RoleChurchAdmin       = "CHURCH_ADMIN"
	RoleSchoolAdmin       = "SCHOOL_ADMIN"
	RoleHRManager         = "HR_MANAGER"
	RoleCommsManager      = "COMMS_MANAGER"
	RoleGuest             = "GUEST"
)

type seedPermission struct {
	action   authz.Action
	resource authz.Resource
	desc     string
}

type seedRole struct {
	name        string
	desc        string
	permissions []seedPermission
}

type seedSite struct {
	name     string
	siteType models.SiteType
	campuses []string
}

type seedAssignment struct {
	role     string
	siteName string
}

type seedUser struct {
	email       string
	password    string
	firstName   string
	lastName    string
	assignments []seedAssignment
}

var seedPermissions = []seedPermission{
	{authz.ActionManage, authz.ResourceAll, "Full access to everything"},

	{authz.ActionCreate, authz.ResourceSite, "Provision new sites"},
	{authz.ActionRead, authz.ResourceSite, "View sites"},
	{authz.ActionUpdate, authz.ResourceSite, "Edit sites"},
	{authz.ActionDelete, authz.ResourceSite, "Remove sites"},

	{authz.ActionManage, authz.ResourceUser, "Manage user accounts and role assignments"},
	{authz.ActionRead, authz.ResourceUser, "View user accounts"},
	{authz.ActionManage, authz.ResourceRole, "Manage roles and permission bundles"},
	{authz.ActionRead, authz.ResourceRole, "View roles"},

	{authz.ActionRead, authz.ResourceSettings, "View site settings"},
	{authz.ActionUpdate, authz.ResourceSettings, "Edit site settings"},
	{authz.ActionManage, authz.ResourceSettings, "Manage site settings incl. rollback"},
	{authz.ActionExport, authz.ResourceSettings, "Export site settings"},
	{authz.ActionImport, authz.ResourceSettings, "Import site settings"},

	{authz.ActionRead, authz.ResourceAdminPanel, "Access the admin panel"},
	{authz.ActionRead, authz.ResourceConferencePortal, "Access the conference portal"},
	{authz.ActionRead, authz.ResourceHotelPortal, "Access the hotel portal"},
	{authz.ActionRead, authz.ResourceBankPortal, "Access the bank portal"},
	{authz.ActionRead, authz.ResourceChurchPortal, "Access the church portal"},
	{authz.ActionRead, authz.ResourceSchoolPortal, "Access the school portal"},
	{authz.ActionRead, authz.ResourceHRPortal, "Access the HR portal"},
	{authz.ActionRead, authz.ResourceCommsPortal, "Access the communications portal"},
}

var seedRoles = []seedRole{
	{RoleSuperAdmin, "Full access to every site and portal", []seedPermission{
		{action: authz.ActionManage, resource: authz.ResourceAll},
	}},
	{RoleSiteAdmin, "Administers a site's portals and settings", []seedPermission{
		{action: authz.ActionRead, resource: authz.ResourceSite},
		{action: authz.ActionUpdate, resource: authz.ResourceSite},
		{action: authz.ActionRead, resource: authz.ResourceSettings},
		{action: authz.ActionUpdate, resource: authz.ResourceSettings},
		{action: authz.ActionRead, resource: authz.ResourceConferencePortal},
		{action: authz.ActionRead, resource: authz.ResourceHotelPortal},
	}},
	{RoleConferenceManager, "Runs a conference site", []seedPermission{
		{action: authz.ActionRead, resource: authz.ResourceConferencePortal},
	}},
	{RoleHotelManager, "Runs a hotel site", []seedPermission{
		{action: authz.ActionRead, resource: authz.ResourceHotelPortal},
	}},
	{RoleBankManager, "Runs a bank site", []seedPermission{
		{action: authz.ActionRead, resource: authz.ResourceBankPortal},
	}},
	{RoleChurchAdmin, "Runs a church site", []seedPermission{
		{action: authz.ActionRead, resource: authz.ResourceChurchPortal},
	}},
	{RoleSchoolAdmin, "Runs a school site", []seedPermission{
		{action: authz.ActionRead, resource: authz.ResourceSchoolPortal},
	}},
	{RoleHRManager, "Runs the HR portal", []seedPermission{
		{action: authz.ActionRead, resource: authz.ResourceHRPortal},
	}},
	{RoleCommsManager, "Runs the communications portal", []seedPermission{
		{action: authz.ActionRead, resource: authz.ResourceCommsPortal},
	}},
	{RoleGuest, "No access until roles are assigned", nil},
}

var seedSites = []seedSite{
	{"Global Conference 2024", models.SiteTypeConference, nil},
	{"FWM Lakeside Hotel", models.SiteTypeHotel, nil},
	{"FWM Downtown Hotel", models.SiteTypeHotel, nil},
	{"FWM Main Campus Church", models.SiteTypeChurch, []string{"Main Campus", "North Campus"}},
	{"FWM Westside Church", models.SiteTypeChurch, nil},
	{"Faith Academy", models.SiteTypeSchool, nil},
	{"Redemption High School", models.SiteTypeSchool, nil},
	{"FWM Central Bank", models.SiteTypeBank, nil},
	{"FWM Global HR", models.SiteTypeHR, nil},
	{"FWM Communications Hub", models.SiteTypeComms, nil},
}

var seedUsers = []seedUser{
	{"superadmin@fwm.org", "password", "Super", "Admin", []seedAssignment{
		{role: RoleSuperAdmin},
	}},
	{"sitemanager@fwm.org", "password", "Site", "Manager", []seedAssignment{
		{role: RoleSiteAdmin, siteName: "Global Conference 2024"},
		{role: RoleSiteAdmin, siteName: "FWM Lakeside Hotel"},
		{role: RoleSiteAdmin, siteName: "FWM Downtown Hotel"},
		{role: RoleChurchAdmin, siteName: "FWM Main Campus Church"},
		{role: RoleSchoolAdmin, siteName: "Faith Academy"},
	}},
	{"confmanager@fwm.org", "password", "Conf", "Manager", []seedAssignment{
		{role: RoleConferenceManager, siteName: "Global Conference 2024"},
	}},
	{"hotelmanager@fwm.org", "password", "Hotel", "Manager", []seedAssignment{
		{role: RoleHotelManager, siteName: "FWM Lakeside Hotel"},
	}},
}

// seed provisions the permission catalog, the system roles, the demo sites
// and the demo users. It only runs against an empty user table, so an
// existing installation is never touched.
func seed(_ *config.Config, db *gorm.DB) {
	var count int64

	db.Model(&models.User{}).Count(&count)

	if count > 0 {
		return
	}

	// permission catalog, keyed by action+resource for the role bundles
	permissionIDs := make(map[seedPermission]uint, len(seedPermissions))

	for _, p := range seedPermissions {
		created, err := permission.Create(db, string(p.action), string(p.resource), p.desc)
		if err != nil {
			panic("failed to seed permission: " + err.Error())
		}

		permissionIDs[seedPermission{action: p.action, resource: p.resource}] = created.ID
	}

	// system roles with their permission bundles
	roleIDs := make(map[string]uint, len(seedRoles))

	for _, r := range seedRoles {
		created, err := role.Create(db, r.name, r.desc, "", true)
		if err != nil {
			panic("failed to seed role: " + err.Error())
		}

		roleIDs[r.name] = created.ID

		ids := make([]uint, 0, len(r.permissions))
		for _, p := range r.permissions {
			ids = append(ids, permissionIDs[seedPermission{action: p.action, resource: p.resource}])
		}

		if len(ids) > 0 {
			if err = role.SetPermissions(db, created.ID, ids); err != nil {
				panic("failed to seed role permissions: " + err.Error())
			}
		}
	}

	// demo sites
	siteIDs := make(map[string]string, len(seedSites))

	for _, s := range seedSites {
		created, err := site.Create(db, s.name, s.siteType, s.campuses)
		if err != nil {
			panic("failed to seed site: " + err.Error())
		}

		siteIDs[s.name] = created.ID
	}

	// demo users with their scoped assignments
	for _, u := range seedUsers {
		user := models.User{
			Email:     u.email,
			Password:  models.HashPassword(u.password),
			FirstName: u.firstName,
			LastName:  u.lastName,
			Active:    true,
		}

		if err := db.Create(&user).Error; err != nil {
			panic("failed to seed user: " + err.Error())
		}

		for _, a := range u.assignments {
			if _, err := assignment.Create(db, user.ID, roleIDs[a.role], siteIDs[a.siteName], ""); err != nil {
				panic("failed to seed assignment: " + err.Error())
			}
		}
	}
}
