package authz

// Resource is a string identifier for a protected capability domain,
// such as a portal or a data category.
type Resource string

// ResourceAll is the wildcard sentinel matching every resource.
const ResourceAll Resource = "*"

// Well-known resources of the ecosystem console. Tenant-custom roles may
// reference additional resources; these are the ones the console itself
// checks against.
const (
	// ResourceSite covers tenant (site) records.
	ResourceSite Resource = "site"
	// ResourceUser covers user accounts.
	ResourceUser Resource = "user"
	// ResourceRole covers roles and their permission bundles.
	ResourceRole Resource = "role"
	// ResourceSettings covers per-site settings and their version history.
	ResourceSettings Resource = "settings"

	// ResourceAdminPanel gates the administrative area of the console.
	ResourceAdminPanel Resource = "admin_panel"
	// ResourceConferencePortal gates the conference portal.
	ResourceConferencePortal Resource = "conference_portal"
	// ResourceHotelPortal gates the hotel portal.
	ResourceHotelPortal Resource = "hotel_portal"
	// ResourceChurchPortal gates the church portal.
	ResourceChurchPortal Resource = "church_portal"
	// ResourceSchoolPortal gates the school portal.
	ResourceSchoolPortal Resource = "school_portal"
	// ResourceBankPortal gates the bank portal.
	ResourceBankPortal Resource = "bank_portal"
	// ResourceHRPortal gates the HR portal.
	ResourceHRPortal Resource = "hr_portal"
	// ResourceCommsPortal gates the communications portal.
	ResourceCommsPortal Resource = "comms_portal"
)

// Matches reports whether this permission resource covers the requested
// resource. The wildcard covers everything, including for non-MANAGE
// actions: a role granted (READ, "*") may read anything without being a
// super admin.
func (r Resource) Matches(requested Resource) bool {
	return r == requested || r == ResourceAll
}
