package authz

// Scope narrows a permission grant or an authorization request to a specific
// tenant (site) and, optionally, a sub-tenant (campus). An empty field means
// the dimension is unconstrained; the zero value is the global scope.
//
// Callers building a Scope from request input should leave fields they do
// not intend to constrain empty rather than passing placeholder values.
type Scope struct {
	SiteID   string
	CampusID string
}

// IsGlobal reports whether the scope constrains nothing.
func (s Scope) IsGlobal() bool {
	return s.SiteID == "" && s.CampusID == ""
}

// Covers reports whether a grant carrying this scope satisfies a request
// carrying the given scope. Each dimension matches when the request leaves
// it open, when the grant leaves it open, or when both name the same value.
//
// Note the first clause: a request without a site scope is satisfied by a
// grant of ANY site scope. Checks where tenant isolation matters must pass
// an explicit site ID, or a role scoped to one site will open the door to
// an unscoped check.
func (s Scope) Covers(request Scope) bool {
	siteMatch := request.SiteID == "" || s.SiteID == "" || request.SiteID == s.SiteID
	campusMatch := request.CampusID == "" || s.CampusID == "" || request.CampusID == s.CampusID

	return siteMatch && campusMatch
}
